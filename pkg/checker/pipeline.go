package checker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ajxudir/conancheck/pkg/conan"
	"github.com/ajxudir/conancheck/pkg/filtering"
	"github.com/ajxudir/conancheck/pkg/semver"
	"github.com/ajxudir/conancheck/pkg/verbose"
)

// UpdateResult is the outcome of checking one declared reference.
//
// Fields:
//   - Ref: The declared reference as found in the conanfile
//   - Versions: All published versions, semantic and opaque, in remote order
//   - Current: The effective current version; nil when a declared range
//     matches no published version
//   - Update: The best permitted update; nil when none exists
type UpdateResult struct {
	Ref      conan.Reference
	Versions []conan.VersionSpec
	Current  *conan.VersionSpec
	Update   *semver.Version
}

// UpToDate reports whether the package needs no attention: its current
// version is semantic and no permitted update exists.
//
// Returns:
//   - bool: true when the package is already at its best matching version
func (r UpdateResult) UpToDate() bool {
	return r.Current != nil && r.Current.IsSemantic() && r.Update == nil
}

// TimeoutError reports that the global batch deadline elapsed before all
// version lookups completed.
//
// Fields:
//   - Timeout: The deadline that was exceeded
type TimeoutError struct {
	// Timeout is the global deadline given to the batch.
	Timeout time.Duration
}

// Error implements the error interface.
//
// Returns:
//   - string: Message naming the elapsed deadline
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout searching for package versions after %s", e.Timeout)
}

// IsTimeout reports whether err is a batch TimeoutError.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if err wraps a TimeoutError
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// LookupFunc fetches the published versions of a reference.
//
// Implementations must honor ctx cancellation; the pipeline runs every
// lookup under one shared deadline and applies no per-lookup timeout.
type LookupFunc func(ctx context.Context, ref conan.Reference) ([]conan.VersionSpec, error)

// ProgressFunc observes batch progress after each completed or failed
// lookup. done increases monotonically from 0 to total.
type ProgressFunc func(done, total int)

// Options configures a CheckUpdates invocation.
//
// Fields:
//   - Lookup: Fetches published versions for one reference (required)
//   - PackageFilter: Glob patterns selecting which packages to check;
//     empty checks all
//   - Target: Maximum update magnitude to report (defaults to major)
//   - Timeout: Global deadline for the whole batch; zero disables it
//   - Progress: Optional progress observer
type Options struct {
	Lookup        LookupFunc
	PackageFilter []string
	Target        semver.VersionPart
	Timeout       time.Duration
	Progress      ProgressFunc
}

// lookupOutcome carries one finished lookup through the completion queue.
type lookupOutcome struct {
	ref      conan.Reference
	versions []conan.VersionSpec
	err      error
}

// CheckUpdates checks a list of declared references for available updates.
//
// It performs the following operations:
//   - Applies the package filter before any lookup; filtered-out references
//     never consume concurrency budget
//   - Launches one lookup per remaining reference concurrently, all under a
//     single shared deadline and with no per-lookup timeout
//   - Consumes completions in whatever order they arrive, reporting
//     progress after each one
//   - Resolves the effective current version and best permitted update for
//     each successful lookup
//   - Sorts the successful results by package name so the final order is
//     deterministic regardless of completion order
//
// A failed lookup is logged and dropped; the batch continues. An elapsed
// global deadline fails the whole invocation with a *TimeoutError and no
// partial results.
//
// Parameters:
//   - ctx: Parent context for cancellation
//   - refs: Declared references to check
//   - opts: Pipeline configuration; opts.Lookup is required
//
// Returns:
//   - []UpdateResult: Results for every successfully checked reference,
//     sorted by package name
//   - error: A *TimeoutError when the deadline elapses, or a validation
//     error for missing options
func CheckUpdates(ctx context.Context, refs []conan.Reference, opts Options) ([]UpdateResult, error) {
	if opts.Lookup == nil {
		return nil, fmt.Errorf("lookup function is required")
	}

	target := opts.Target
	if target == semver.PartNone {
		target = semver.PartMajor
	}

	selected := make([]conan.Reference, 0, len(refs))
	for _, ref := range refs {
		if filtering.MatchesAny(ref.Package, opts.PackageFilter) {
			selected = append(selected, ref)
		}
	}

	total := len(selected)
	reportProgress(opts.Progress, 0, total)

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	completions := make(chan lookupOutcome, total)
	for _, ref := range selected {
		go func(ref conan.Reference) {
			versions, err := opts.Lookup(ctx, ref)
			completions <- lookupOutcome{ref: ref, versions: versions, err: err}
		}(ref)
	}

	results := make([]UpdateResult, 0, total)
	for done := 0; done < total; {
		select {
		case <-ctx.Done():
			return nil, batchAbortError(ctx, opts.Timeout)
		case outcome := <-completions:
			done++
			reportProgress(opts.Progress, done, total)

			if outcome.err != nil {
				if errors.Is(outcome.err, context.DeadlineExceeded) || errors.Is(outcome.err, context.Canceled) {
					return nil, batchAbortError(ctx, opts.Timeout)
				}
				verbose.Warnf("Skipping %s: %v", outcome.ref.Package, outcome.err)
				continue
			}

			results = append(results, buildResult(outcome.ref, outcome.versions, target))
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Ref.Package < results[j].Ref.Package
	})
	return results, nil
}

// buildResult resolves one successful lookup into an UpdateResult.
func buildResult(ref conan.Reference, versions []conan.VersionSpec, target semver.VersionPart) UpdateResult {
	result := UpdateResult{Ref: ref, Versions: versions}

	current, ok := ResolveCurrent(ref.Version, versions)
	if !ok {
		verbose.Debugf("No published version satisfies %s", ref)
		return result
	}
	result.Current = &current

	if update, found := FindUpdate(current, versions, target); found {
		result.Update = &update
	}
	return result
}

// batchAbortError maps an aborted batch to its caller-facing error: an
// elapsed deadline becomes a *TimeoutError, an external cancellation is
// propagated as-is.
func batchAbortError(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Timeout: timeout}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return &TimeoutError{Timeout: timeout}
}

// reportProgress invokes the progress observer when one is configured.
func reportProgress(progress ProgressFunc, done, total int) {
	if progress != nil {
		progress(done, total)
	}
}
