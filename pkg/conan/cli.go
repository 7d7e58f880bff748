package conan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ajxudir/conancheck/pkg/verbose"
)

// RunFunc is the function signature for Conan CLI invocations.
//
// This type allows the command runner to be replaced with a mock
// implementation for testing.
//
// Parameters:
//   - ctx: Context for cancellation; a batch deadline propagates through it
//   - args: Arguments passed to the conan executable
//
// Returns:
//   - []byte: Captured stdout of the command
//   - error: Any execution error, including context cancellation
type RunFunc func(ctx context.Context, args ...string) ([]byte, error)

// Run is the command execution function used for all Conan invocations.
// It can be replaced with a mock implementation for testing.
var Run RunFunc = runConan

// CLIError reports a Conan CLI invocation that exited non-zero.
//
// Fields:
//   - Args: The arguments the conan executable was invoked with
//   - Stderr: Captured standard error output
//   - Err: The underlying execution error
type CLIError struct {
	Args   []string
	Stderr string
	Err    error
}

// Error implements the error interface.
//
// Returns:
//   - string: Message including the failed command and its stderr
func (e *CLIError) Error() string {
	msg := fmt.Sprintf("conan %s failed: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying execution error
func (e *CLIError) Unwrap() error {
	return e.Err
}

// runConan executes the conan executable and captures stdout.
func runConan(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "conan", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &CLIError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}

// infoEntry mirrors one element of the `conan info --json` output array.
type infoEntry struct {
	Reference     string   `json:"reference"`
	Requires      []string `json:"requires"`
	BuildRequires []string `json:"build_requires"`
}

// ListRequirements resolves the declared requirements of a conanfile.
//
// It performs the following operations:
//   - Runs `conan info <path> --json`
//   - Takes the last non-empty stdout line as the JSON result (Conan mixes
//     progress output into stdout before it)
//   - Picks the array entry describing the conanfile itself
//   - Parses each requires/build_requires entry as a recipe reference
//
// Parameters:
//   - ctx: Context for cancellation
//   - conanfile: Path to the conanfile.py/conanfile.txt
//
// Returns:
//   - []Reference: Declared requirements in conanfile order
//   - error: When the CLI fails or its output cannot be parsed
func ListRequirements(ctx context.Context, conanfile string) ([]Reference, error) {
	stdout, err := Run(ctx, "info", conanfile, "--json")
	if err != nil {
		return nil, fmt.Errorf("resolving requirements of %s: %w", conanfile, err)
	}

	var resultLine string
	for _, line := range strings.Split(string(stdout), "\n") {
		if strings.TrimSpace(line) != "" {
			resultLine = line
		}
	}
	if resultLine == "" {
		return nil, fmt.Errorf("empty output from conan info %s", conanfile)
	}

	var entries []infoEntry
	if err := json.Unmarshal([]byte(resultLine), &entries); err != nil {
		return nil, fmt.Errorf("parsing conan info output: %w", err)
	}

	var conanfileEntry *infoEntry
	for i := range entries {
		for _, name := range conanfileNames {
			if entries[i].Reference == name {
				conanfileEntry = &entries[i]
				break
			}
		}
	}
	if conanfileEntry == nil {
		return nil, fmt.Errorf("conan info output contains no conanfile entry")
	}

	raw := make([]string, 0, len(conanfileEntry.Requires)+len(conanfileEntry.BuildRequires))
	raw = append(raw, conanfileEntry.Requires...)
	raw = append(raw, conanfileEntry.BuildRequires...)

	refs := make([]Reference, 0, len(raw))
	for _, entry := range raw {
		ref, err := ParseReference(entry)
		if err != nil {
			verbose.Warnf("Skipping unparseable requirement %q: %v", entry, err)
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// SearchVersions lists the versions a remote publishes for a reference.
//
// It performs the following operations:
//   - Runs `conan search "<package>/*" --remote all --raw`
//   - Parses every output line that is a recipe reference
//   - Keeps only references with the same user and channel as the query
//
// The version strings are classified semantic-or-opaque; range specs never
// occur in search output.
//
// Parameters:
//   - ctx: Context for cancellation; no per-search timeout is applied, the
//     caller's batch deadline governs the whole invocation
//   - ref: The declared reference whose package to search for
//
// Returns:
//   - []VersionSpec: Published versions in remote order
//   - error: When the CLI fails
func SearchVersions(ctx context.Context, ref Reference) ([]VersionSpec, error) {
	stdout, err := Run(ctx, "search", ref.Package+"/*", "--remote", "all", "--raw")
	if err != nil {
		return nil, fmt.Errorf("searching versions of %s: %w", ref.Package, err)
	}

	var versions []VersionSpec
	for _, line := range strings.Split(string(stdout), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Remote ") {
			continue
		}
		found, err := ParseReference(line)
		if err != nil {
			continue
		}
		if found.Package != ref.Package || found.User != ref.User || found.Channel != ref.Channel {
			continue
		}
		versions = append(versions, found.Version)
	}

	verbose.Debugf("Found %d published versions for %s", len(versions), ref.Package)
	return versions, nil
}
