package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajxudir/conancheck/pkg/checker"
	"github.com/ajxudir/conancheck/pkg/conan"
	"github.com/ajxudir/conancheck/pkg/config"
	"github.com/ajxudir/conancheck/pkg/errors"
	"github.com/ajxudir/conancheck/pkg/output"
	"github.com/ajxudir/conancheck/pkg/rewrite"
	"github.com/ajxudir/conancheck/pkg/verbose"
)

var (
	cwdFlag     string
	configFlag  string
	targetFlag  string
	timeoutFlag int
	formatFlag  string
	upgradeFlag bool
	noColorFlag bool
)

// runCheck executes the update check: it loads configuration, resolves the
// conanfile requirements, fans out version lookups, prints the report, and
// optionally rewrites the conanfile in place.
//
// Parameters:
//   - cmd: The invoked cobra command
//   - args: Positional package filter patterns
//
// Returns:
//   - error: An *errors.ExitError carrying the exit code on failure
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadEffectiveConfig(args)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	conanfile, err := conan.FindConanfile(cwdFlag)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Checking %s\n", conanfile)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	refs, err := conan.ListRequirements(ctx, conanfile)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}
	verbose.Debugf("Found %d declared requirements", len(refs))

	progress := output.NewProgress(cmd.ErrOrStderr())
	results, err := checker.CheckUpdates(ctx, refs, checker.Options{
		Lookup:        conan.SearchVersions,
		PackageFilter: cfg.Filter,
		Target:        cfg.TargetPart(),
		Timeout:       time.Duration(cfg.TimeoutSeconds) * time.Second,
		Progress:      progress.Update,
	})
	progress.Done()
	if err != nil {
		if checker.IsTimeout(err) {
			return errors.NewExitError(errors.ExitTimeout, err)
		}
		return errors.NewExitError(errors.ExitFailure, err)
	}

	switch cfg.Format {
	case config.FormatJSON:
		if err := output.WriteJSON(cmd.OutOrStdout(), results); err != nil {
			return errors.NewExitError(errors.ExitFailure, err)
		}
	default:
		output.WriteTable(cmd.OutOrStdout(), results, !noColorFlag)
	}

	if upgradeFlag {
		if err := applyUpgrades(cmd, conanfile, results); err != nil {
			return err
		}
	}
	return nil
}

// loadEffectiveConfig merges the config file with command-line overrides.
//
// Precedence, lowest to highest: built-in defaults, config file, flags.
// Positional filter arguments replace any configured filter.
func loadEffectiveConfig(args []string) (*config.Config, error) {
	cfg, err := config.Load(configFlag, cwdFlag)
	if err != nil {
		return nil, err
	}

	if targetFlag != "" {
		cfg.Target = targetFlag
	}
	if timeoutFlag >= 0 {
		cfg.TimeoutSeconds = timeoutFlag
	}
	if formatFlag != "" {
		cfg.Format = formatFlag
	}
	if len(args) > 0 {
		cfg.Filter = args
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyUpgrades rewrites the conanfile in place with the found updates.
func applyUpgrades(cmd *cobra.Command, conanfile string, results []checker.UpdateResult) error {
	content, err := os.ReadFile(conanfile)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, fmt.Errorf("reading %s: %w", conanfile, err))
	}

	updated, changes, err := rewrite.UpgradeConanfile(string(content), results)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}
	if len(changes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to upgrade")
		return nil
	}

	if err := os.WriteFile(conanfile, []byte(updated), 0o644); err != nil {
		return errors.NewExitError(errors.ExitFailure, fmt.Errorf("writing %s: %w", conanfile, err))
	}

	for _, change := range changes {
		fmt.Fprintf(cmd.OutOrStdout(), "Upgraded %s → %s\n", change.Old, change.New)
	}
	return nil
}
