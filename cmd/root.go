// Package cmd implements the command-line interface for conancheck.
// The root command checks the requirements of a conanfile for available
// updates; the version subcommand reports build information.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/conancheck/pkg/errors"
	"github.com/ajxudir/conancheck/pkg/verbose"
)

var exitFunc = os.Exit
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "conancheck [filter...]",
	Short: "Check for updates of conanfile requirements",
	Long: `Check for updates of your conanfile.txt/conanfile.py requirements.

Positional arguments select packages to check by name. Wildcards (*, ?)
are allowed and patterns can be inverted with a prepended !, e.g. !boost*.`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
		if warnings := GetBuildWarnings(); warnings != "" {
			fmt.Fprint(os.Stderr, warnings)
			fmt.Fprintln(os.Stderr)
		}
	},
	RunE:          runCheck,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success
//   - 1: Fatal error during the check or rewrite
//   - 2: Configuration or argument error
//   - 3: Global lookup timeout
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		code := errors.GetExitCode(err)
		verbose.Infof("Exit code %d: %v", code, err)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")

	rootCmd.Flags().StringVar(&cwdFlag, "cwd", ".", "Path to a folder containing a recipe or to a recipe file directly (conanfile.py or conanfile.txt)")
	rootCmd.Flags().StringVar(&configFlag, "config", "", "Path to a config file (default: .conancheck.yml in --cwd)")
	rootCmd.Flags().StringVar(&targetFlag, "target", "", "Limit update level: major, minor or patch")
	rootCmd.Flags().IntVar(&timeoutFlag, "timeout", -1, "Global timeout for version lookups in seconds")
	rootCmd.Flags().StringVar(&formatFlag, "format", "", "Output format: table or json")
	rootCmd.Flags().BoolVarP(&upgradeFlag, "upgrade", "u", false, "Rewrite the conanfile with the found updates")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(versionCmd)
}
