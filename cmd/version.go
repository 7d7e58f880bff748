package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// Version information set at build time via ldflags.
// Example: go build -ldflags="-X github.com/ajxudir/conancheck/cmd.Version=1.0.0"
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// BuildTime is the timestamp of the build.
	BuildTime = ""
	// GitCommit is the git commit hash of the build.
	GitCommit = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Long:  `Show version, build date, and system information.`,
	Run:   runVersion,
}

// runVersion executes the version command to display build and version information.
//
// Outputs the platform, Go version, build date, git commit hash, and
// semantic version to stdout.
func runVersion(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  Go:       %s\n", runtime.Version())
	if BuildTime != "" {
		fmt.Fprintf(out, "  Date:     %s\n", BuildTime)
	}
	if GitCommit != "" {
		fmt.Fprintf(out, "  Git:      %s\n", GitCommit)
	}
	fmt.Fprintf(out, "  Version:  %s\n", Version)
}

// GetBuildWarnings returns warnings about the running build, if any.
//
// It performs the following operations:
//   - Flags development builds where no release version was stamped
//   - Flags release versions that are not valid semantic versions
//   - Flags prerelease builds
//
// Returns:
//   - string: Newline-terminated warnings, or empty for a clean release build
func GetBuildWarnings() string {
	var warnings []string

	switch {
	case Version == "dev":
		warnings = append(warnings, "Warning: running a development build")
	case !semver.IsValid("v" + Version):
		warnings = append(warnings, fmt.Sprintf("Warning: build version %q is not a valid semantic version", Version))
	case semver.Prerelease("v"+Version) != "":
		warnings = append(warnings, fmt.Sprintf("Warning: running prerelease build %s", Version))
	}

	if len(warnings) == 0 {
		return ""
	}
	return strings.Join(warnings, "\n") + "\n"
}
