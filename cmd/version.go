// =============================================================================
// Cart Parser - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   cartparser version [--short]
//
// OUTPUT:
//   Cart Parser
//   Version:    1.0.0
//   Commit:     3f2c1e9
//   Build Date: 2024-01-01
//   Go Version: go1.24.0
//
// Version and BuildDate come from ldflags. When they are left at their
// defaults, the module version and VCS data embedded by the Go toolchain are
// used instead, so `go install` builds still report something useful.
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is the application version.
// Set at build time with:
//
//	go build -ldflags "-X 'github.com/vvorobets/cart-parser/cmd.Version=1.0.0'"
var Version = "dev"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

// shortVersion prints only the version string.
var shortVersion bool

// buildInfo is what the version command reports.
type buildInfo struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// readBuildInfo merges the ldflags values with the toolchain's build info.
//
// RETURNS:
//   - The version, commit and dates to print. Unknown fields are "unknown".
func readBuildInfo() buildInfo {
	info := buildInfo{
		Version:   Version,
		Commit:    "unknown",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}

	embedded, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	if info.Version == "dev" && embedded.Main.Version != "" && embedded.Main.Version != "(devel)" {
		info.Version = embedded.Main.Version
	}

	for _, setting := range embedded.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Commit = setting.Value
			if len(info.Commit) > 7 {
				info.Commit = info.Commit[:7]
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = setting.Value
			}
		}
	}

	return info
}

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := readBuildInfo()
		out := cmd.OutOrStdout()

		if shortVersion {
			fmt.Fprintln(out, info.Version)
			return
		}

		fmt.Fprintln(out, "Cart Parser")
		fmt.Fprintf(out, "Version:    %s\n", info.Version)
		fmt.Fprintf(out, "Commit:     %s\n", info.Commit)
		fmt.Fprintf(out, "Build Date: %s\n", info.BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", info.GoVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&shortVersion, "short", false, "Print only the version")
}
