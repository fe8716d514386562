package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version of move-spec-test, its VCS revision and the Go version used to build it.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				cmd.Println("version: unknown")
				return
			}

			for _, line := range versionLines(info) {
				cmd.Println(line)
			}
		},
	}
}

func versionLines(info *debug.BuildInfo) []string {
	version := info.Main.Version
	if version == "" {
		version = "(devel)"
	}

	lines := []string{
		"move-spec-test " + version,
		"go " + info.GoVersion,
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			lines = append(lines, "revision "+setting.Value)
		}
	}

	return lines
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
