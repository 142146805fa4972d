package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	// Skip config loading so version works with a broken config file.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), fullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// fullVersion returns a full version string with commit and date.
func fullVersion() string {
	if Version == "dev" {
		return fmt.Sprintf("blockyimport dev (%s)", runtime.Version())
	}
	return fmt.Sprintf("blockyimport %s (commit %s, built %s, %s)", Version, GitCommit, BuildDate, runtime.Version())
}
