package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), versionInfo())
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`{{printf "heapctl %s\n" .Version}}`)
	rootCmd.AddCommand(versionCmd)
}

// versionInfo renders the build metadata reported by the version command.
func versionInfo() string {
	return fmt.Sprintf("heapctl %s\n  commit: %s\n  built: %s\n", version, commit, date)
}
