package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set via ldflags at build time
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)

var rootCmd = &cobra.Command{
	Use:     "botapi",
	Short:   "Bot API - Discord login and roster backend",
	Long:    `A single-binary backend with SQLite, serving the Discord login flow and the group roster API.`,
	Version: Version,
}

func init() {
	// Set version template to include build info when available
	rootCmd.SetVersionTemplate("botapi version {{.Version}}\n")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
