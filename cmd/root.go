package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command all subcommands attach to.
var rootCmd = &cobra.Command{
	Use:   "homebuddy",
	Short: "HomeBuddy service-marketplace API server",
	Long: `HomeBuddy service-marketplace API server.

Users register, browse services, book providers, leave reviews, and
contact support; providers manage bookings and profiles.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
