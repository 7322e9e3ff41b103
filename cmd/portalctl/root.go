package main

import (
	"github.com/spf13/cobra"
)

// rootCmd is the base command for portalctl.
var rootCmd = &cobra.Command{
	Use:   "portalctl",
	Short: "Operator tooling for the Novanode client portal",
	Long: `portalctl prints the data a portal instance would render for a given seed,
hashes gate passwords for PORTAL_SECRET_HASH and checks the environment
configuration before a deploy.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(hashSecretCmd)
	rootCmd.AddCommand(checkConfigCmd)
}
