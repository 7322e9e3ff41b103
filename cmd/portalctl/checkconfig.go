package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/novanode/client-portal/internal/app"
)

// checkConfigCmd loads the portal configuration from the environment and reports it.
var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate the portal environment configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := app.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if _, err := cfg.Authenticator(); err != nil {
			return err
		}
		gate := "preset secret"
		switch {
		case cfg.SecretHash != "":
			gate = "bcrypt hash"
		case cfg.Secret != "":
			gate = "PORTAL_SECRET"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "variant:  %s\n", cfg.Variant)
		fmt.Fprintf(out, "finance:  %t\n", cfg.FinanceEnabled())
		fmt.Fprintf(out, "gate:     %s\n", gate)
		fmt.Fprintf(out, "client:   %s\n", cfg.Subtitle())
		fmt.Fprintf(out, "redis:    %s\n", cfg.RedisAddr)
		return nil
	},
}
