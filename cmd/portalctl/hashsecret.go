package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var hashCost int

// hashSecretCmd prints a bcrypt hash suitable for PORTAL_SECRET_HASH.
var hashSecretCmd = &cobra.Command{
	Use:   "hash-secret [password]",
	Short: "Hash a gate password for PORTAL_SECRET_HASH",
	Long:  "Hash the given password, or PORTAL_SECRET when no argument is passed.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := os.Getenv("PORTAL_SECRET")
		if len(args) == 1 {
			secret = args[0]
		}
		if secret == "" {
			return errors.New("password required (argument or PORTAL_SECRET)")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(secret), hashCost)
		if err != nil {
			return fmt.Errorf("hash secret: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(hash))
		return nil
	},
}

func init() {
	hashSecretCmd.Flags().IntVar(&hashCost, "cost", bcrypt.DefaultCost, "bcrypt cost")
}
