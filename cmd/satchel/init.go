// Init command: bring the store to the expected schema and seed the
// protected admin account.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/auth"
)

var initAdminPassword string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize satchel storage",
	Long: `Init creates the configuration and data directories, brings the
database schema up to date, and seeds the protected admin account with its
default label set. Re-running init against an initialized store is a no-op.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initAdminPassword, "admin-password", "", "password for the seeded admin account (required)")
	_ = initCmd.MarkFlagRequired("admin-password")
}

func runInit(cmd *cobra.Command, args []string) error {
	// The schema is already created by openStore; only seeding remains.
	digest, err := auth.NewBcryptHasher().Hash(initAdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := store.SeedAdminUser(digest); err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Satchel initialized successfully")
	return nil
}
