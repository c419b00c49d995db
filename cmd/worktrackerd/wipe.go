package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var wipeYes bool

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all data, local and remote",
	Long: `Delete every document in every remote collection for the configured
tenant, then every row of every local table, and reset the local
auto-increment sequences so new records start from id 1.

This is the full account wipe. It cannot be undone; take an export
first if in doubt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !wipeYes {
			return fmt.Errorf("refusing to wipe without --yes")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()

		if tenantID, ok := a.tenants.CurrentTenant(); ok {
			fmt.Printf("Deleting all remote data for tenant %s...\n", tenantID)
			if err := a.client.DeleteAllInTenant(ctx, tenantID); err != nil {
				return fmt.Errorf("remote wipe failed: %w", err)
			}
		} else {
			fmt.Println("No tenant configured, skipping remote wipe")
		}

		fmt.Println("Wiping local database...")
		if err := a.store.Wipe(ctx); err != nil {
			return fmt.Errorf("local wipe failed: %w", err)
		}

		fmt.Println("Wipe complete")
		return nil
	},
}

func init() {
	wipeCmd.Flags().BoolVar(&wipeYes, "yes", false, "confirm the wipe")
	rootCmd.AddCommand(wipeCmd)
}
