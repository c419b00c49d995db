package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one incremental sync now",
	Long: `Pull the tenant's remote collections into the local database once.

Every remote document is mapped back to a local record and upserted.
Work activity logs also get their component associations reconciled
against the document's componentIds list. Documents that fail to map
are skipped with a warning; the rest of the collection still syncs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		tenantID, ok := a.tenants.CurrentTenant()
		if !ok {
			return fmt.Errorf("no tenant configured; set tenant_id in the config or WORKTRACKER_TENANT_ID")
		}

		start := time.Now()
		if err := a.engine.RunIncrementalSync(cmd.Context(), tenantID); err != nil {
			return err
		}
		fmt.Printf("Incremental sync finished in %s\n", time.Since(start).Round(time.Millisecond))
		return nil
	},
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Run one full push now",
	Long: `Re-upload every local record of every entity kind to the remote store.

This is the recovery path for mutations whose immediate push failed or
that happened before a tenant was configured. Individual failures are
logged and the push continues; the command reports failure if any
record could not be uploaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		tenantID, ok := a.tenants.CurrentTenant()
		if !ok {
			return fmt.Errorf("no tenant configured; set tenant_id in the config or WORKTRACKER_TENANT_ID")
		}

		start := time.Now()
		if err := a.engine.RunFullPush(cmd.Context(), tenantID); err != nil {
			return err
		}
		fmt.Printf("Full push finished in %s\n", time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(pushCmd)
}
