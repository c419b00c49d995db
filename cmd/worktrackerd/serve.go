package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/PratikMahajan1993/worktracker/internal/scheduler"
	"github.com/PratikMahajan1993/worktracker/internal/status"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sync daemon",
	Long: `Run the periodic sync jobs until interrupted.

Two jobs are registered:
  incremental-sync  pull remote state into the local database (hourly)
  full-push         re-upload every local record (every 15 minutes)

Both jobs are skipped while no tenant is configured or the remote store
is unreachable. If status.addr is configured, a read-only HTTP endpoint
reports the last successful sync and failure counters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		sched := scheduler.New(a.tenants, a.client.Ping, a.logger)
		if err := sched.RegisterSyncJobs(a.engine, a.cfg.Sync.IncrementalSpec, a.cfg.Sync.FullPushSpec); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		var statusSrv *status.Server
		if a.cfg.Status.Addr != "" {
			statusSrv = status.New(a.cfg.Status.Addr, a.engine.Status(), a.logger)
			go func() {
				if err := statusSrv.ListenAndServe(); err != nil {
					a.logger.Printf("Status server error: %v", err)
				}
			}()
		}

		// Prime the local state once at startup instead of waiting an
		// hour for the first scheduled pull.
		sched.RunNow(scheduler.JobIncrementalSync, a.engine.RunIncrementalSync)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "\nReceived %s, shutting down\n", sig)

		if statusSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := statusSrv.Shutdown(ctx); err != nil {
				a.logger.Printf("Status server shutdown error: %v", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
