// Command worktrackerd is the work tracker sync daemon and admin CLI.
//
// The daemon keeps a local SQLite database synchronized with a remote
// per-tenant document store: every local mutation is pushed immediately,
// an hourly job pulls the remote state down, and a 15-minute job
// re-pushes everything as a recovery net.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/PratikMahajan1993/worktracker/internal/auth"
	"github.com/PratikMahajan1993/worktracker/internal/config"
	"github.com/PratikMahajan1993/worktracker/internal/remote"
	"github.com/PratikMahajan1993/worktracker/internal/store"
	syncengine "github.com/PratikMahajan1993/worktracker/internal/sync"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "worktrackerd",
	Short: "Work tracker sync daemon",
	Long: `worktrackerd synchronizes the local work tracker database with the
remote per-tenant document store.

Local mutations are pushed immediately on a best-effort basis. Two
periodic jobs provide eventual consistency: an hourly incremental sync
pulls remote state into the local database, and a 15-minute full push
re-uploads every local record to recover from failed pushes and
offline edits.`,
}

// app bundles the wired-up components a command needs.
type app struct {
	cfg     *config.Config
	store   *store.Store
	client  *remote.Client
	engine  *syncengine.Engine
	tenants auth.TenantSource
	logger  *log.Logger
}

// newApp loads configuration and opens the local database.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := st.InitSchema(); err != nil {
		_ = st.Close()
		return nil, err
	}

	client := remote.NewClient(nil, cfg.Remote.BaseURL, cfg.Remote.Token)
	engine := syncengine.NewEngine(st, client, logger)

	return &app{
		cfg:     cfg,
		store:   st,
		client:  client,
		engine:  engine,
		tenants: auth.StaticTenant(cfg.TenantID),
		logger:  logger,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
	}
}

// newLogger builds the shared logger, rotating to a file when one is
// configured.
func newLogger(cfg *config.Config) *log.Logger {
	var out io.Writer = os.Stderr
	if cfg.Log.File != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
		})
	}
	return log.New(out, "[worktracker] ", log.LstdFlags)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: ./worktracker.yaml)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
