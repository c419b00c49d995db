package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != ".worktracker/worktracker.db" {
		t.Errorf("DBPath = %q, want default", cfg.DBPath)
	}
	if cfg.Sync.IncrementalSpec != "@every 1h" {
		t.Errorf("IncrementalSpec = %q, want @every 1h", cfg.Sync.IncrementalSpec)
	}
	if cfg.Sync.FullPushSpec != "@every 15m" {
		t.Errorf("FullPushSpec = %q, want @every 15m", cfg.Sync.FullPushSpec)
	}
	if cfg.TenantID != "" {
		t.Errorf("TenantID = %q, want empty (sync disabled)", cfg.TenantID)
	}
	if cfg.Log.MaxSizeMB != 10 {
		t.Errorf("Log.MaxSizeMB = %d, want 10", cfg.Log.MaxSizeMB)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
db_path: /var/lib/worktracker/data.db
tenant_id: tenant-a
remote:
  base_url: https://sync.example.com
  token: secret
sync:
  incremental_spec: "@every 30m"
status:
  addr: 127.0.0.1:8099
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "/var/lib/worktracker/data.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.TenantID != "tenant-a" {
		t.Errorf("TenantID = %q, want tenant-a", cfg.TenantID)
	}
	if cfg.Remote.BaseURL != "https://sync.example.com" {
		t.Errorf("Remote.BaseURL = %q", cfg.Remote.BaseURL)
	}
	if cfg.Sync.IncrementalSpec != "@every 30m" {
		t.Errorf("IncrementalSpec = %q, want @every 30m", cfg.Sync.IncrementalSpec)
	}
	// Unset keys keep their defaults.
	if cfg.Sync.FullPushSpec != "@every 15m" {
		t.Errorf("FullPushSpec = %q, want default", cfg.Sync.FullPushSpec)
	}
	if cfg.Status.Addr != "127.0.0.1:8099" {
		t.Errorf("Status.Addr = %q", cfg.Status.Addr)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("WORKTRACKER_TENANT_ID", "env-tenant")
	t.Setenv("WORKTRACKER_REMOTE_BASE_URL", "https://env.example.com")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TenantID != "env-tenant" {
		t.Errorf("TenantID = %q, want env-tenant", cfg.TenantID)
	}
	if cfg.Remote.BaseURL != "https://env.example.com" {
		t.Errorf("Remote.BaseURL = %q, want env override", cfg.Remote.BaseURL)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
