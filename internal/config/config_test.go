package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("unexpected listen addr %q", cfg.ListenAddr)
	}
	if cfg.RefreshInterval() != time.Minute {
		t.Fatalf("unexpected refresh %s", cfg.RefreshInterval())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte("listen_addr: \":9090\"\ncollection: punks\nsettlement: XRD\nfloor_slug: pudgy-penguins\nfloor_refresh: 30s\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":9090" || cfg.Collection != "punks" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.RefreshInterval() != 30*time.Second {
		t.Fatalf("unexpected refresh %s", cfg.RefreshInterval())
	}
}

func TestDatabaseURLEnvOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env-wins")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseURL != "postgres://env-wins" {
		t.Fatalf("expected env override, got %q", cfg.DatabaseURL)
	}
}
