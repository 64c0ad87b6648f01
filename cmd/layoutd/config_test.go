package main

import (
	"os"
	"path/filepath"
	"testing"

	"layoutctl/internal/server"
	"layoutctl/internal/testutil/testlog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layoutd.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadServiceConfigEmptyPathYieldsDefaults(t *testing.T) {
	testlog.Start(t)
	cfg, catalog, err := loadServiceConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := server.DefaultServiceConfig()
	if cfg.ListenAddr != def.ListenAddr || cfg.ServiceName != def.ServiceName {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if catalog != "" {
		t.Fatalf("expected no catalog path, got %q", catalog)
	}
}

func TestLoadServiceConfigHonorsOnlyDefinedKeys(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
listen = ":9800"
catalog = "/etc/layoutctl/catalog.toml"
`)

	cfg, catalog, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":9800" {
		t.Fatalf("listen override lost: %q", cfg.ListenAddr)
	}
	if cfg.ServiceName != server.DefaultServiceConfig().ServiceName {
		t.Fatalf("undefined key should keep default, got %q", cfg.ServiceName)
	}
	if catalog != "/etc/layoutctl/catalog.toml" {
		t.Fatalf("catalog path lost: %q", catalog)
	}
}

func TestLoadServiceConfigEmptyCorsListIsExplicit(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
cors_origins = []
`)

	cfg, _, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.CorsOrigins) != 0 {
		t.Fatalf("explicit empty cors list overridden: %v", cfg.CorsOrigins)
	}
}

func TestLoadServiceConfigBadFileFails(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `listen = [`)
	if _, _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
