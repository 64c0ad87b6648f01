package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"layoutctl/internal/server"
)

type fileConfig struct {
	Listen      string   `toml:"listen"`
	Name        string   `toml:"name"`
	Version     string   `toml:"version"`
	CorsOrigins []string `toml:"cors_origins"`
	Catalog     string   `toml:"catalog"`
}

// loadServiceConfig overlays file values onto defaults, honoring only
// keys present in the file. An empty path yields pure defaults.
func loadServiceConfig(path string) (server.ServiceConfig, string, error) {
	cfg := server.DefaultServiceConfig()
	if path == "" {
		return cfg, "", nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return server.ServiceConfig{}, "", fmt.Errorf("load layoutd config: %w", err)
	}

	if meta.IsDefined("listen") {
		addr := strings.TrimSpace(raw.Listen)
		if addr != "" {
			cfg.ListenAddr = addr
		}
	}

	if meta.IsDefined("name") {
		name := strings.TrimSpace(raw.Name)
		if name != "" {
			cfg.ServiceName = name
		}
	}

	if meta.IsDefined("version") {
		version := strings.TrimSpace(raw.Version)
		if version != "" {
			cfg.Version = version
		}
	}

	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}

	catalog := ""
	if meta.IsDefined("catalog") {
		catalog = strings.TrimSpace(raw.Catalog)
	}

	return cfg, catalog, nil
}
