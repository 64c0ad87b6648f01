package main

import (
	"flag"
	"fmt"
	"os"

	"layoutctl/internal/config"
	"layoutctl/internal/logging"
	"layoutctl/internal/runner"
	"layoutctl/internal/server"
)

func main() {
	logging.ConfigureRuntime()

	configPath := flag.String("config", "", "layoutd service config file (TOML)")
	flag.Parse()

	svcCfg, catalogPath, err := loadServiceConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "layoutd: %v\n", err)
		os.Exit(1)
	}

	var cfg config.Config
	if catalogPath != "" {
		cfg, err = config.Load(catalogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "layoutd: %v\n", err)
			os.Exit(1)
		}
	}
	registry, err := cfg.BuildRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "layoutd: %v\n", err)
		os.Exit(1)
	}

	run := runner.New(cfg.WorkerConfig(), cfg.CommandRunner())
	svc := server.NewService(svcCfg, registry, run)
	if err := svc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "layoutd: %v\n", err)
		os.Exit(1)
	}
}
