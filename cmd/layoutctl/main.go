package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"layoutctl/internal/config"
	"layoutctl/internal/logging"
	"layoutctl/internal/runner"
	"layoutctl/internal/task"
)

const (
	exitOK    = 0
	exitLocal = 1
	exitUsage = 2
)

func main() {
	logging.ConfigureRuntime()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("layoutctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "worker/catalog config file (TOML)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	rest := fs.Args()
	if len(rest) == 0 {
		usage(stderr)
		return exitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "layoutctl: %v\n", err)
		return exitLocal
	}
	registry, err := cfg.BuildRegistry()
	if err != nil {
		fmt.Fprintf(stderr, "layoutctl: %v\n", err)
		return exitLocal
	}

	switch rest[0] {
	case "list":
		for _, meta := range registry.List() {
			fmt.Fprintf(stdout, "%-16s %s\n", meta.ID, meta.Description)
		}
		return exitOK
	case "run":
		return runTask(cfg, registry, rest[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "layoutctl: unknown command %q\n", rest[0])
		usage(stderr)
		return exitUsage
	}
}

func runTask(cfg config.Config, registry *task.Registry, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "layoutctl: run requires a task id")
		usage(stderr)
		return exitUsage
	}
	id := args[0]
	payloadArg := ""
	capturePath := ""
	if len(args) > 1 {
		payloadArg = args[1]
	}
	if len(args) > 2 {
		capturePath = args[2]
	}

	spec, ok := registry.Resolve(id)
	if !ok {
		fmt.Fprintf(stderr, "layoutctl: unknown task %q\n", id)
		return exitUsage
	}

	run := runner.New(cfg.WorkerConfig(), cfg.CommandRunner())
	res, err := run.Invoke(spec, payloadArg, capturePath)
	if err != nil {
		if errors.Is(err, runner.ErrNoPayload) {
			fmt.Fprintf(stderr, "layoutctl: %v\n", err)
			usage(stderr)
			return exitUsage
		}
		// Capture failures still follow a classified invocation;
		// emit the result before reporting the local error.
		if res.Emitted != "" {
			fmt.Fprint(stdout, runner.EnsureNewline(res.Emitted))
		}
		fmt.Fprintf(stderr, "layoutctl: %v\n", err)
		return exitLocal
	}

	fmt.Fprint(stdout, runner.EnsureNewline(res.Emitted))
	return int(res.ExitCode)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}
	return config.Load(path)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: layoutctl [-config file] run <task> [payload-or-file] [capture-path]")
	fmt.Fprintln(w, "       layoutctl [-config file] list")
}
