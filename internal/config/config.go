package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"layoutctl/internal/runner"
	"layoutctl/internal/task"
)

// Config is the worker/catalog configuration file shape.
type Config struct {
	Worker WorkerSection `toml:"worker"`
	Remote RemoteSection `toml:"remote"`
	Tasks  []TaskSection `toml:"task"`
}

// WorkerSection selects the worker binary and its batch argument shape.
type WorkerSection struct {
	Bin       string   `toml:"bin"`
	BatchArgs []string `toml:"batch_args"`
	ParamFlag string   `toml:"param_flag"`
}

// RemoteSection optionally routes invocations to an SSH host where the
// worker is installed. An empty host means local execution.
type RemoteSection struct {
	Host       string `toml:"host"`
	Port       string `toml:"port"`
	User       string `toml:"user"`
	KeyPath    string `toml:"key_path"`
	KnownHosts string `toml:"known_hosts"`
	Insecure   bool   `toml:"insecure_skip_host_key_checking"`
	Timeout    string `toml:"timeout"`
}

// TaskSection declares one catalog task. Entries take precedence over
// the builtin catalog when ids collide.
type TaskSection struct {
	ID             string `toml:"id"`
	Name           string `toml:"name"`
	Description    string `toml:"description"`
	Script         string `toml:"script"`
	Param          string `toml:"param"`
	DefaultPayload string `toml:"default_payload"`
}

// Load reads and validates a worker/catalog config file.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// Validate checks remote and task entries; worker fields are optional
// and defaulted at use.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Remote.Host) != "" {
		if strings.TrimSpace(c.Remote.User) == "" {
			return fmt.Errorf("remote host set but user missing")
		}
		if strings.TrimSpace(c.Remote.KeyPath) == "" {
			return fmt.Errorf("remote host set but key_path missing")
		}
		if c.Remote.Timeout != "" {
			if _, err := time.ParseDuration(c.Remote.Timeout); err != nil {
				return fmt.Errorf("remote timeout invalid: %w", err)
			}
		}
	}
	for i, entry := range c.Tasks {
		if err := task.ValidateSpec(entry.spec()); err != nil {
			return fmt.Errorf("task[%d] invalid: %w", i, err)
		}
	}
	return nil
}

// WorkerConfig converts the worker section, applying stock defaults.
func (c Config) WorkerConfig() runner.WorkerConfig {
	return runner.WorkerConfig{
		Bin:       c.Worker.Bin,
		BatchArgs: c.Worker.BatchArgs,
		ParamFlag: c.Worker.ParamFlag,
	}.WithDefaults()
}

// CommandRunner returns the execution backend the config selects:
// SSH when a remote host is set, local otherwise.
func (c Config) CommandRunner() runner.CommandRunner {
	host := strings.TrimSpace(c.Remote.Host)
	if host == "" {
		return runner.ExecRunner{}
	}
	timeout := time.Duration(0)
	if c.Remote.Timeout != "" {
		// Validated in Load; ignore the error here.
		timeout, _ = time.ParseDuration(c.Remote.Timeout)
	}
	return runner.SSHRunner{
		Host:                        host,
		Port:                        strings.TrimSpace(c.Remote.Port),
		User:                        strings.TrimSpace(c.Remote.User),
		KeyPath:                     strings.TrimSpace(c.Remote.KeyPath),
		KnownHostsPath:              strings.TrimSpace(c.Remote.KnownHosts),
		InsecureSkipHostKeyChecking: c.Remote.Insecure,
		Timeout:                     timeout,
	}
}

// TaskSpecs converts the task entries to catalog specs.
func (c Config) TaskSpecs() []task.Spec {
	specs := make([]task.Spec, 0, len(c.Tasks))
	for _, entry := range c.Tasks {
		specs = append(specs, entry.spec())
	}
	return specs
}

func (t TaskSection) spec() task.Spec {
	return task.Spec{
		ID:             strings.TrimSpace(t.ID),
		Name:           strings.TrimSpace(t.Name),
		Description:    strings.TrimSpace(t.Description),
		Script:         strings.TrimSpace(t.Script),
		Param:          strings.TrimSpace(t.Param),
		DefaultPayload: t.DefaultPayload,
	}
}

// BuildRegistry assembles the task registry: config entries first, then
// the builtin catalog for ids not overridden.
func (c Config) BuildRegistry() (*task.Registry, error) {
	registry := task.NewRegistry()
	for _, spec := range c.TaskSpecs() {
		if err := registry.Register(spec); err != nil {
			return nil, err
		}
	}
	if err := task.RegisterBuiltin(registry); err != nil {
		return nil, err
	}
	return registry, nil
}
