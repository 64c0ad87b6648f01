package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"layoutctl/internal/observability"
	"layoutctl/internal/task"
)

var (
	ErrNoPayload = errors.New("runner: payload required and no default defined")
)

// WorkerConfig locates the external worker binary and the argument
// shape that drives it in batch mode. It is injected configuration,
// never a hard-coded literal.
type WorkerConfig struct {
	// Bin is the worker executable, e.g. "klayout".
	Bin string
	// BatchArgs are the fixed flags selecting non-interactive script
	// execution; the task script path is appended after them.
	BatchArgs []string
	// ParamFlag introduces one name=value parameter binding,
	// e.g. "-rd".
	ParamFlag string
}

// DefaultWorkerConfig returns the stock KLayout batch invocation shape.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Bin:       "klayout",
		BatchArgs: []string{"-b", "-r"},
		ParamFlag: "-rd",
	}
}

// WithDefaults fills unset fields from DefaultWorkerConfig.
func (c WorkerConfig) WithDefaults() WorkerConfig {
	def := DefaultWorkerConfig()
	if strings.TrimSpace(c.Bin) == "" {
		c.Bin = def.Bin
	}
	if len(c.BatchArgs) == 0 {
		c.BatchArgs = def.BatchArgs
	}
	if strings.TrimSpace(c.ParamFlag) == "" {
		c.ParamFlag = def.ParamFlag
	}
	return c
}

// Name returns the short worker name used in failure envelopes.
func (c WorkerConfig) Name() string {
	return filepath.Base(c.Bin)
}

// Result is the classified outcome of one worker invocation.
type Result struct {
	// ExitCode mirrors the worker's exit status and is what the
	// wrapper process itself must exit with.
	ExitCode int32
	// Emitted is the single text the wrapper emits: the worker's
	// merged output verbatim on success, the failure envelope
	// otherwise.
	Emitted string
	// Failed reports whether Emitted is a failure envelope.
	Failed bool
}

// Runner executes catalog tasks against one worker configuration.
type Runner struct {
	worker WorkerConfig
	exec   CommandRunner
}

// New builds a runner. A nil exec defaults to local execution.
func New(worker WorkerConfig, exec CommandRunner) *Runner {
	if exec == nil {
		exec = ExecRunner{}
	}
	return &Runner{worker: worker.WithDefaults(), exec: exec}
}

// ResolvePayload applies the payload resolution order: an empty
// argument takes the fallback (erroring when none is defined), an
// argument naming an existing file is replaced by the file contents,
// anything else is forwarded literally. The payload is opaque and is
// never parsed here.
func ResolvePayload(arg, fallback string) (string, error) {
	if arg == "" {
		if fallback == "" {
			return "", ErrNoPayload
		}
		return fallback, nil
	}
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("runner: read payload file %s: %w", arg, err)
		}
		return string(data), nil
	}
	return arg, nil
}

// Invoke runs one task synchronously: resolve the payload, spawn the
// worker, classify the exit status, then perform the capture side
// effect. The returned error covers local failures only; worker
// failure is expressed through the result, never as an error.
func (r *Runner) Invoke(spec task.Spec, payloadArg, capturePath string) (Result, error) {
	payload, err := ResolvePayload(payloadArg, spec.DefaultPayload)
	if err != nil {
		return Result{}, fmt.Errorf("task %s: %w", spec.ID, err)
	}

	args := r.argv(spec, payload)
	log.Debug().
		Str("task", spec.ID).
		Str("worker", r.worker.Bin).
		Strs("args", args).
		Msg("worker invoke")

	start := time.Now()
	combined, exitCode, runErr := r.exec.Run(r.worker.Bin, args...)
	duration := time.Since(start)

	res, err := r.classify(spec, combined, exitCode, runErr)
	if err != nil {
		return Result{}, err
	}

	outcome := "success"
	if res.Failed {
		outcome = "error"
	}
	observability.RecordWorkerInvocation(spec.ID, outcome, duration)
	log.Debug().
		Str("task", spec.ID).
		Int32("exit_code", res.ExitCode).
		Dur("duration", duration).
		Str("outcome", outcome).
		Msg("worker done")

	if capturePath != "" {
		if err := writeCapture(capturePath, res.Emitted); err != nil {
			return res, err
		}
	}
	return res, nil
}

// argv assembles the fixed batch flags, the task script, and the single
// named payload binding.
func (r *Runner) argv(spec task.Spec, payload string) []string {
	args := make([]string, 0, len(r.worker.BatchArgs)+3)
	args = append(args, r.worker.BatchArgs...)
	args = append(args, spec.Script)
	args = append(args, r.worker.ParamFlag, spec.ParamName()+"="+payload)
	return args
}

func (r *Runner) classify(spec task.Spec, combined []byte, exitCode int32, runErr error) (Result, error) {
	if exitCode == 0 && runErr == nil {
		return Result{ExitCode: 0, Emitted: string(combined)}, nil
	}
	if exitCode == 0 {
		// Abnormal termination without a status; still enveloped.
		exitCode = 1
	}

	stderrText := string(combined)
	if stderrText == "" && runErr != nil {
		stderrText = runErr.Error()
	}
	env := NewFailureEnvelope(r.worker.Name(), exitCode, stderrText)
	emitted, err := env.Encode()
	if err != nil {
		return Result{}, fmt.Errorf("task %s: %w", spec.ID, err)
	}
	return Result{ExitCode: exitCode, Emitted: emitted, Failed: true}, nil
}

// writeCapture persists the emitted text, newline-terminated, creating
// parent directories and overwriting any previous capture.
func writeCapture(path, emitted string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("runner: create capture dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(EnsureNewline(emitted)), 0o644); err != nil {
		return fmt.Errorf("runner: write capture %s: %w", path, err)
	}
	return nil
}

// EnsureNewline terminates s with exactly one trailing newline.
func EnsureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
