package runner

import (
	"errors"
	"os/exec"
)

// CommandRunner abstracts worker process execution for the envelope
// runner. Combined is stdout and stderr merged into one stream; the
// exit code is reported separately so a non-zero exit never bypasses
// classification. A non-nil error means the process could not be run
// or terminated abnormally, and a synthesized exit code accompanies it.
type CommandRunner interface {
	Run(name string, args ...string) (combined []byte, exitCode int32, err error)
}

// ExecRunner executes the worker on the local host.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) ([]byte, int32, error) {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return out, 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, int32(exitErr.ExitCode()), nil
	}

	// Lookup failure maps to the shell's command-not-found code.
	exitCode := int32(1)
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		exitCode = 127
	}
	return out, exitCode, err
}
