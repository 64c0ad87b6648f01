package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"layoutctl/internal/runner"
	"layoutctl/internal/testutil/testlog"
)

// shConfig binds the worker to /bin/sh so invocations run the task
// "script" as a shell command line.
func shConfig(t *testing.T, taskBody string) string {
	t.Helper()
	body := `
[worker]
bin = "sh"
batch_args = ["-c"]
param_flag = "--"

[[task]]
id = "demo.hello"
name = "Demo Hello"
description = "emit a fixed greeting"
script = ` + taskBody + `
default_payload = '{}'
`
	path := filepath.Join(t.TempDir(), "layoutctl.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRunWithoutArgumentsIsUsageError(t *testing.T) {
	testlog.Start(t)
	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)
	if code != exitUsage {
		t.Fatalf("expected usage exit %d, got %d", exitUsage, code)
	}
	if !strings.Contains(stderr.String(), "usage:") {
		t.Fatalf("expected usage message, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("usage errors must not write stdout, got %q", stdout.String())
	}
}

func TestRunUnknownTaskIsUsageError(t *testing.T) {
	testlog.Start(t)
	var stdout, stderr bytes.Buffer
	code := run([]string{"run", "no.such-task", "{}"}, &stdout, &stderr)
	if code != exitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
}

func TestListShowsCatalog(t *testing.T) {
	testlog.Start(t)
	var stdout, stderr bytes.Buffer
	code := run([]string{"list"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("list failed: %d %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "layout.read") {
		t.Fatalf("expected builtin catalog in listing, got %q", stdout.String())
	}
}

func TestRunTaskSuccessPrintsWorkerOutput(t *testing.T) {
	testlog.Start(t)
	cfgPath := shConfig(t, `"printf hello"`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath, "run", "demo.hello"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("expected success, got %d: %s", code, stderr.String())
	}
	if stdout.String() != "hello\n" {
		t.Fatalf("expected passthrough with trailing newline, got %q", stdout.String())
	}
}

func TestRunTaskFailurePropagatesWorkerExitCode(t *testing.T) {
	testlog.Start(t)
	cfgPath := shConfig(t, `"echo boom 1>&2; exit 2"`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath, "run", "demo.hello"}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("expected worker exit 2 propagated, got %d", code)
	}
	env, err := runner.DecodeFailureEnvelope(bytes.TrimSpace(stdout.Bytes()))
	if err != nil {
		t.Fatalf("stdout is not a failure envelope: %v (%q)", err, stdout.String())
	}
	if env.OK || !strings.Contains(env.Error, "exited with code 2") {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if !strings.Contains(env.Stderr, "boom") {
		t.Fatalf("expected worker diagnostics in envelope, got %q", env.Stderr)
	}
}

func TestRunTaskWritesCaptureFile(t *testing.T) {
	testlog.Start(t)
	cfgPath := shConfig(t, `"printf hello"`)
	capture := filepath.Join(t.TempDir(), "runs", "out.txt")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath, "run", "demo.hello", "", capture}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("expected success, got %d: %s", code, stderr.String())
	}
	data, err := os.ReadFile(capture)
	if err != nil {
		t.Fatalf("read capture: %v", err)
	}
	if string(data) != "hello\n" {
		t.Fatalf("capture content mismatch: %q", data)
	}
}
