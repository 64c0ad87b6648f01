package runner

import (
	"strings"
	"testing"

	"layoutctl/internal/testutil/testlog"
)

func TestExecRunnerSuccess(t *testing.T) {
	testlog.Start(t)
	out, code, err := ExecRunner{}.Run("sh", "-c", "printf hello")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if string(out) != "hello" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestExecRunnerMergesStderr(t *testing.T) {
	testlog.Start(t)
	out, code, err := ExecRunner{}.Run("sh", "-c", "echo out; echo err 1>&2")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(string(out), "out") || !strings.Contains(string(out), "err") {
		t.Fatalf("expected merged streams, got %q", out)
	}
}

func TestExecRunnerNonZeroExitIsClassifiedNotError(t *testing.T) {
	testlog.Start(t)
	out, code, err := ExecRunner{}.Run("sh", "-c", "echo boom 1>&2; exit 3")
	if err != nil {
		t.Fatalf("expected classified exit, got error %v", err)
	}
	if code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}
	if !strings.Contains(string(out), "boom") {
		t.Fatalf("expected captured diagnostics, got %q", out)
	}
}

func TestExecRunnerLookupFailureMapsTo127(t *testing.T) {
	testlog.Start(t)
	_, code, err := ExecRunner{}.Run("layoutctl-no-such-binary")
	if err == nil {
		t.Fatalf("expected lookup error")
	}
	if code != 127 {
		t.Fatalf("expected exit 127, got %d", code)
	}
}
