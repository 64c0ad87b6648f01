package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidEnvelope = errors.New("runner: invalid failure envelope")

// FailureEnvelope is the uniform JSON document the wrapper emits in
// place of worker output when the worker exits non-zero. Downstream
// automation detects failure via the ok field alone.
type FailureEnvelope struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Stderr string `json:"stderr"`
}

// NewFailureEnvelope builds the envelope for one failed invocation.
// stderr carries the full merged output of the failed worker.
func NewFailureEnvelope(worker string, exitCode int32, combined string) FailureEnvelope {
	return FailureEnvelope{
		OK:     false,
		Error:  fmt.Sprintf("%s exited with code %d", worker, exitCode),
		Stderr: combined,
	}
}

// Validate enforces the guaranteed envelope fields. Stderr may be
// empty: a failed worker is free to emit nothing.
func (e FailureEnvelope) Validate() error {
	if e.OK {
		return fmt.Errorf("%w: ok must be false", ErrInvalidEnvelope)
	}
	if strings.TrimSpace(e.Error) == "" {
		return fmt.Errorf("%w: missing error", ErrInvalidEnvelope)
	}
	return nil
}

// Encode renders the envelope as a single-line JSON document.
func (e FailureEnvelope) Encode() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encode failure envelope: %w", err)
	}
	return string(data), nil
}

// DecodeFailureEnvelope parses an emitted failure document and rejects
// anything that does not carry the guaranteed fields.
func DecodeFailureEnvelope(data []byte) (FailureEnvelope, error) {
	var env FailureEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return FailureEnvelope{}, fmt.Errorf("decode failure envelope: %w", err)
	}
	if err := env.Validate(); err != nil {
		return FailureEnvelope{}, err
	}
	return env, nil
}
