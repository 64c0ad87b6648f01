// Package runner owns the command-envelope contract around the external
// layout worker.
//
// Ownership boundary:
// - payload resolution (default / file contents / literal)
// - synchronous worker invocation with merged output capture
// - outcome classification and failure-envelope synthesis
// - optional capture-file side effect
package runner
