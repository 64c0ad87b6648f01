// Package task owns the catalog of worker-side layout tasks.
//
// Ownership boundary:
// - task spec shape (script binding, payload parameter, default payload)
// - task id format rules
// - local task registry primitives
package task
