package task

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrTaskExists  = errors.New("task already exists")
	ErrInvalidSpec = errors.New("invalid task spec")
)

// Registry stores task specs by stable identifier.
type Registry struct {
	items map[string]Spec
}

// NewRegistry creates an empty task registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Spec)}
}

// ValidateSpec checks required spec fields and id format.
func ValidateSpec(spec Spec) error {
	id := strings.TrimSpace(spec.ID)
	name := strings.TrimSpace(spec.Name)
	script := strings.TrimSpace(spec.Script)
	if id == "" || name == "" || script == "" {
		return fmt.Errorf("%w: id, name, and script are required", ErrInvalidSpec)
	}
	if !isValidID(id) {
		return fmt.Errorf("%w: invalid id format %q", ErrInvalidSpec, id)
	}
	return nil
}

// Register adds a task spec to the registry.
func (r *Registry) Register(spec Spec) error {
	if err := ValidateSpec(spec); err != nil {
		return err
	}
	if _, ok := r.items[spec.ID]; ok {
		return fmt.Errorf("%w: %s", ErrTaskExists, spec.ID)
	}
	r.items[spec.ID] = spec
	return nil
}

// Resolve returns a task spec by id.
func (r *Registry) Resolve(id string) (Spec, bool) {
	spec, ok := r.items[id]
	return spec, ok
}

// List returns deterministic metadata ordering by id.
func (r *Registry) List() []Metadata {
	list := make([]Metadata, 0, len(r.items))
	for _, spec := range r.items {
		list = append(list, spec.Metadata())
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}

// Ids must be lowercase alphanumerics with single '.', '-', or '_'
// separators, never at either edge.
func isValidID(id string) bool {
	if id == "" {
		return false
	}
	lastSep := false
	for i := 0; i < len(id); i++ {
		c := id[i]
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		isSep := c == '.' || c == '-' || c == '_'
		if !(isLower || isDigit || isSep) {
			return false
		}
		if i == 0 || i == len(id)-1 {
			if isSep {
				return false
			}
		}
		if isSep && lastSep {
			return false
		}
		lastSep = isSep
	}
	return true
}
