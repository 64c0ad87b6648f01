package task

// DefaultParam is the worker-side parameter name the batch scripts read
// their payload from when a task does not override it.
const DefaultParam = "input_parameter"

// Spec binds one named task to the worker script that implements it.
type Spec struct {
	ID          string
	Name        string
	Description string

	// Script is the worker-side script path handed to the worker's
	// batch-run flag.
	Script string

	// Param is the worker parameter the payload is bound to.
	// Empty means DefaultParam.
	Param string

	// DefaultPayload is substituted when the caller supplies no
	// payload argument. Empty means the task requires a payload.
	DefaultPayload string
}

// Metadata is the identity and display projection of a task.
type Metadata struct {
	ID          string
	Name        string
	Description string
}

// Metadata returns the identity projection of the task.
func (s Spec) Metadata() Metadata {
	return Metadata{ID: s.ID, Name: s.Name, Description: s.Description}
}

// ParamName returns the worker parameter the payload binds to.
func (s Spec) ParamName() string {
	if s.Param == "" {
		return DefaultParam
	}
	return s.Param
}

// HasDefault reports whether the task defines a fallback payload.
func (s Spec) HasDefault() bool {
	return s.DefaultPayload != ""
}
