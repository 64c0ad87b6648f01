package task

import (
	"errors"
	"reflect"
	"testing"

	"layoutctl/internal/testutil/testlog"
)

func TestRegisterResolveAndDuplicate(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	s := Spec{ID: "layout.read", Name: "Read Layout", Description: "read", Script: "scripts/read_layout.py"}

	if err := r.Register(s); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(s); !errors.Is(err, ErrTaskExists) {
		t.Fatalf("expected ErrTaskExists, got %v", err)
	}
	got, ok := r.Resolve("layout.read")
	if !ok || got.ID != "layout.read" {
		t.Fatalf("resolve failed: ok=%v id=%q", ok, got.ID)
	}
}

func TestResolveMissingTask(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	_, ok := r.Resolve("layout.missing")
	if ok {
		t.Fatalf("expected missing task to return ok=false")
	}
}

func TestListSortedByID(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	_ = r.Register(Spec{ID: "task.z", Name: "Z", Script: "z.py"})
	_ = r.Register(Spec{ID: "task.a", Name: "A", Script: "a.py"})
	_ = r.Register(Spec{ID: "task.m", Name: "M", Script: "m.py"})

	list := r.List()
	ids := []string{list[0].ID, list[1].ID, list[2].ID}
	want := []string{"task.a", "task.m", "task.z"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("list not sorted: got=%v want=%v", ids, want)
	}
}

func TestValidateSpecFailures(t *testing.T) {
	testlog.Start(t)
	cases := []Spec{
		{ID: "", Name: "Read", Script: "x.py"},
		{ID: "layout.read", Name: "", Script: "x.py"},
		{ID: "layout.read", Name: "Read", Script: ""},
		{ID: "Layout.Read", Name: "Read", Script: "x.py"},
		{ID: ".layout.read", Name: "Read", Script: "x.py"},
		{ID: "layout..read", Name: "Read", Script: "x.py"},
		{ID: "layout.read.", Name: "Read", Script: "x.py"},
	}
	for _, spec := range cases {
		if err := ValidateSpec(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Fatalf("expected ErrInvalidSpec for spec=%+v, got %v", spec, err)
		}
	}
}

func TestParamNameDefaults(t *testing.T) {
	testlog.Start(t)
	s := Spec{ID: "layout.read", Name: "Read", Script: "x.py"}
	if got := s.ParamName(); got != DefaultParam {
		t.Fatalf("expected default param, got %q", got)
	}
	s.Param = "job_spec"
	if got := s.ParamName(); got != "job_spec" {
		t.Fatalf("expected override param, got %q", got)
	}
}
