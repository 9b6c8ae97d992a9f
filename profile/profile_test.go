package profile

import (
	"slices"
	"testing"
)

func TestNew_AppliesOptions(t *testing.T) {
	p := New(WithMode("cpu"), WithDir("/tmp/x"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Dir: "/tmp/x", Quiet: true}
	if p != want {
		t.Errorf("New() = %+v, want %+v", p, want)
	}
}

func TestStart_EmptyModeIsNoop(t *testing.T) {
	s := New(WithDir(t.TempDir())).Start()
	if _, ok := s.(ignore); !ok {
		t.Errorf("Start() = %T, want no-op", s)
	}

	s.Stop()
}

func TestStart_UnknownModeIsNoop(t *testing.T) {
	s := New(WithMode("bogus"), WithDir(t.TempDir()), WithQuiet(true)).Start()
	if _, ok := s.(ignore); !ok {
		t.Errorf("Start() = %T, want no-op", s)
	}

	s.Stop()
}

func TestModes_Sorted(t *testing.T) {
	if m := Modes(); !slices.IsSorted(m) {
		t.Errorf("Modes() = %v, want sorted", m)
	}
}
