package led

import (
	"errors"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestMemorySetAllCommit(t *testing.T) {
	m := NewMemory(4, true)
	red := colorful.Color{R: 1}
	m.SetAll(red)
	if m.Commits() != 0 {
		t.Fatalf("set must not commit")
	}
	if err := m.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	for i, c := range m.Committed() {
		if c != red {
			t.Fatalf("pixel %d not red: %+v", i, c)
		}
	}
}

func TestMemorySetAllIndividualShortFrame(t *testing.T) {
	m := NewMemory(4, true)
	err := m.SetAllIndividual(make([]colorful.Color, 3))
	if !errors.Is(err, ErrShortFrame) {
		t.Fatalf("expected ErrShortFrame, got %v", err)
	}
}

func TestMemorySetIndividualBounds(t *testing.T) {
	m := NewMemory(2, true)
	if err := m.SetIndividual(1, colorful.Color{G: 1}); err != nil {
		t.Fatalf("set individual: %v", err)
	}
	if err := m.SetIndividual(2, colorful.Color{}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestMemoryReset(t *testing.T) {
	m := NewMemory(3, false)
	m.SetAll(colorful.Color{R: 1, G: 1, B: 1})
	if err := m.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := m.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	for i, c := range m.Committed() {
		if c != (colorful.Color{}) {
			t.Fatalf("pixel %d not blanked: %+v", i, c)
		}
	}
}

func TestMemoryFailCommits(t *testing.T) {
	m := NewMemory(1, true)
	m.FailCommits(ErrCommit)
	if err := m.Commit(); !errors.Is(err, ErrCommit) {
		t.Fatalf("expected ErrCommit, got %v", err)
	}
	m.FailCommits(nil)
	if err := m.Commit(); err != nil {
		t.Fatalf("commit after clear: %v", err)
	}
}
