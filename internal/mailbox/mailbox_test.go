package mailbox

import (
	"errors"
	"testing"
)

func TestLastWriteWins(t *testing.T) {
	m := New()
	if err := m.Update(Control{Kind: Standby}); err != nil {
		t.Fatalf("update A: %v", err)
	}
	if err := m.Update(Control{Kind: Analysis, Novelty: 0.8, IsBeat: true}); err != nil {
		t.Fatalf("update B: %v", err)
	}

	got := m.TakeLatest()
	if got.Kind != Analysis || got.Novelty != 0.8 || !got.IsBeat {
		t.Fatalf("expected latest analysis value, got %+v", got)
	}
	if m.Drops() != 1 {
		t.Fatalf("expected 1 drop, got %d", m.Drops())
	}
}

func TestTakeLatestResetsToNoop(t *testing.T) {
	m := New()
	if err := m.Update(Control{Kind: RandomRunner}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := m.TakeLatest(); got.Kind != RandomRunner {
		t.Fatalf("expected random_runner, got %+v", got)
	}
	if got := m.TakeLatest(); got.Kind != Noop {
		t.Fatalf("expected noop after take, got %+v", got)
	}
}

func TestEmptyMailboxReadsNoop(t *testing.T) {
	m := New()
	if got := m.TakeLatest(); got.Kind != Noop {
		t.Fatalf("expected noop, got %+v", got)
	}
}

func TestDropHookRunsPerOverwrite(t *testing.T) {
	m := New()
	hooked := 0
	m.DropHook = func() { hooked++ }

	for i := 0; i < 3; i++ {
		if err := m.Update(Control{Kind: Standby}); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}
	if hooked != 2 {
		t.Fatalf("expected 2 hook calls, got %d", hooked)
	}
}

func TestUpdateAfterCloseFails(t *testing.T) {
	m := New()
	m.Close()
	if err := m.Update(Control{Kind: Exit}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
