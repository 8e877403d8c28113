// Package mailbox provides the single-slot handoff between the network
// and actuation contexts. New values overwrite unconsumed ones: the
// consumer only ever sees the freshest state.
package mailbox

import (
	"errors"
	"sync"
)

var ErrClosed = errors.New("mailbox: closed")

// Kind discriminates control values.
type Kind uint8

const (
	Noop Kind = iota
	Standby
	RandomRunner
	Analysis
	Exit
)

func (k Kind) String() string {
	switch k {
	case Noop:
		return "noop"
	case Standby:
		return "standby"
	case RandomRunner:
		return "random_runner"
	case Analysis:
		return "analysis"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// Control is one value passed through the mailbox. Novelty and IsBeat
// are only meaningful for Kind == Analysis.
type Control struct {
	Kind    Kind
	Novelty float64
	IsBeat  bool
}

// Mailbox is a one-slot, last-write-wins producer/consumer handoff.
// The zero slot reads as Noop.
type Mailbox struct {
	// DropHook, when set, runs each time an unconsumed value is
	// overwritten. Set it before the producer starts.
	DropHook func()

	mu      sync.Mutex
	pending Control
	has     bool
	closed  bool
	drops   uint64
}

func New() *Mailbox {
	return &Mailbox{}
}

// Update replaces any unconsumed value with c. It never blocks.
func (m *Mailbox) Update(c Control) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.has {
		m.drops++
		if m.DropHook != nil {
			m.DropHook()
		}
	}
	m.pending = c
	m.has = true
	return nil
}

// TakeLatest returns the pending value and resets the slot, or a Noop
// control when nothing is pending.
func (m *Mailbox) TakeLatest() Control {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.has {
		return Control{Kind: Noop}
	}
	c := m.pending
	m.pending = Control{}
	m.has = false
	return c
}

// Drops reports how many unconsumed values have been overwritten.
func (m *Mailbox) Drops() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drops
}

// Close marks the consumer gone. Subsequent Updates fail with ErrClosed.
func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}
