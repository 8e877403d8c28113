package led

import (
	"fmt"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Memory is an in-process Controller backed by a plain frame buffer.
// It stands in for hardware in tests, local development and the
// reset subcommand.
type Memory struct {
	mu          sync.Mutex
	pending     []colorful.Color
	committed   []colorful.Color
	addressable bool
	commits     int
	commitErr   error
}

// NewMemory returns a Memory controller with count pixels. addressable
// selects between strip and single-fixture behavior.
func NewMemory(count int, addressable bool) *Memory {
	return &Memory{
		pending:     make([]colorful.Color, count),
		committed:   make([]colorful.Color, count),
		addressable: addressable,
	}
}

func (m *Memory) IndividuallyAddressable() bool { return m.addressable }

func (m *Memory) LedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (m *Memory) SetAll(c colorful.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.pending {
		m.pending[i] = c
	}
}

func (m *Memory) SetAllIndividual(colors []colorful.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(colors) < len(m.pending) {
		return fmt.Errorf("%w: got %d want %d", ErrShortFrame, len(colors), len(m.pending))
	}
	copy(m.pending, colors)
	return nil
}

func (m *Memory) SetIndividual(i int, c colorful.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.pending) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	m.pending[i] = c
	return nil
}

func (m *Memory) Commit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.commitErr != nil {
		return m.commitErr
	}
	copy(m.committed, m.pending)
	m.commits++
	return nil
}

func (m *Memory) Reset() error {
	m.SetAll(colorful.Color{})
	return m.Commit()
}

// Commits reports how many frames have been flushed.
func (m *Memory) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}

// Committed returns a copy of the last flushed frame.
func (m *Memory) Committed() []colorful.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]colorful.Color, len(m.committed))
	copy(out, m.committed)
	return out
}

// FailCommits makes subsequent Commit calls return err. Passing nil
// restores normal behavior.
func (m *Memory) FailCommits(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitErr = err
}
