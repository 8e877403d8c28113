// Package led defines the capability interface a render target must
// implement to be driven by the actuation scheduler. Physical backends
// (DMA strip drivers, PWM fixtures) live outside this repository.
package led

import (
	"errors"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	ErrShortFrame = errors.New("led: frame shorter than led count")
	ErrOutOfRange = errors.New("led: index out of range")
	ErrCommit     = errors.New("led: commit failed")
)

// Controller is the abstract operation set over an LED target. Commit
// may block until the transmission window completes; all other calls
// only touch the pending frame.
type Controller interface {
	// IndividuallyAddressable reports whether per-pixel writes reach
	// distinct LEDs. A single RGB fixture reports false.
	IndividuallyAddressable() bool
	LedCount() int
	SetAll(c colorful.Color)
	// SetAllIndividual fails when colors has fewer entries than LedCount.
	SetAllIndividual(colors []colorful.Color) error
	SetIndividual(i int, c colorful.Color) error
	// Commit flushes the pending frame to hardware.
	Commit() error
	// Reset blanks all LEDs and commits.
	Reset() error
}
