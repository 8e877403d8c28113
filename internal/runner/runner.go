// Package runner implements the animation behaviors driven by the
// actuation scheduler. The set of variants is closed: the scheduler
// swaps whole runners on control messages and feeds beat/novelty
// events into the active one.
package runner

import (
	"math"
	"math/rand"
	"time"

	"github.com/danmuck/wavectl/internal/led"
)

// Runner is one animation behavior. RunOnce advances continuous state
// and reports whether the frame must be redrawn this tick; Display
// writes the frame into the controller without committing it.
type Runner interface {
	Beat()
	Novelty(v float64)
	RunOnce(now time.Time) bool
	Display(c led.Controller) error
}

// base provides the defaulted no-op event handlers.
type base struct{}

func (base) Beat()           {}
func (base) Novelty(float64) {}

// Minimum hue jumps in degrees, sized so a color change is perceptible.
const (
	beatMinHueJump    = 72.0
	intenseMinHueJump = 36.0
)

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// hueDistance is the circular distance between two hues in degrees,
// always in [0, 180].
func hueDistance(a, b float64) float64 {
	d := math.Abs(wrapHue(a) - wrapHue(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// randomHueAway picks a uniform hue at least minDist degrees (circular)
// from current.
func randomHueAway(rng *rand.Rand, current, minDist float64) float64 {
	for {
		h := rng.Float64() * 360
		if hueDistance(h, current) >= minDist {
			return h
		}
	}
}
