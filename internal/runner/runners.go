package runner

import (
	"math/rand"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/danmuck/wavectl/internal/led"
)

// Noop never draws. It is the scheduler's initial runner.
type Noop struct {
	base
}

func NewNoop() *Noop { return &Noop{} }

func (*Noop) RunOnce(time.Time) bool       { return false }
func (*Noop) Display(led.Controller) error { return nil }

// Standby sweeps a rainbow continuously while no session is streaming.
// Speed is in hue cycles per second.
type Standby struct {
	base
	hue     float64
	speed   float64
	reverse bool
	last    time.Time
}

func NewStandby(speed float64, reverse bool) *Standby {
	return &Standby{speed: speed, reverse: reverse}
}

func (s *Standby) RunOnce(now time.Time) bool {
	if s.last.IsZero() {
		s.last = now
		return true
	}
	delta := now.Sub(s.last).Seconds()
	s.hue = wrapHue(s.hue + delta*s.speed*360)
	s.last = now
	return true
}

func (s *Standby) Display(c led.Controller) error {
	if !c.IndividuallyAddressable() {
		c.SetAll(colorful.Hsv(s.hue, 1, 1))
		return nil
	}
	count := c.LedCount()
	colors := make([]colorful.Color, count)
	for i := range colors {
		offset := float64(i) / float64(count) * 360
		idx := i
		if s.reverse {
			idx = count - 1 - i
		}
		colors[idx] = colorful.Hsv(wrapHue(s.hue+offset), 1, 1)
	}
	return c.SetAllIndividual(colors)
}

// Beat jumps to a distant random hue on every beat and stays put in
// between, so only beat ticks redraw.
type Beat struct {
	base
	hue   float64
	dirty bool
	rng   *rand.Rand
}

func NewBeat(rng *rand.Rand) *Beat {
	return &Beat{dirty: true, rng: rng}
}

func (b *Beat) Beat() {
	b.hue = randomHueAway(b.rng, b.hue, beatMinHueJump)
	b.dirty = true
}

func (b *Beat) RunOnce(time.Time) bool {
	if !b.dirty {
		return false
	}
	b.dirty = false
	return true
}

func (b *Beat) Display(c led.Controller) error {
	c.SetAll(colorful.Hsv(b.hue, 1, 1))
	return nil
}

// Intense reacts to both beats and novelty: brightness snaps to full on
// a beat and decays continuously, hue re-randomizes when the novelty
// signal spikes.
type Intense struct {
	hue        float64
	brightness float64
	gravity    float64
	threshold  float64
	floor      float64
	last       time.Time
	rng        *rand.Rand
}

func NewIntense(rng *rand.Rand) *Intense {
	return &Intense{
		brightness: 1,
		gravity:    1.5,
		threshold:  0.3,
		floor:      0.08,
		rng:        rng,
	}
}

func (r *Intense) Beat() {
	r.brightness = 1
}

func (r *Intense) Novelty(v float64) {
	if v > r.threshold {
		r.hue = randomHueAway(r.rng, r.hue, intenseMinHueJump)
	}
}

func (r *Intense) RunOnce(now time.Time) bool {
	if r.last.IsZero() {
		r.last = now
		return true
	}
	delta := now.Sub(r.last).Seconds()
	r.brightness -= r.gravity * delta
	if r.brightness < r.floor {
		r.brightness = r.floor
	}
	r.last = now
	return true
}

func (r *Intense) Display(c led.Controller) error {
	c.SetAll(colorful.Hsv(r.hue, 1, r.brightness))
	return nil
}

// White is a brightness-only decay runner, kept for bring-up against
// new hardware where color order is still unknown.
type White struct {
	base
	value   float64
	gravity float64
	last    time.Time
}

func NewWhite() *White {
	return &White{gravity: 2}
}

func (w *White) Beat() {
	w.value = 1
}

func (w *White) RunOnce(now time.Time) bool {
	if w.last.IsZero() {
		w.last = now
		return true
	}
	delta := now.Sub(w.last).Seconds()
	w.value -= w.gravity * delta
	if w.value < 0 {
		w.value = 0
	}
	w.last = now
	return true
}

func (w *White) Display(c led.Controller) error {
	c.SetAll(colorful.Color{R: w.value, G: w.value, B: w.value})
	return nil
}
