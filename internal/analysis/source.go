// Package analysis defines the boundary to the audio-analysis
// subsystem that produces telemetry samples. The session layer treats
// samples as opaque; producing them (capture, FFT, beat detection) is
// outside this repository.
package analysis

import (
	"math"
	"math/rand"
	"time"
)

// Sample is one loudness/beat telemetry reading.
type Sample struct {
	Novelty float64
	Peak    float64
	Beat    bool
}

// Source produces samples at its own cadence. Next blocks until the
// next sample is available.
type Source interface {
	Next() (Sample, error)
}

// SyntheticConfig tunes the built-in sample generator.
type SyntheticConfig struct {
	// SampleInterval is the cadence of Next.
	SampleInterval time.Duration
	// BeatInterval spaces the synthetic beats.
	BeatInterval time.Duration
	// Seed fixes the noise sequence; zero seeds from the clock.
	Seed int64
}

func DefaultSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{
		SampleInterval: 50 * time.Millisecond,
		BeatInterval:   500 * time.Millisecond,
	}
}

// Synthetic generates a plausible novelty curve with periodic beats so
// the remote binary can run without an audio pipeline.
type Synthetic struct {
	cfg      SyntheticConfig
	rng      *rand.Rand
	start    time.Time
	lastBeat time.Time

	nowFn   func() time.Time
	sleepFn func(time.Duration)
}

func NewSynthetic(cfg SyntheticConfig) *Synthetic {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Synthetic{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		nowFn:   time.Now,
		sleepFn: time.Sleep,
	}
}

// Next sleeps one sample interval and returns the next reading. Peak
// is fixed at 1 so the novelty value is already normalized.
func (s *Synthetic) Next() (Sample, error) {
	s.sleepFn(s.cfg.SampleInterval)

	now := s.nowFn()
	if s.start.IsZero() {
		s.start = now
		s.lastBeat = now
	}

	beat := false
	if now.Sub(s.lastBeat) >= s.cfg.BeatInterval {
		s.lastBeat = now
		beat = true
	}

	// Slow sine swell plus noise, clamped to [0, 1].
	phase := now.Sub(s.start).Seconds() * 2 * math.Pi / 4
	novelty := 0.5 + 0.35*math.Sin(phase) + 0.15*(s.rng.Float64()*2-1)
	if beat {
		novelty = math.Max(novelty, 0.85)
	}
	novelty = math.Max(0, math.Min(1, novelty))

	return Sample{Novelty: novelty, Peak: 1, Beat: beat}, nil
}
