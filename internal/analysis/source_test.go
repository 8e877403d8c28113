package analysis

import (
	"testing"
	"time"
)

func TestSyntheticSamplesAreNormalized(t *testing.T) {
	cfg := DefaultSyntheticConfig()
	cfg.Seed = 7
	s := NewSynthetic(cfg)
	now := time.Unix(1700000000, 0)
	s.nowFn = func() time.Time { return now }
	s.sleepFn = func(d time.Duration) { now = now.Add(d) }

	for i := 0; i < 100; i++ {
		sample, err := s.Next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if sample.Peak != 1 {
			t.Fatalf("peak must be 1, got %v", sample.Peak)
		}
		if sample.Novelty < 0 || sample.Novelty > 1 {
			t.Fatalf("novelty out of range: %v", sample.Novelty)
		}
	}
}

func TestSyntheticBeatCadence(t *testing.T) {
	cfg := SyntheticConfig{
		SampleInterval: 50 * time.Millisecond,
		BeatInterval:   200 * time.Millisecond,
		Seed:           3,
	}
	s := NewSynthetic(cfg)
	now := time.Unix(1700000000, 0)
	s.nowFn = func() time.Time { return now }
	s.sleepFn = func(d time.Duration) { now = now.Add(d) }

	beats := 0
	for i := 0; i < 40; i++ {
		sample, err := s.Next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if sample.Beat {
			beats++
		}
	}
	// 40 samples x 50ms = 2s of audio; one beat per 200ms.
	if beats < 8 || beats > 12 {
		t.Fatalf("unexpected beat count: %d", beats)
	}
}
