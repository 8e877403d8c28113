// Package scheduler runs the actuation loop: a fixed-period tick that
// drains the control mailbox, drives the active runner and flushes
// frames to the LED controller. It owns the controller exclusively for
// its whole lifetime.
package scheduler

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/wavectl/internal/led"
	"github.com/danmuck/wavectl/internal/mailbox"
	"github.com/danmuck/wavectl/internal/observability"
	"github.com/danmuck/wavectl/internal/runner"
)

// Config holds the scheduler's tick and standby animation settings.
type Config struct {
	Period         time.Duration
	StandbySpeed   float64
	StandbyReverse bool
}

func DefaultConfig() Config {
	return Config{
		Period:       50 * time.Millisecond,
		StandbySpeed: 1.0,
	}
}

// Scheduler ticks at a fixed period and reacts to mailbox controls.
type Scheduler struct {
	cfg  Config
	ctrl led.Controller
	box  *mailbox.Mailbox
	log  zerolog.Logger
	rng  *rand.Rand

	nowFn   func() time.Time
	sleepFn func(time.Duration)

	done chan struct{}
	err  error
}

func New(cfg Config, ctrl led.Controller, box *mailbox.Mailbox, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		ctrl:    ctrl,
		box:     box,
		log:     log.With().Str("component", "scheduler").Logger(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		nowFn:   time.Now,
		sleepFn: time.Sleep,
		done:    make(chan struct{}),
	}
}

// Run executes the tick loop until an Exit control arrives or a commit
// fails. It must be called at most once. Once the loop is gone the
// mailbox closes with it, so producers see the dead consumer instead
// of filling a slot nobody drains.
func (s *Scheduler) Run() error {
	defer close(s.done)
	defer s.box.Close()
	s.log.Info().Dur("period", s.cfg.Period).Msg("actuation loop started")

	var active runner.Runner = runner.NewNoop()
	for {
		start := s.nowFn()
		exit := false

		ctl := s.box.TakeLatest()
		switch ctl.Kind {
		case mailbox.Standby:
			active = runner.NewStandby(s.cfg.StandbySpeed, s.cfg.StandbyReverse)
			s.log.Info().Msg("runner: standby")
		case mailbox.RandomRunner:
			active = s.pickRunner()
			s.log.Info().Type("runner", active).Msg("runner selected")
		case mailbox.Analysis:
			if ctl.IsBeat {
				active.Beat()
			}
			active.Novelty(ctl.Novelty)
		case mailbox.Exit:
			exit = true
		case mailbox.Noop:
		}

		committed := false
		if active.RunOnce(start) {
			if err := active.Display(s.ctrl); err != nil {
				s.err = fmt.Errorf("scheduler: display: %w", err)
				return s.err
			}
			if err := s.ctrl.Commit(); err != nil {
				// Don't keep driving hardware in an unknown state.
				s.log.Error().Err(err).Msg("commit failed, stopping actuation loop")
				s.err = fmt.Errorf("scheduler: commit: %w", err)
				return s.err
			}
			committed = true
		}

		elapsed := s.nowFn().Sub(start)
		observability.RecordTick(elapsed, committed)

		if exit {
			s.log.Info().Msg("actuation loop exit")
			return nil
		}

		if remaining := s.cfg.Period - elapsed; remaining > 0 {
			s.sleepFn(remaining)
		}
	}
}

// pickRunner draws the next music-reactive animation at random.
func (s *Scheduler) pickRunner() runner.Runner {
	switch s.rng.Intn(3) {
	case 0:
		return runner.NewBeat(s.rng)
	case 1:
		return runner.NewWhite()
	default:
		return runner.NewIntense(s.rng)
	}
}

// Start runs the loop on its own goroutine.
func (s *Scheduler) Start() {
	go func() {
		if err := s.Run(); err != nil {
			s.log.Error().Err(err).Msg("actuation loop failed")
		}
	}()
}

// Stop posts an Exit control and waits for the loop to finish. A
// mailbox already closed by a failed loop just means there is nothing
// left to stop.
func (s *Scheduler) Stop() error {
	if err := s.box.Update(mailbox.Control{Kind: mailbox.Exit}); err != nil {
		<-s.done
		return s.err
	}
	<-s.done
	return s.err
}
