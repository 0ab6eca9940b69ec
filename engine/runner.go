package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Interval returns the tick period as a duration
func (s *Scene) Interval() time.Duration {
	return time.Duration(s.Dt * float64(time.Second))
}

// Post queues fn to run on the Run goroutine between ticks
// Hosts deliver input through Post so it never overlaps a tick
// Blocks when the queue is full and no Run loop is draining it
func (s *Scene) Post(fn func()) {
	s.posts <- fn
}

// Running reports whether Run is active
func (s *Scene) Running() bool {
	return s.running.Load()
}

// Run drives Tick at the scene rate until ctx is done
// Deadlines advance by a fixed interval; after falling more than two ticks
// behind the schedule restarts from now instead of bursting
// Returns ErrRunning if another Run is active and nil when ctx ends
func (s *Scene) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer s.running.Store(false)

	interval := s.Interval()
	s.statRunning.Store(true)
	defer s.statRunning.Store(false)
	s.logger.Info("scene started", zap.Float64("fps", s.FPS), zap.Duration("interval", interval))

	next := s.clock.Now().Add(interval)
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scene stopped",
				zap.Float64("time", s.Time),
				zap.Int64("ticks", s.statTicks.Load()),
				zap.Int64("skipped", s.statSkipped.Load()))
			return nil

		case fn := <-s.posts:
			fn()

		case <-timer.C:
			s.Tick()

			now := s.clock.Now()
			next = next.Add(interval)
			if now.Sub(next) > 2*interval {
				next = now.Add(interval)
			}
			timer.Reset(max(next.Sub(now), 0))
		}
	}
}
