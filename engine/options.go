package engine

import (
	"go.uber.org/zap"

	"github.com/jrcurtis/canvasgame/render"
	"github.com/jrcurtis/canvasgame/status"
)

// Option configures a Scene at construction
type Option func(*Scene)

// WithFPS sets the tick rate; non-positive values make NewScene fail
func WithFPS(fps float64) Option {
	return func(s *Scene) { s.FPS = fps }
}

// WithLogger replaces the default no-op logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithImageLoader(l ImageLoader) Option {
	return func(s *Scene) { s.imageLoader = l }
}

func WithSoundLoader(l SoundLoader) Option {
	return func(s *Scene) { s.soundLoader = l }
}

// WithClearColor sets the color the surface is cleared to each tick
func WithClearColor(c render.Color) Option {
	return func(s *Scene) { s.clear = c }
}

// WithMetrics publishes scene metrics into reg instead of a private registry
func WithMetrics(reg *status.Registry) Option {
	return func(s *Scene) { s.metrics = reg }
}

// WithClock sets the clock used for pacing and frame timing
func WithClock(c Clock) Option {
	return func(s *Scene) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLoadLimit bounds the number of concurrent resource loads
func WithLoadLimit(n int) Option {
	return func(s *Scene) {
		if n > 0 {
			s.loadLimit = n
		}
	}
}
