package demo

import (
	"go.uber.org/zap"

	"github.com/jrcurtis/canvasgame/audio"
	"github.com/jrcurtis/canvasgame/config"
	"github.com/jrcurtis/canvasgame/engine"
	"github.com/jrcurtis/canvasgame/render"
)

// Host bundles what a binary provides to run the demo
type Host struct {
	Surface render.Surface
	Images  engine.ImageLoader // Optional
	Sound   Sounder            // Optional
	Logger  *zap.Logger
}

// Start builds a scene from cfg on the host surface, populates it and queues the configured resources
func Start(cfg config.Config, h Host, extra ...engine.Option) (*Demo, error) {
	opts := []engine.Option{
		engine.WithFPS(cfg.FPS),
		engine.WithClearColor(cfg.BackgroundColor()),
		engine.WithSoundLoader(audio.Loader{}),
	}
	if h.Logger != nil {
		opts = append(opts, engine.WithLogger(h.Logger))
	}
	if h.Images != nil {
		opts = append(opts, engine.WithImageLoader(h.Images))
	}
	opts = append(opts, extra...)

	s, err := engine.NewScene(h.Surface, opts...)
	if err != nil {
		return nil, err
	}
	s.Debug = cfg.Debug

	o := DefaultOptions()
	o.Sprites = cfg.Images
	o.Sound = h.Sound
	d := New(s, o)
	if len(cfg.Sounds) > 0 {
		s.LoadSounds(cfg.Sounds...)
	}

	s.Logger().Info("demo started",
		zap.Float64("fps", cfg.FPS),
		zap.Int("objects", len(s.Objects())),
		zap.Int("pending", s.Pending()),
	)
	return d, nil
}
