// Command canvasgame-term runs the demo scene in a terminal
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jrcurtis/canvasgame/audio"
	"github.com/jrcurtis/canvasgame/audio/speakerout"
	"github.com/jrcurtis/canvasgame/config"
	"github.com/jrcurtis/canvasgame/demo"
	"github.com/jrcurtis/canvasgame/engine"
	"github.com/jrcurtis/canvasgame/logging"
	"github.com/jrcurtis/canvasgame/render/ggsurface"
	"github.com/jrcurtis/canvasgame/render/termsurface"
)

var (
	configFlag = flag.String("config", "", "YAML config file")
	debugFlag  = flag.Bool("debug", false, "Write logs and draw the debug overlay")
	muteFlag   = flag.Bool("mute", false, "Disable sound")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "canvasgame-term: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Debug = cfg.Debug || *debugFlag

	logger, closeLog, err := logging.Setup(logging.Options{Debug: cfg.Debug, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "canvasgame-term: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "canvasgame-term: create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "canvasgame-term: init screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.HideCursor()

	// Restore the terminal before reporting a crash so the trace stays readable
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			logger.Error("crashed", zap.Any("panic", r))
			fmt.Fprintf(os.Stderr, "\n\x1b[31mCANVASGAME CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	player := speakerout.New(audio.DefaultRate)
	if err := player.Start(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
	}
	defer player.Close()
	player.SetMuted(*muteFlag)

	surface := termsurface.New(screen, cfg.CellWidth, cfg.CellHeight)
	d, err := demo.Start(cfg, demo.Host{
		Surface: surface,
		Images:  ggsurface.Loader{},
		Sound:   player,
		Logger:  logger,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "canvasgame-term: %v\n", err)
		os.Exit(1)
	}

	err = run(d.Scene, screen, surface, cfg.HoldWindow, logger)
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "canvasgame-term: %v\n", err)
		os.Exit(1)
	}
}

// run drives the scene until Escape, Ctrl-C or a termination signal
func run(s *engine.Scene, screen tcell.Screen, surface *termsurface.Surface, hold time.Duration, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 256)
	go func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("event poller crashed", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				cancel()
			}
		}()
		forwardEvents(ctx, screen.PollEvent, events)
	}(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(ctx) })
	g.Go(func() error {
		defer cancel()
		return pump(ctx, s, events, surface, screen, hold)
	})
	return g.Wait()
}

// pump forwards terminal events into the scene through Post
func pump(ctx context.Context, s *engine.Scene, events <-chan tcell.Event, surface *termsurface.Surface, screen tcell.Screen, hold time.Duration) error {
	held := newHoldTracker(hold)
	release := time.NewTicker(max(hold/2, time.Millisecond))
	defer release.Stop()
	var buttons tcell.ButtonMask

	for {
		select {
		case <-ctx.Done():
			return nil

		case now := <-release.C:
			for _, key := range held.Expired(now) {
				s.Post(func() { s.Input.Release(key) })
			}

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				key, ok := keyID(ev.Key(), ev.Rune())
				if ok && held.Touch(key, time.Now()) {
					s.Post(func() { s.Input.Press(key) })
				}

			case *tcell.EventMouse:
				col, row := ev.Position()
				x, y := surface.ToSurface(col, row)
				down, up := buttonEdges(buttons, ev.Buttons())
				buttons = ev.Buttons()
				s.Post(func() {
					s.OnMouseMove(x, y)
					for _, b := range down {
						s.OnMouseDown(b)
					}
					for _, b := range up {
						s.OnMouseUp(b)
					}
				})

			case *tcell.EventResize:
				s.Post(func() {
					surface.Resize()
					screen.Sync()
				})
			}
		}
	}
}
