// Command canvasgame-window runs the demo scene in a desktop window
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/jrcurtis/canvasgame/audio"
	"github.com/jrcurtis/canvasgame/audio/speakerout"
	"github.com/jrcurtis/canvasgame/config"
	"github.com/jrcurtis/canvasgame/demo"
	"github.com/jrcurtis/canvasgame/engine"
	"github.com/jrcurtis/canvasgame/input"
	"github.com/jrcurtis/canvasgame/logging"
	"github.com/jrcurtis/canvasgame/render/ggsurface"
)

var (
	configFlag = flag.String("config", "", "YAML config file")
	debugFlag  = flag.Bool("debug", false, "Write logs and draw the debug overlay")
	muteFlag   = flag.Bool("mute", false, "Disable sound")
)

// Scene button order: primary, middle, secondary
var mouseButtons = [...]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButtonRight,
}

// game adapts a scene to ebiten; ebiten calls Update at the scene rate on one goroutine
type game struct {
	scene   *engine.Scene
	surface *ggsurface.Surface
	frame   *ebiten.Image
	logger  *zap.Logger

	keys    []ebiten.Key
	touches []ebiten.TouchID
	touch   ebiten.TouchID
	touched bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if id, ok := input.KeyFromName(k.String()); ok {
			g.scene.Input.Press(id)
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if id, ok := input.KeyFromName(k.String()); ok {
			g.scene.Input.Release(id)
		}
	}

	x, y := ebiten.CursorPosition()
	g.scene.OnMouseMove(float64(x), float64(y))
	for i, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			g.scene.OnMouseDown(i)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			g.scene.OnMouseUp(i)
		}
	}

	g.updateTouch()
	g.scene.Tick()
	return g.surface.Err()
}

// updateTouch follows the first finger down as the primary pointer
func (g *game) updateTouch() {
	if !g.touched {
		g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
		if len(g.touches) == 0 {
			return
		}
		g.touch, g.touched = g.touches[0], true
		x, y := ebiten.TouchPosition(g.touch)
		g.scene.OnTouchStart(float64(x), float64(y))
		return
	}
	if inpututil.IsTouchJustReleased(g.touch) {
		g.touched = false
		g.scene.OnTouchEnd()
		return
	}
	x, y := ebiten.TouchPosition(g.touch)
	g.scene.OnTouchMove(float64(x), float64(y))
}

func (g *game) Draw(screen *ebiten.Image) {
	g.frame.WritePixels(g.surface.RGBA().Pix)
	screen.DrawImage(g.frame, nil)
}

func (g *game) Layout(int, int) (int, int) {
	return g.surface.Size()
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "canvasgame-window: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return err
		}
	}
	cfg.Debug = cfg.Debug || *debugFlag

	logger, closeLog, err := logging.Setup(logging.Options{Debug: cfg.Debug, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer closeLog()

	player := speakerout.New(audio.DefaultRate)
	if err := player.Start(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
	}
	defer player.Close()
	player.SetMuted(*muteFlag)

	surface, err := ggsurface.New(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer surface.Close()

	d, err := demo.Start(cfg, demo.Host{
		Surface: surface,
		Images:  ggsurface.Loader{},
		Sound:   player,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle("canvasgame")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(int(cfg.FPS + 0.5))

	g := &game{
		scene:   d.Scene,
		surface: surface,
		frame:   ebiten.NewImage(cfg.Width, cfg.Height),
		logger:  logger,
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	logger.Info("window closed", zap.Any("metrics", d.Scene.Metrics().Snapshot()))
	return nil
}
