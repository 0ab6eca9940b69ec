// Package demo builds the sample scene shared by the canvasgame binaries
package demo

import (
	"go.uber.org/zap"

	"github.com/jrcurtis/canvasgame/audio"
	"github.com/jrcurtis/canvasgame/engine"
	"github.com/jrcurtis/canvasgame/input"
	"github.com/jrcurtis/canvasgame/render"
	"github.com/jrcurtis/canvasgame/vmath"
)

// Sound names looked up in the scene before falling back to generated clips
const (
	ClickSound = "click"
	ReadySound = "ready"
)

// Sounder plays clips; audio.Player satisfies it
type Sounder interface {
	Play(c *audio.Clip)
}

type Options struct {
	Boxes   int     // Boxes in the hue sweep
	Spacing float64 // Distance between sweep boxes
	BoxSize float64
	Speed   float64 // Player speed in units per second
	Follow  float64 // Camera easing rate, <= 0 snaps to the player
	Sprites []string
	Sound   Sounder
}

func DefaultOptions() Options {
	return Options{
		Boxes:   12,
		Spacing: 60,
		BoxSize: 40,
		Speed:   200,
		Follow:  4,
	}
}

// Demo is a populated scene: a ring of hue-swept boxes, a steerable player and a following camera
// Clicking spawns a box under the pointer; space toggles the debug overlay
type Demo struct {
	Scene   *engine.Scene
	Player  *Player
	Camera  *Follow
	Boxes   []*Box
	Spawned []*Box

	opts  Options
	click *audio.Clip
	ready *audio.Clip
}

// New adds the demo objects to s and starts loading any sprites
func New(s *engine.Scene, opts Options) *Demo {
	d := &Demo{
		Scene: s,
		opts:  opts,
		click: audio.Blip(audio.DefaultRate),
		ready: audio.Chime(audio.DefaultRate),
	}

	d.Boxes = Sweep(opts.Boxes, opts.Spacing, opts.BoxSize)
	for _, b := range d.Boxes {
		s.AddObject(b)
	}

	d.Player = NewPlayer(0, 0, opts.BoxSize*0.75, opts.Speed)
	s.AddObject(d.Player)

	d.Camera = NewFollow(&d.Player.Entity, opts.Follow)
	s.SetCamera(d.Camera)

	for i, path := range opts.Sprites {
		x := float64(i) * opts.Spacing
		s.AddObject(NewSprite(engine.ResourceName(path), x, -opts.Spacing*2, 5))
	}
	s.AddObject(d)

	if len(opts.Sprites) > 0 {
		s.OnLoad(func(*engine.Scene) { d.play(ReadySound, d.ready) })
		s.LoadImages(opts.Sprites...)
	}
	return d
}

// Sweep lays n boxes in a row with hues spread evenly around the color wheel
// Boxes alternate between two depth layers so some overlap the player
func Sweep(n int, spacing, size float64) []*Box {
	boxes := make([]*Box, 0, n)
	for i := range n {
		hue := 360 * float64(i) / float64(max(n, 1))
		x := (float64(i) - float64(n-1)/2) * spacing
		z := float64(i%2) * 20
		b := NewBox(x, spacing*1.5, z, size, render.FromHSL(hue, 0.8, 0.5, 1))
		b.Spin = float64(i%3) * 0.5
		b.Drift = 30
		boxes = append(boxes, b)
	}
	return boxes
}

// Update handles the demo's global controls
func (d *Demo) Update(dt float64, s *engine.Scene) {
	if s.KeyPressed(input.MouseKey(0)) {
		d.spawn(s, s.MouseLoc())
	}
	if s.KeyPressed(input.SpaceKey) {
		s.Debug = !s.Debug
		s.Logger().Debug("debug overlay toggled", zap.Bool("on", s.Debug))
	}
}

func (d *Demo) spawn(s *engine.Scene, at vmath.Vector) {
	c := render.FromHSL(vmath.RandRange(0, 360), 0.9, 0.6, 0.85)
	b := NewBox(at.X, at.Y, vmath.Choose(-5.0, 15.0), d.opts.BoxSize/2, c)
	b.Spin = vmath.RandRange(-2, 2)
	s.AddObject(b)
	d.Spawned = append(d.Spawned, b)
	d.play(ClickSound, d.click)
	s.Logger().Debug("box spawned", zap.Float64("x", at.X), zap.Float64("y", at.Y))
}

// play prefers a loaded sound resource over the generated fallback
func (d *Demo) play(name string, fallback *audio.Clip) {
	if d.opts.Sound == nil {
		return
	}
	if clip, ok := d.Scene.Sound(name); ok {
		d.opts.Sound.Play(clip)
		return
	}
	d.opts.Sound.Play(fallback)
}

func (d *Demo) Draw(*engine.Scene) {}

// Depth places the controller above everything, it draws nothing
func (d *Demo) Depth() float64 { return 1e9 }

func (d *Demo) Attach(*engine.Scene) {}
