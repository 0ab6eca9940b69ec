package demo

import (
	"math"

	"github.com/jrcurtis/canvasgame/engine"
	"github.com/jrcurtis/canvasgame/input"
	"github.com/jrcurtis/canvasgame/render"
	"github.com/jrcurtis/canvasgame/vmath"
)

// Box is a filled square centered on its position
type Box struct {
	engine.Entity
	Size  float64
	Color render.Color
	Spin  float64 // Radians per second
	Drift float64 // Hue degrees per second
}

// NewBox returns a box of the given size and color at (x, y) on layer z
func NewBox(x, y, z, size float64, c render.Color) *Box {
	return &Box{Entity: engine.NewEntity(x, y, z), Size: size, Color: c}
}

func (b *Box) Update(dt float64, s *engine.Scene) {
	b.Entity.Update(dt, s)
	b.Rot = vmath.Wrap(b.Rot+b.Spin*dt, 0, 2*math.Pi)
	if b.Drift != 0 {
		b.Color.SetH(vmath.Wrap(b.Color.H()+b.Drift*dt, 0, 360))
	}
}

func (b *Box) Draw(s *engine.Scene) {
	b.DrawWith(s, func(sf render.Surface) {
		sf.SetFillColor(b.Color)
		sf.FillRect(-b.Size/2, -b.Size/2, b.Size, b.Size)
	})
}

// Movement bindings, either key of a pair moves the player
var (
	leftKeys  = []string{input.ArrowLeft, "A"}
	rightKeys = []string{input.ArrowRight, "D"}
	upKeys    = []string{input.ArrowUp, "W"}
	downKeys  = []string{input.ArrowDown, "S"}
)

// Player is a box steered by the arrow keys or WASD
type Player struct {
	Box
	Speed float64 // Units per second
}

func NewPlayer(x, y, size, speed float64) *Player {
	p := &Player{Box: *NewBox(x, y, 10, size, render.White()), Speed: speed}
	return p
}

// Heading returns the unit direction selected by the held keys, zero when idle
func (p *Player) Heading(s *engine.Scene) vmath.Vector {
	var dir vmath.Vector
	if anyDown(s, leftKeys) {
		dir.X--
	}
	if anyDown(s, rightKeys) {
		dir.X++
	}
	if anyDown(s, upKeys) {
		dir.Y--
	}
	if anyDown(s, downKeys) {
		dir.Y++
	}
	if dir.Magnitude() == 0 {
		return dir
	}
	return dir.Normalized()
}

func (p *Player) Update(dt float64, s *engine.Scene) {
	step := p.Heading(s).Mul(p.Speed * dt)
	p.X += step.X
	p.Y += step.Y
	p.Box.Update(dt, s)
}

func anyDown(s *engine.Scene, keys []string) bool {
	for _, k := range keys {
		if s.KeyDown(k) {
			return true
		}
	}
	return false
}

// Follow is a camera that eases toward a target entity
type Follow struct {
	engine.Entity
	Target *engine.Entity
	Rate   float64 // Fraction of the remaining distance closed per second, <= 0 snaps
}

func NewFollow(target *engine.Entity, rate float64) *Follow {
	f := &Follow{Entity: engine.NewEntity(target.X, target.Y, 0), Target: target, Rate: rate}
	return f
}

func (f *Follow) Update(dt float64, s *engine.Scene) {
	if f.Target != nil {
		t := 1.0
		if f.Rate > 0 {
			t = vmath.Clamp(f.Rate*dt, 0, 1)
		}
		f.X += (f.Target.X - f.X) * t
		f.Y += (f.Target.Y - f.Y) * t
	}
	f.Entity.Update(dt, s)
}

// Sprite draws a loaded image resource, or nothing until it is available
type Sprite struct {
	engine.Entity
	Name string
}

func NewSprite(name string, x, y, z float64) *Sprite {
	return &Sprite{Entity: engine.NewEntity(x, y, z), Name: name}
}

func (sp *Sprite) Draw(s *engine.Scene) {
	img, ok := s.Image(sp.Name)
	if !ok {
		return
	}
	b := img.Bounds()
	sp.DrawWith(s, func(sf render.Surface) {
		sf.DrawImage(img, -float64(b.Dx())/2, -float64(b.Dy())/2)
	})
}
