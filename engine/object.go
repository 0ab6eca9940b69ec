package engine

import (
	"github.com/jrcurtis/canvasgame/input"
	"github.com/jrcurtis/canvasgame/render"
	"github.com/jrcurtis/canvasgame/vmath"
)

// Object is anything a Scene updates and draws each tick
type Object interface {
	// Update advances the object by dt seconds
	Update(dt float64, s *Scene)
	// Draw renders the object onto the scene surface
	Draw(s *Scene)
	// Depth orders drawing, lower first
	Depth() float64
	// Attach is called by Scene.AddObject
	Attach(s *Scene)
}

// Camera is consulted once per tick to place the view
type Camera interface {
	Update(dt float64, s *Scene)
	View() View
}

// View is a camera placement in world coordinates
type View struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rot            float64
}

// Pointer converts the view to the form used for pointer mapping
func (v View) Pointer() *input.View {
	return &input.View{X: v.X, Y: v.Y, ScaleX: v.ScaleX, ScaleY: v.ScaleY}
}

// Entity is the embeddable base for scene objects
// X, Y and Z are authoritative; Loc mirrors them after every update
// ScaleX and ScaleY of zero are unset and take Scale at the next update
type Entity struct {
	X, Y, Z float64
	Loc     vmath.Vector

	Rot            float64
	Scale          float64
	ScaleX, ScaleY float64

	scene *Scene
}

// NewEntity returns an entity at the given position with unit scale
func NewEntity(x, y, z float64) Entity {
	return Entity{X: x, Y: y, Z: z, Loc: vmath.V(x, y, z), Scale: 1}
}

// Scene returns the owning scene, nil until attached
func (e *Entity) Scene() *Scene {
	return e.scene
}

func (e *Entity) Attach(s *Scene) {
	e.scene = s
	if e.Scale == 0 {
		e.Scale = 1
	}
}

func (e *Entity) Depth() float64 {
	return e.Z
}

// Update refreshes Loc and fills unset axis scales
func (e *Entity) Update(dt float64, s *Scene) {
	e.Loc = vmath.V(e.X, e.Y, e.Z)
	if e.ScaleX == 0 {
		e.ScaleX = e.Scale
	}
	if e.ScaleY == 0 {
		e.ScaleY = e.Scale
	}
}

// Draw applies the entity transform and draws nothing
func (e *Entity) Draw(s *Scene) {
	e.DrawWith(s, nil)
}

// DrawWith runs paint inside the entity's local frame
// The surface state is restored afterwards, so siblings never see this transform
func (e *Entity) DrawWith(s *Scene, paint func(render.Surface)) {
	sf := s.Surface()
	sx, sy := e.scales()

	sf.Push()
	sf.Translate(e.X, e.Y)
	sf.Scale(sx, sy)
	sf.Rotate(e.Rot)
	if paint != nil {
		paint(sf)
	}
	sf.Pop()
}

// View lets any entity act as a camera
func (e *Entity) View() View {
	sx, sy := e.scales()
	return View{X: e.X, Y: e.Y, ScaleX: sx, ScaleY: sy, Rot: e.Rot}
}

func (e *Entity) scales() (float64, float64) {
	sx, sy := e.ScaleX, e.ScaleY
	if sx == 0 {
		sx = e.Scale
	}
	if sy == 0 {
		sy = e.Scale
	}
	return sx, sy
}
