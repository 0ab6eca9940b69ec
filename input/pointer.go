package input

import (
	"github.com/jrcurtis/canvasgame/vmath"
)

// View is the camera placement used to map pointer coordinates into world space
type View struct {
	X, Y           float64
	ScaleX, ScaleY float64
}

// Move caches a pointer location given in surface coordinates
// With a view, the world location is (x - w/2) * ScaleX + X and likewise for y
func (s *State) Move(x, y, w, h float64, view *View) {
	s.raw = vmath.V(x, y, 0)
	if view == nil {
		s.mouse = s.raw
		return
	}
	s.mouse = vmath.V(
		(x-w/2)*view.ScaleX+view.X,
		(y-h/2)*view.ScaleY+view.Y,
		0,
	)
}

// Mouse returns the last pointer location in world coordinates
func (s *State) Mouse() vmath.Vector {
	return s.mouse
}

// RawMouse returns the last pointer location in surface coordinates
func (s *State) RawMouse() vmath.Vector {
	return s.raw
}

// Touch moves the pointer and presses the primary button
func (s *State) Touch(x, y, w, h float64, view *View) {
	s.Move(x, y, w, h, view)
	s.Press(MouseKey(0))
}

// TouchEnd releases the primary button
func (s *State) TouchEnd() {
	s.Release(MouseKey(0))
}
