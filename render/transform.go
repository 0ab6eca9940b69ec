package render

import (
	"github.com/gogpu/gg"
)

// Affine is a 2D affine transform, x' = A*x + B*y + C, y' = D*x + E*y + F
type Affine = gg.Matrix

// Apply maps a point through m
func Apply(m Affine, x, y float64) (float64, float64) {
	p := m.TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}

// TransformStack tracks the current transform with save/restore semantics
// Surfaces without native transforms embed it
// Each call post-multiplies, so the latest transform applies to points first
type TransformStack struct {
	cur   Affine
	saved []Affine
}

// NewTransformStack starts at identity
func NewTransformStack() TransformStack {
	return TransformStack{cur: gg.Identity()}
}

func (t *TransformStack) Push() {
	t.saved = append(t.saved, t.cur)
}

// Pop restores the last pushed transform, no-op when nothing is saved
func (t *TransformStack) Pop() {
	if len(t.saved) == 0 {
		return
	}
	t.cur = t.saved[len(t.saved)-1]
	t.saved = t.saved[:len(t.saved)-1]
}

func (t *TransformStack) Translate(x, y float64) { t.cur = t.cur.Multiply(gg.Translate(x, y)) }
func (t *TransformStack) Scale(x, y float64)     { t.cur = t.cur.Multiply(gg.Scale(x, y)) }
func (t *TransformStack) Rotate(angle float64)   { t.cur = t.cur.Multiply(gg.Rotate(angle)) }

// Current returns the active transform
func (t *TransformStack) Current() Affine {
	return t.cur
}

// Depth returns the number of saved states
func (t *TransformStack) Depth() int {
	return len(t.saved)
}

// Reset drops saved states and returns to identity
func (t *TransformStack) Reset() {
	t.cur = gg.Identity()
	t.saved = t.saved[:0]
}
