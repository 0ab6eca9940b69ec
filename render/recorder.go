package render

import (
	"image"
	"unicode/utf8"
)

// Call is one recorded surface operation
type Call struct {
	Op        string
	Args      []float64
	Text      string
	Fill      Color
	Transform Affine // transform in effect when the call was made
}

// Recorder is an in-memory Surface that records every call
// Used by tests and headless runs that only need the draw order
type Recorder struct {
	TransformStack

	W, H  int
	Calls []Call

	fill      Color
	fontSize  float64
	fillStack []Color
}

// NewRecorder creates a recorder reporting the given size
func NewRecorder(w, h int) *Recorder {
	return &Recorder{
		TransformStack: NewTransformStack(),
		W:              w,
		H:              h,
		fill:           Black(),
		fontSize:       10,
	}
}

func (r *Recorder) record(op string, text string, args ...float64) {
	r.Calls = append(r.Calls, Call{
		Op:        op,
		Args:      args,
		Text:      text,
		Fill:      r.fill,
		Transform: r.Current(),
	})
}

func (r *Recorder) Push() {
	r.TransformStack.Push()
	r.fillStack = append(r.fillStack, r.fill)
	r.record("push", "")
}

func (r *Recorder) Pop() {
	r.TransformStack.Pop()
	if n := len(r.fillStack); n > 0 {
		r.fill = r.fillStack[n-1]
		r.fillStack = r.fillStack[:n-1]
	}
	r.record("pop", "")
}

func (r *Recorder) Translate(x, y float64) {
	r.TransformStack.Translate(x, y)
	r.record("translate", "", x, y)
}

func (r *Recorder) Scale(x, y float64) {
	r.TransformStack.Scale(x, y)
	r.record("scale", "", x, y)
}

func (r *Recorder) Rotate(angle float64) {
	r.TransformStack.Rotate(angle)
	r.record("rotate", "", angle)
}

func (r *Recorder) SetFillColor(c Color) {
	r.fill = c
	r.record("fill", c.RGBAString())
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.record("rect", "", x, y, w, h)
}

func (r *Recorder) SetFontSize(size float64) {
	r.fontSize = size
	r.record("font", "", size)
}

// MeasureText uses a fixed advance of half the font size per rune
func (r *Recorder) MeasureText(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.fontSize / 2
}

func (r *Recorder) FillText(s string, x, y float64) {
	r.record("text", s, x, y)
}

func (r *Recorder) DrawImage(img image.Image, x, y float64) {
	b := img.Bounds()
	r.record("image", "", x, y, float64(b.Dx()), float64(b.Dy()))
}

func (r *Recorder) Size() (int, int) {
	return r.W, r.H
}

// Ops returns the recorded operation names in order
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Filter returns the recorded calls with the given op
func (r *Recorder) Filter(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears recorded calls and transform state
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.TransformStack.Reset()
	r.fillStack = r.fillStack[:0]
	r.fill = Black()
}
