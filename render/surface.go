package render

import (
	"image"
)

// Surface is the retained 2D drawing context a scene renders into
// Transforms compose onto the current matrix; Push and Pop save and restore it
type Surface interface {
	// Push saves the current transform and fill state
	Push()
	// Pop restores the most recently pushed state, no-op when the stack is empty
	Pop()

	Translate(x, y float64)
	Scale(x, y float64)
	Rotate(angle float64)

	SetFillColor(c Color)
	FillRect(x, y, w, h float64)

	// SetFontSize sets the text size in surface units
	SetFontSize(size float64)
	// MeasureText returns the advance width of s at the current font size
	MeasureText(s string) float64
	// FillText draws s with its baseline origin at (x, y)
	FillText(s string, x, y float64)

	DrawImage(img image.Image, x, y float64)

	// Size returns the drawable area in surface units
	Size() (w, h int)
}

// Shower is implemented by surfaces that buffer output until presented
type Shower interface {
	Show()
}
