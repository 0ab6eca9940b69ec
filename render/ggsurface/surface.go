// Package ggsurface renders scenes into an in-memory RGBA image with gogpu/gg
package ggsurface

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jrcurtis/canvasgame/render"
)

const defaultFontSize = 10

// Surface is a render.Surface over a gg.Context
// Text is placed through the current transform and scaled by it; rotation does not apply to glyphs
type Surface struct {
	ctx *gg.Context

	font     *text.FontSource
	fontSize float64
	faces    map[float64]text.Face

	fill      render.Color
	fillStack []render.Color

	images map[image.Image]*gg.ImageBuf
	err    error
}

// New creates a w by h surface using the Go Regular font
func New(w, h int) (*Surface, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	s := &Surface{
		ctx:    gg.NewContext(w, h),
		font:   src,
		faces:  make(map[float64]text.Face),
		images: make(map[image.Image]*gg.ImageBuf),
	}
	s.SetFontSize(defaultFontSize)
	s.SetFillColor(render.Black())
	return s, nil
}

func (s *Surface) Push() {
	s.ctx.Push()
	s.fillStack = append(s.fillStack, s.fill)
}

func (s *Surface) Pop() {
	s.ctx.Pop()
	if n := len(s.fillStack); n > 0 {
		s.SetFillColor(s.fillStack[n-1])
		s.fillStack = s.fillStack[:n-1]
	}
}

func (s *Surface) Translate(x, y float64) { s.ctx.Translate(x, y) }
func (s *Surface) Scale(x, y float64)     { s.ctx.Scale(x, y) }
func (s *Surface) Rotate(angle float64)   { s.ctx.Rotate(angle) }

func (s *Surface) SetFillColor(c render.Color) {
	s.fill = c
	s.ctx.SetRGBA(c.R()/255, c.G()/255, c.B()/255, c.A())
}

// FillRect fills a rectangle; the first rasterizer error is kept for Err
func (s *Surface) FillRect(x, y, w, h float64) {
	s.ctx.DrawRectangle(x, y, w, h)
	if err := s.ctx.Fill(); err != nil && s.err == nil {
		s.err = fmt.Errorf("fill rect: %w", err)
	}
}

func (s *Surface) SetFontSize(size float64) {
	s.fontSize = size
}

func (s *Surface) face(size float64) text.Face {
	size = math.Round(size*4) / 4
	f, ok := s.faces[size]
	if !ok {
		f = s.font.Face(size)
		s.faces[size] = f
	}
	return f
}

// MeasureText returns the advance width of str in user units
func (s *Surface) MeasureText(str string) float64 {
	s.ctx.SetFont(s.face(s.fontSize))
	w, _ := s.ctx.MeasureString(str)
	return w
}

func (s *Surface) FillText(str string, x, y float64) {
	dx, dy := s.ctx.TransformPoint(x, y)
	ux, uy := s.ctx.TransformPoint(x+1, y)
	scale := math.Hypot(ux-dx, uy-dy)
	if scale == 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return
	}

	// Glyphs are rasterized in device space
	s.ctx.Push()
	s.ctx.Identity()
	s.ctx.SetFont(s.face(s.fontSize * scale))
	s.ctx.DrawString(str, dx, dy)
	s.ctx.Pop()
}

// DrawImage draws img with its top-left corner at (x, y) under the current transform
// Converted images are cached by identity
func (s *Surface) DrawImage(img image.Image, x, y float64) {
	buf, ok := s.images[img]
	if !ok {
		if b, isBuf := img.(interface{ ImageBuf() *gg.ImageBuf }); isBuf {
			buf = b.ImageBuf()
		} else {
			buf = gg.ImageBufFromImage(img)
		}
		s.images[img] = buf
	}
	s.ctx.DrawImage(buf, x, y)
}

func (s *Surface) Size() (int, int) {
	return s.ctx.Width(), s.ctx.Height()
}

// Image returns the rendered pixels
func (s *Surface) Image() image.Image {
	return s.ctx.Image()
}

// RGBA returns the rendered pixels as a premultiplied RGBA image
func (s *Surface) RGBA() *image.RGBA {
	img := s.ctx.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}

func (s *Surface) SavePNG(path string) error {
	return s.ctx.SavePNG(path)
}

// Err returns the first drawing error, if any
func (s *Surface) Err() error {
	return s.err
}

// Close releases renderer resources
func (s *Surface) Close() error {
	return s.ctx.Close()
}
