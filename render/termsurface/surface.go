// Package termsurface renders scenes into a terminal grid through tcell
// Each cell stands for a CellWidth by CellHeight block of surface units;
// filled shapes paint cell backgrounds and text paints cell runes
package termsurface

import (
	"image"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/jrcurtis/canvasgame/render"
)

// Default cell size in surface units, roughly the aspect of a terminal glyph
const (
	DefaultCellWidth  = 10
	DefaultCellHeight = 20
)

// singularDet matches the threshold below which gg.Matrix.Invert gives up
const singularDet = 1e-10

// Surface is a render.Surface over a tcell.Screen
type Surface struct {
	render.TransformStack

	screen tcell.Screen
	cellW  float64
	cellH  float64
	cols   int
	rows   int

	// Cell backgrounds and glyphs, flushed to the screen by Show
	bg    []render.Color
	glyph []rune
	fg    []render.Color

	fill      render.Color
	fillStack []render.Color
	fontSize  float64
}

// New wraps an initialized screen; non-positive cell sizes fall back to the defaults
func New(screen tcell.Screen, cellW, cellH float64) *Surface {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	s := &Surface{
		TransformStack: render.NewTransformStack(),
		screen:         screen,
		cellW:          cellW,
		cellH:          cellH,
		fill:           render.Black(),
		fontSize:       cellH,
	}
	s.Resize()
	return s
}

// Resize reallocates the cell buffers to the current screen size
func (s *Surface) Resize() {
	s.cols, s.rows = s.screen.Size()
	n := s.cols * s.rows
	s.bg = make([]render.Color, n)
	s.glyph = make([]rune, n)
	s.fg = make([]render.Color, n)
	for i := range s.bg {
		s.bg[i] = render.Black()
		s.glyph[i] = ' '
	}
}

// Grid returns the size in cells
func (s *Surface) Grid() (cols, rows int) {
	return s.cols, s.rows
}

// CellSize returns the surface units covered by one cell
func (s *Surface) CellSize() (w, h float64) {
	return s.cellW, s.cellH
}

// ToSurface converts a cell position to the surface coordinates of its center
func (s *Surface) ToSurface(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

func (s *Surface) Size() (int, int) {
	return int(float64(s.cols) * s.cellW), int(float64(s.rows) * s.cellH)
}

func (s *Surface) Push() {
	s.TransformStack.Push()
	s.fillStack = append(s.fillStack, s.fill)
}

func (s *Surface) Pop() {
	s.TransformStack.Pop()
	if n := len(s.fillStack); n > 0 {
		s.fill = s.fillStack[n-1]
		s.fillStack = s.fillStack[:n-1]
	}
}

func (s *Surface) SetFillColor(c render.Color) {
	s.fill = c
}

// FillRect paints every cell whose center falls inside the transformed rectangle
// Translucent fills blend over the current background
func (s *Surface) FillRect(x, y, w, h float64) {
	if s.fill.A() <= 0 || w == 0 || h == 0 {
		return
	}
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}

	s.scan(x, y, w, h, func(i int, lx, ly float64) {
		if lx >= x && lx < x+w && ly >= y && ly < y+h {
			s.paint(i, s.fill)
			s.glyph[i] = ' '
		}
	})
}

// DrawImage samples img at each covered cell center, one image pixel per surface unit
func (s *Surface) DrawImage(img image.Image, x, y float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	s.scan(x, y, w, h, func(i int, lx, ly float64) {
		if lx < x || lx >= x+w || ly < y || ly >= y+h {
			return
		}
		px := b.Min.X + int(lx-x)
		py := b.Min.Y + int(ly-y)
		c := render.FromImageColor(img.At(px, py))
		if c.A() > 0 {
			s.paint(i, c)
			s.glyph[i] = ' '
		}
	})
}

// scan visits the cells inside the device bounding box of a local rectangle,
// passing each cell center mapped back into local coordinates
func (s *Surface) scan(x, y, w, h float64, visit func(i int, lx, ly float64)) {
	m := s.Current()
	// Degenerate transforms (zero scale) cover no cells
	if math.Abs(m.A*m.E-m.B*m.D) < singularDet {
		return
	}
	inv := m.Invert()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}} {
		dx, dy := render.Apply(m, p[0], p[1])
		minX, maxX = math.Min(minX, dx), math.Max(maxX, dx)
		minY, maxY = math.Min(minY, dy), math.Max(maxY, dy)
	}
	c0 := max(0, int(math.Floor(minX/s.cellW)))
	c1 := min(s.cols-1, int(math.Floor(maxX/s.cellW)))
	r0 := max(0, int(math.Floor(minY/s.cellH)))
	r1 := min(s.rows-1, int(math.Floor(maxY/s.cellH)))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cx, cy := s.ToSurface(col, row)
			lx, ly := render.Apply(inv, cx, cy)
			visit(row*s.cols+col, lx, ly)
		}
	}
}

func (s *Surface) paint(i int, c render.Color) {
	if c.A() >= 1 {
		s.bg[i] = c
		return
	}
	blended := s.bg[i].Blend(c, c.A())
	blended.SetA(1)
	s.bg[i] = blended
}

func (s *Surface) SetFontSize(size float64) {
	s.fontSize = size
}

// MeasureText returns the display width of str in surface units
// Terminal glyphs occupy whole cells, so the font size does not apply
func (s *Surface) MeasureText(str string) float64 {
	return float64(runewidth.StringWidth(str)) * s.cellW
}

// FillText writes str into the row containing the transformed baseline origin
func (s *Surface) FillText(str string, x, y float64) {
	dx, dy := render.Apply(s.Current(), x, y)
	row := int(math.Ceil(dy/s.cellH)) - 1
	if row < 0 || row >= s.rows || math.IsNaN(dx) {
		return
	}
	col := int(math.Floor(dx / s.cellW))
	for _, r := range str {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col >= 0 && col+rw <= s.cols {
			i := row*s.cols + col
			s.glyph[i] = r
			s.fg[i] = s.fill
			// Wide runes claim the following cell
			for k := 1; k < rw; k++ {
				s.glyph[i+k] = 0
			}
		}
		col += rw
		if col >= s.cols {
			break
		}
	}
}

// Cell returns the glyph and colors buffered for a cell
func (s *Surface) Cell(col, row int) (r rune, fg, bg render.Color, ok bool) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return 0, render.Color{}, render.Color{}, false
	}
	i := row*s.cols + col
	return s.glyph[i], s.fg[i], s.bg[i], true
}

// Show flushes the cell buffers to the screen
func (s *Surface) Show() {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			i := row*s.cols + col
			if s.glyph[i] == 0 {
				continue
			}
			style := tcell.StyleDefault.
				Background(ToTcell(s.bg[i])).
				Foreground(ToTcell(s.fg[i]))
			s.screen.SetContent(col, row, s.glyph[i], nil, style)
		}
	}
	s.screen.Show()
}

// ToTcell converts a color to a true-color tcell value, ignoring alpha
func ToTcell(c render.Color) tcell.Color {
	n := c.NRGBA()
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

// FromTcell converts a tcell color to an opaque color
// ColorDefault and unresolvable palette entries map to black
func FromTcell(c tcell.Color) render.Color {
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return render.Black()
	}
	return render.FromRGB(float64(r), float64(g), float64(b), 1)
}
