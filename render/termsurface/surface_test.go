package termsurface

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrcurtis/canvasgame/render"
)

func newSurface(t *testing.T, cols, rows int) (*Surface, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return New(screen, 10, 20), screen
}

func bgHex(t *testing.T, s *Surface, col, row int) string {
	t.Helper()
	_, _, bg, ok := s.Cell(col, row)
	require.True(t, ok)
	return bg.Hex()
}

func TestGeometry(t *testing.T) {
	s, _ := newSurface(t, 8, 4)
	w, h := s.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 80, h)

	cols, rows := s.Grid()
	assert.Equal(t, 8, cols)
	assert.Equal(t, 4, rows)

	x, y := s.ToSurface(1, 2)
	assert.Equal(t, 15.0, x)
	assert.Equal(t, 50.0, y)

	d := New(tcell.NewSimulationScreen("UTF-8"), 0, -1)
	cw, ch := d.CellSize()
	assert.Equal(t, float64(DefaultCellWidth), cw)
	assert.Equal(t, float64(DefaultCellHeight), ch)
}

func TestFillRectCoversCellCenters(t *testing.T) {
	s, _ := newSurface(t, 8, 4)
	s.SetFillColor(render.ParseColor("#f00"))
	s.FillRect(10, 20, 20, 20)

	assert.Equal(t, "#ff0000", bgHex(t, s, 1, 1))
	assert.Equal(t, "#ff0000", bgHex(t, s, 2, 1))
	assert.Equal(t, "#000000", bgHex(t, s, 0, 1))
	assert.Equal(t, "#000000", bgHex(t, s, 3, 1))
	assert.Equal(t, "#000000", bgHex(t, s, 1, 2))

	// Negative extents are normalized
	s.SetFillColor(render.ParseColor("#00f"))
	s.FillRect(80, 80, -10, -20)
	assert.Equal(t, "#0000ff", bgHex(t, s, 7, 3))
}

func TestFillRectUnderTransform(t *testing.T) {
	s, _ := newSurface(t, 8, 4)
	s.SetFillColor(render.ParseColor("#0f0"))

	s.Push()
	s.Translate(40, 40)
	s.Scale(2, 1)
	s.SetFillColor(render.ParseColor("#f00"))
	s.FillRect(0, 0, 10, 20)
	s.Pop()

	assert.Equal(t, "#ff0000", bgHex(t, s, 4, 2))
	assert.Equal(t, "#ff0000", bgHex(t, s, 5, 2))
	assert.Equal(t, "#000000", bgHex(t, s, 6, 2))

	// Pop restored the fill color and transform
	s.FillRect(0, 0, 10, 20)
	assert.Equal(t, "#00ff00", bgHex(t, s, 0, 0))
	assert.Equal(t, 0, s.Depth())
}

func TestFillRectRotatedAndDegenerate(t *testing.T) {
	s, _ := newSurface(t, 8, 4)
	s.SetFillColor(render.ParseColor("#f00"))

	// Quarter turn about (40, 40): local +x points down the screen
	s.Push()
	s.Translate(40, 40)
	s.Rotate(math.Pi / 2)
	s.FillRect(0, -10, 20, 10)
	s.Pop()
	assert.Equal(t, "#ff0000", bgHex(t, s, 4, 2))
	assert.Equal(t, "#000000", bgHex(t, s, 3, 2))
	assert.Equal(t, "#000000", bgHex(t, s, 4, 1))

	// Zero scale collapses everything and paints nothing
	s.SetFillColor(render.ParseColor("#00f"))
	s.Push()
	s.Scale(0, 1)
	s.FillRect(0, 0, 80, 80)
	s.Pop()
	assert.Equal(t, "#000000", bgHex(t, s, 0, 0))
}

func TestTranslucentFillBlends(t *testing.T) {
	s, _ := newSurface(t, 2, 1)
	s.SetFillColor(render.White())
	s.FillRect(0, 0, 20, 20)

	s.SetFillColor(render.FromRGB(0, 0, 0, 0))
	s.FillRect(0, 0, 20, 20)
	assert.Equal(t, "#ffffff", bgHex(t, s, 0, 0), "transparent fill is skipped")

	s.SetFillColor(render.FromRGB(0, 0, 0, 0.5))
	s.FillRect(0, 0, 20, 20)
	_, _, bg, _ := s.Cell(0, 0)
	assert.Less(t, bg.L(), 0.9)
	assert.Greater(t, bg.L(), 0.1)
	assert.Equal(t, 1.0, bg.A())
}

func TestText(t *testing.T) {
	s, screen := newSurface(t, 10, 3)
	assert.Equal(t, 50.0, s.MeasureText("hello"))
	assert.Equal(t, 40.0, s.MeasureText("世界"), "wide runes take two cells")

	s.SetFontSize(40)
	assert.Equal(t, 50.0, s.MeasureText("hello"), "font size does not change cell width")

	s.SetFillColor(render.White())
	s.FillText("hi", 10, 40)
	r, fg, _, _ := s.Cell(1, 1)
	assert.Equal(t, 'h', r)
	assert.Equal(t, "#ffffff", fg.Hex())
	r, _, _, _ = s.Cell(2, 1)
	assert.Equal(t, 'i', r)

	// Text off the grid is dropped
	s.FillText("x", 0, -5)
	s.FillText("toolongforthegrid", 50, 20)
	r, _, _, _ = s.Cell(9, 0)
	assert.Equal(t, 'o', r)

	s.Show()
	got, _, _, _ := screen.GetContent(1, 1)
	assert.Equal(t, 'h', got)
}

func TestDrawImage(t *testing.T) {
	s, _ := newSurface(t, 4, 2)
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x < 10 {
				img.SetNRGBA(x, y, color.NRGBA{0, 0, 255, 255})
			}
		}
	}
	s.DrawImage(img, 10, 0)

	assert.Equal(t, "#0000ff", bgHex(t, s, 1, 0))
	assert.Equal(t, "#000000", bgHex(t, s, 2, 0), "transparent pixels leave the cell")
	assert.Equal(t, "#000000", bgHex(t, s, 0, 0))
	assert.NotPanics(t, func() { s.DrawImage(nil, 0, 0) })
}

func TestColorConversion(t *testing.T) {
	c := render.ParseColor("#102030")
	tc := ToTcell(c)
	r, g, b := tc.RGB()
	assert.Equal(t, [3]int32{0x10, 0x20, 0x30}, [3]int32{r, g, b})
	assert.Equal(t, "#102030", FromTcell(tc).Hex())
	assert.Equal(t, "#000000", FromTcell(tcell.ColorDefault).Hex())
}
