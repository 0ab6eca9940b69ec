package ggsurface

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrcurtis/canvasgame/render"
)

func newSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := New(w, h)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// rgb8 returns the 8-bit channels at (x, y)
func rgb8(img image.Image, x, y int) (uint8, uint8, uint8, uint8) {
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return c.R, c.G, c.B, c.A
}

func TestFillRectUnderTransform(t *testing.T) {
	s := newSurface(t, 40, 40)
	w, h := s.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 40, h)

	s.SetFillColor(render.ParseColor("#fff"))
	s.FillRect(0, 0, 40, 40)
	s.SetFillColor(render.ParseColor("#00f"))

	s.Push()
	s.Translate(20, 0)
	s.Scale(2, 2)
	s.SetFillColor(render.ParseColor("#f00"))
	s.FillRect(0, 0, 5, 5)
	s.Pop()

	// Fill color is restored by Pop
	s.FillRect(0, 30, 5, 5)
	require.NoError(t, s.Err())

	img := s.Image()
	r, g, b, a := rgb8(img, 25, 5)
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, [4]uint8{r, g, b, a}, "scaled rect covers (25,5)")

	r, g, b, _ = rgb8(img, 5, 5)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})

	r, g, b, _ = rgb8(img, 2, 32)
	assert.Equal(t, [3]uint8{0, 0, 255}, [3]uint8{r, g, b})

	rgba := s.RGBA()
	assert.Len(t, rgba.Pix, 40*40*4)
	assert.Equal(t, uint8(255), rgba.RGBAAt(25, 5).R)
}

func TestTextMeasureAndDraw(t *testing.T) {
	s := newSurface(t, 120, 40)
	s.SetFillColor(render.White())
	s.FillRect(0, 0, 120, 40)

	s.SetFontSize(10)
	small := s.MeasureText("Hello")
	s.SetFontSize(20)
	large := s.MeasureText("Hello")
	assert.Positive(t, small)
	assert.InDelta(t, 2*small, large, small*0.25)

	s.SetFillColor(render.Black())
	s.FillText("Hello", 2, 30)

	img := s.Image()
	dark := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 120; x++ {
			if r, _, _, _ := rgb8(img, x, y); r < 128 {
				dark++
			}
		}
	}
	assert.Positive(t, dark, "glyphs were rasterized")
}

func TestLoaderAndDrawImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{0, 0, 255, 255})
		}
	}
	path := filepath.Join(t.TempDir(), "blue.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := Loader{}.LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	s := newSurface(t, 16, 16)
	s.DrawImage(img, 8, 8)
	s.DrawImage(img, 8, 8)
	assert.Len(t, s.images, 1, "conversion is cached")

	r, g, b, _ := rgb8(s.Image(), 10, 10)
	assert.Equal(t, [3]uint8{0, 0, 255}, [3]uint8{r, g, b})

	_, err = Loader{}.LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestSavePNG(t *testing.T) {
	s := newSurface(t, 8, 8)
	s.SetFillColor(render.ParseColor("#0f0"))
	s.FillRect(0, 0, 8, 8)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, s.SavePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	_, g, _, _ := rgb8(img, 4, 4)
	assert.Equal(t, uint8(255), g)
}
