package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jrcurtis/canvasgame/vmath"
)

// Color holds a color as both RGB and HSL plus an independent alpha
// RGB channels are in [0,255], hue in [0,360), saturation and lightness in [0,1], alpha in [0,1]
// Every setter recomputes the other representation before returning, so the pair is never stale
// The zero value is transparent black; use Black or ParseColor for opaque defaults
type Color struct {
	r, g, b float64
	h, s, l float64
	a       float64
}

// Black returns opaque black
func Black() Color {
	return FromRGB(0, 0, 0, 1)
}

// White returns opaque white
func White() Color {
	return FromRGB(255, 255, 255, 1)
}

// FromRGB builds a color from RGB channels in [0,255] and alpha in [0,1]
func FromRGB(r, g, b, a float64) Color {
	c := Color{r: r, g: g, b: b, a: a}
	c.updateHSL()
	return c
}

// FromHSL builds a color from hue in degrees, saturation and lightness in [0,1], and alpha
func FromHSL(h, s, l, a float64) Color {
	c := Color{h: h, s: s, l: l, a: a}
	c.updateRGB()
	return c
}

// FromColorful converts a go-colorful color, which carries no alpha
func FromColorful(cf colorful.Color, a float64) Color {
	return FromRGB(cf.R*255, cf.G*255, cf.B*255, a)
}

// ParseColor parses a CSS-style color string
// Accepted forms: "#rgb", "#rrggbb" (any digit count divisible by 3), "rgb(r,g,b)", "rgba(r,g,b,a)",
// "hsl(h,s%,l%)", "hsla(h,s%,l%,a)"
// Unrecognized prefixes yield opaque black; malformed numbers inside a recognized form yield NaN channels
func ParseColor(s string) Color {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(lower, "#"):
		return parseHexColor(lower[1:])
	case strings.HasPrefix(lower, "rgb"):
		args := parseArgs(s)
		return FromRGB(args[0], args[1], args[2], alphaArg(args))
	case strings.HasPrefix(lower, "hsl"):
		args := parseArgs(s)
		return FromHSL(args[0], args[1]/100, args[2]/100, alphaArg(args))
	default:
		return Black()
	}
}

// parseHexColor reads len(digits)/3 hex digits per channel, scaled from [0, 16^n-1] to [0,255]
func parseHexColor(digits string) Color {
	step := len(digits) / 3
	maxVal := math.Pow(16, float64(step)) - 1

	var rgb [3]float64
	for i := range rgb {
		n := parseHexPrefix(digits[i*step : (i+1)*step])
		rgb[i] = n / maxVal * 255
	}
	return FromRGB(rgb[0], rgb[1], rgb[2], 1)
}

// parseHexPrefix parses the longest leading run of hex digits, NaN if there is none
func parseHexPrefix(s string) float64 {
	end := 0
	for end < len(s) && isHexDigit(s[end]) {
		end++
	}
	if end == 0 {
		return math.NaN()
	}
	n, err := strconv.ParseUint(s[:end], 16, 64)
	if err != nil {
		return math.NaN()
	}
	return float64(n)
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// parseArgs splits the text after '(' on commas into at least four numbers
// Missing arguments are NaN
func parseArgs(s string) [4]float64 {
	args := [4]float64{math.NaN(), math.NaN(), math.NaN(), math.NaN()}
	open := strings.IndexByte(s, '(')
	for i, part := range strings.Split(s[open+1:], ",") {
		if i >= len(args) {
			break
		}
		args[i] = parseFloatPrefix(part)
	}
	return args
}

func alphaArg(args [4]float64) float64 {
	if math.IsNaN(args[3]) {
		return 1
	}
	return args[3]
}

// parseFloatPrefix parses the longest leading decimal literal after optional whitespace
// Trailing text such as "%" or ")" is ignored; no literal yields NaN
func parseFloatPrefix(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	// Exponent only counts when digits follow it
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func (c *Color) updateHSL() {
	c.h, c.s, c.l = RGBToHSL(c.r, c.g, c.b)
}

func (c *Color) updateRGB() {
	c.r, c.g, c.b = HSLToRGB(c.h, c.s, c.l)
}

func (c Color) R() float64 { return c.r }
func (c Color) G() float64 { return c.g }
func (c Color) B() float64 { return c.b }
func (c Color) H() float64 { return c.h }
func (c Color) S() float64 { return c.s }
func (c Color) L() float64 { return c.l }
func (c Color) A() float64 { return c.a }

func (c *Color) SetR(v float64) { c.r = v; c.updateHSL() }
func (c *Color) SetG(v float64) { c.g = v; c.updateHSL() }
func (c *Color) SetB(v float64) { c.b = v; c.updateHSL() }
func (c *Color) SetH(v float64) { c.h = v; c.updateRGB() }
func (c *Color) SetS(v float64) { c.s = v; c.updateRGB() }
func (c *Color) SetL(v float64) { c.l = v; c.updateRGB() }

// SetA changes alpha only
func (c *Color) SetA(v float64) { c.a = v }

// Hex returns "#rrggbb" with channels rounded to the nearest byte
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", toByte(c.r), toByte(c.g), toByte(c.b))
}

// RGBString returns "rgb(r,g,b)" with truncated channels
func (c Color) RGBString() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", floorInt(c.r), floorInt(c.g), floorInt(c.b))
}

// RGBAString returns "rgba(r,g,b,a)" with truncated channels
func (c Color) RGBAString() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", floorInt(c.r), floorInt(c.g), floorInt(c.b), formatAlpha(c.a))
}

// HSLString returns "hsl(h,s%,l%)" with integer hue and percentages
func (c Color) HSLString() string {
	return fmt.Sprintf("hsl(%.0f,%d%%,%d%%)", c.h, floorInt(c.s*100), floorInt(c.l*100))
}

// HSLAString returns "hsla(h,s%,l%,a)"
func (c Color) HSLAString() string {
	return fmt.Sprintf("hsla(%.0f,%d%%,%d%%,%s)", c.h, floorInt(c.s*100), floorInt(c.l*100), formatAlpha(c.a))
}

func (c Color) String() string {
	return c.RGBAString()
}

func formatAlpha(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

func floorInt(v float64) int64 {
	return int64(math.Floor(v))
}

// toByte rounds a channel into [0,255], NaN maps to 0
func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(vmath.Clamp(math.Round(v), 0, 255))
}

// NRGBA returns the non-premultiplied 8-bit form
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: toByte(c.r),
		G: toByte(c.g),
		B: toByte(c.b),
		A: toByte(c.a * 255),
	}
}

// FromImageColor converts any image/color value
func FromImageColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return FromRGB(float64(n.R), float64(n.G), float64(n.B), float64(n.A)/255)
}

// RGBA implements image/color.Color
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Colorful converts to a go-colorful color, dropping alpha
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.r / 255, G: c.g / 255, B: c.b / 255}
}

// Blend interpolates toward other in HCL space, alpha linearly
func (c Color) Blend(other Color, t float64) Color {
	mixed := c.Colorful().BlendHcl(other.Colorful(), t).Clamped()
	return FromColorful(mixed, c.a+(other.a-c.a)*t)
}

// RGBToHSL converts RGB channels in [0,255] to hue [0,360), saturation and lightness [0,1]
// Achromatic input (zero chroma) reports hue and saturation as 0
func RGBToHSL(r, g, b float64) (h, s, l float64) {
	r /= 255
	g /= 255
	b /= 255

	hi := max(r, g, b)
	lo := min(r, g, b)
	chroma := hi - lo

	if chroma != 0 {
		switch hi {
		case r:
			h = math.Mod((g-b)/chroma, 6)
		case g:
			h = (b-r)/chroma + 2
		default:
			h = (r-g)/chroma + 4
		}
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h -= 360
	}

	l = (hi + lo) / 2

	if chroma != 0 {
		s = chroma / (1 - math.Abs(2*l-1))
	}
	return h, s, l
}

// HSLToRGB converts hue in degrees (wrapped into [0,360)), saturation and lightness in [0,1]
// to RGB channels in [0,255]
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	chroma := (1 - math.Abs(2*l-1)) * s
	hp := vmath.Wrap(h, 0, 360) / 60
	if hp >= 6 {
		hp -= 6
	}
	x := chroma * (1 - math.Abs(math.Mod(hp, 2)-1))

	switch {
	case 0 <= hp && hp < 1:
		r, g, b = chroma, x, 0
	case 1 <= hp && hp < 2:
		r, g, b = x, chroma, 0
	case 2 <= hp && hp < 3:
		r, g, b = 0, chroma, x
	case 3 <= hp && hp < 4:
		r, g, b = 0, x, chroma
	case 4 <= hp && hp < 5:
		r, g, b = x, 0, chroma
	case 5 <= hp && hp < 6:
		r, g, b = chroma, 0, x
	default:
		nan := math.NaN()
		return nan, nan, nan
	}

	m := l - chroma/2
	return 255 * (r + m), 255 * (g + m), 255 * (b + m)
}
