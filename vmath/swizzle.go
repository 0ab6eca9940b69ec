package vmath

import (
	"slices"
	"strings"
)

// Axis indexes a Vector component
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

var axes = []Axis{AxisX, AxisY, AxisZ}

const axisLetters = "xyz"

// String returns the lower-case axis letter
func (a Axis) String() string {
	if int(a) >= len(axisLetters) {
		return "?"
	}
	return axisLetters[a : a+1]
}

// swizzleTable maps accessor names ("x", "zy", "xzz", ...) to axis lists
// Populated once at init from every length 1..3 sequence of axes with repetition
var (
	swizzleTable map[string][]Axis
	swizzleNames []string
)

func init() {
	swizzleTable = make(map[string][]Axis)
	for k := 1; k <= len(axes); k++ {
		for _, seq := range Permutations(axes, k) {
			name := swizzleName(seq)
			swizzleTable[name] = seq
			swizzleNames = append(swizzleNames, name)
		}
	}
}

func swizzleName(seq []Axis) string {
	var b strings.Builder
	for _, a := range seq {
		b.WriteString(a.String())
	}
	return b.String()
}

// Swizzles returns every generated accessor name, shortest first
func Swizzles() []string {
	return slices.Clone(swizzleNames)
}

// SwizzleAxes returns the axis list behind an accessor name
func SwizzleAxes(name string) ([]Axis, bool) {
	seq, ok := swizzleTable[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(seq), true
}

// At returns the component for axis a
func (v Vector) At(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// Set assigns the component for axis a
func (v *Vector) Set(a Axis, val float64) {
	switch a {
	case AxisX:
		v.X = val
	case AxisY:
		v.Y = val
	default:
		v.Z = val
	}
}

// Component reads the listed axes into the leading fields of a new Vector
// Fields past len(sel) keep v's own values at those positions
func (v Vector) Component(sel ...Axis) Vector {
	out := v
	for i, a := range sel[:min(len(sel), len(axes))] {
		out.Set(axes[i], v.At(a))
	}
	return out
}

// SetComponent writes the leading components of src into the listed axes
// Axes not listed are left untouched
func (v *Vector) SetComponent(sel []Axis, src Vector) {
	vals := src.Values()
	for _, p := range Zip(sel, vals[:]) {
		v.Set(p.First, p.Second)
	}
}

// Swizzle reads a named accessor, reporting false for unknown names
func (v Vector) Swizzle(name string) (Vector, bool) {
	seq, ok := swizzleTable[name]
	if !ok {
		return v, false
	}
	return v.Component(seq...), true
}

// SetSwizzle writes through a named accessor, reporting false for unknown names
func (v *Vector) SetSwizzle(name string, src Vector) bool {
	seq, ok := swizzleTable[name]
	if !ok {
		return false
	}
	v.SetComponent(seq, src)
	return true
}

// Named accessors for the selections used by scene and input code

func (v Vector) XY() Vector  { return v.Component(AxisX, AxisY) }
func (v Vector) YX() Vector  { return v.Component(AxisY, AxisX) }
func (v Vector) XZ() Vector  { return v.Component(AxisX, AxisZ) }
func (v Vector) ZX() Vector  { return v.Component(AxisZ, AxisX) }
func (v Vector) YZ() Vector  { return v.Component(AxisY, AxisZ) }
func (v Vector) ZY() Vector  { return v.Component(AxisZ, AxisY) }
func (v Vector) XYZ() Vector { return v.Component(AxisX, AxisY, AxisZ) }
func (v Vector) ZYX() Vector { return v.Component(AxisZ, AxisY, AxisX) }

func (v *Vector) SetXY(src Vector)  { v.SetComponent([]Axis{AxisX, AxisY}, src) }
func (v *Vector) SetYX(src Vector)  { v.SetComponent([]Axis{AxisY, AxisX}, src) }
func (v *Vector) SetXYZ(src Vector) { v.SetComponent([]Axis{AxisX, AxisY, AxisZ}, src) }
func (v *Vector) SetZYX(src Vector) { v.SetComponent([]Axis{AxisZ, AxisY, AxisX}, src) }
