package vmath

import (
	"math"
)

// Vector is a float64 3D vector
// Arithmetic returns new values; only Normalize and the setters mutate the receiver
type Vector struct {
	X, Y, Z float64
}

// V returns a Vector from its components
func V(x, y, z float64) Vector {
	return Vector{x, y, z}
}

// Values returns the components in axis order
func (v Vector) Values() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// SetValues assigns all three components
func (v *Vector) SetValues(vs [3]float64) {
	v.X, v.Y, v.Z = vs[0], vs[1], vs[2]
}

func (v Vector) Add(w Vector) Vector {
	return Vector{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

func (v Vector) Sub(w Vector) Vector {
	return Vector{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Mul scales every component by s
func (v Vector) Mul(s float64) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

// Div divides every component by s, s == 0 yields Inf/NaN components
func (v Vector) Div(s float64) Vector {
	return Vector{v.X / s, v.Y / s, v.Z / s}
}

// Cross returns v × w
func (v Vector) Cross(w Vector) Vector {
	return Vector{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Dot returns v ⋅ w
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Magnitude returns the Euclidean norm
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns the unit vector in the direction of v
// The zero vector produces NaN components
func (v Vector) Normalized() Vector {
	return v.Div(v.Magnitude())
}

// Normalize scales v in place to unit length
func (v *Vector) Normalize() {
	m := v.Magnitude()
	v.X /= m
	v.Y /= m
	v.Z /= m
}

// Angle returns the angle in radians between v and w
func (v Vector) Angle(w Vector) float64 {
	return math.Acos(v.Dot(w) / (v.Magnitude() * w.Magnitude()))
}

// Projection returns the vector projection of v onto w
func (v Vector) Projection(w Vector) Vector {
	return w.Mul(v.Dot(w) / w.Dot(w))
}

// Distance returns the Euclidean distance between v and w
func (v Vector) Distance(w Vector) float64 {
	dx := v.X - w.X
	dy := v.Y - w.Y
	dz := v.Z - w.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// IsFinite reports whether no component is NaN or infinite
func (v Vector) IsFinite() bool {
	for _, c := range v.Values() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Winding reports the winding of a closed path as drawn on a y-down surface:
// true for clockwise, false for counter-clockwise
// Paths with fewer than three points are reported clockwise; degenerate paths
// with zero area are counter-clockwise
func Winding(path []Vector) bool {
	if len(path) < 3 {
		return true
	}

	// Shoelace sum, negative twice the signed area in y-down coordinates
	var sum float64
	for i := range path {
		j := (i + 1) % len(path)
		sum += (path[j].X - path[i].X) * (path[j].Y + path[i].Y)
	}
	return sum < 0
}
