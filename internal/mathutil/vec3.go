package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
// Used for world positions, ray directions and linear colors alike.
type Vec3 [3]float64

// V3 builds a Vec3 from components.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

func (a Vec3) X() float64 { return a[0] }
func (a Vec3) Y() float64 { return a[1] }
func (a Vec3) Z() float64 { return a[2] }

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Mul is the component-wise (Hadamard) product, used to tint colors.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Reflect mirrors v about the plane with unit normal n.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// MinScalar caps every component at m.
func (v Vec3) MinScalar(m float64) Vec3 {
	return Vec3{math.Min(v[0], m), math.Min(v[1], m), math.Min(v[2], m)}
}
