package raytrace

import (
	"math"

	"sphere-viewer/internal/mathutil"
)

// NoSpecular disables the highlight term for a material.
const NoSpecular = -1

// Material describes how a surface reflects light. Color channels are in
// 0..255 space.
type Material struct {
	Color        mathutil.Vec3
	Albedo       float64
	Specular     float64 // Phong exponent, NoSpecular to disable
	Reflectivity float64 // 0..1 mirror blend
}

// Ray is a half-line from Origin along the unit vector Direction.
type Ray struct {
	Origin    mathutil.Vec3
	Direction mathutil.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mathutil.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Element is a surface that rays can hit.
type Element interface {
	// Intersect returns the distance to the nearest hit in front of the
	// ray origin.
	Intersect(r Ray) (float64, bool)
	Normal(p mathutil.Vec3) mathutil.Vec3
	Surface() *Material
}

// Sphere is a solid ball.
type Sphere struct {
	Center   mathutil.Vec3
	Radius   float64
	Material Material
}

func (s *Sphere) Intersect(r Ray) (float64, bool) {
	toCenter := s.Center.Sub(r.Origin)
	along := toCenter.Dot(r.Direction)
	d2 := toCenter.Dot(toCenter) - along*along
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return 0, false
	}
	half := math.Sqrt(r2 - d2)
	t0, t1 := along-half, along+half
	if t0 < 0 && t1 < 0 {
		return 0, false
	}
	return math.Min(t0, t1), true
}

func (s *Sphere) Normal(p mathutil.Vec3) mathutil.Vec3 {
	return p.Sub(s.Center).Normalize()
}

func (s *Sphere) Surface() *Material { return &s.Material }

// Plane is an infinite plane through Origin. Facing points away from the
// visible side, so rays hit it when they travel along Facing.
type Plane struct {
	Origin   mathutil.Vec3
	Facing   mathutil.Vec3
	Material Material
}

func (p *Plane) Intersect(r Ray) (float64, bool) {
	denom := p.Facing.Dot(r.Direction)
	if denom <= 1e-6 {
		return 0, false
	}
	t := p.Origin.Sub(r.Origin).Dot(p.Facing) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

func (p *Plane) Normal(mathutil.Vec3) mathutil.Vec3 {
	return p.Facing.Neg()
}

func (p *Plane) Surface() *Material { return &p.Material }

// World is everything one frame traces against.
type World struct {
	Elements []Element
	Lights   []Light
	FOV      float64 // horizontal field of view, degrees
}

// hit is the nearest intersection along a ray.
type hit struct {
	element  Element
	distance float64
}

// trace returns the nearest element the ray hits.
func (w *World) trace(r Ray) (hit, bool) {
	nearest := hit{distance: math.Inf(1)}
	found := false
	for _, e := range w.Elements {
		if d, ok := e.Intersect(r); ok && d < nearest.distance {
			nearest = hit{element: e, distance: d}
			found = true
		}
	}
	return nearest, found
}

// Scene constants for the default world.
var (
	MovableSphereOrigin = mathutil.V3(0, -0.5, -4.5)
	white               = mathutil.V3(1, 1, 1)
)

// DefaultWorld builds the viewer's scene: a mirror-like red sphere displaced
// by offset, a green and a blue sphere, a grey floor, and ambient,
// directional and point lights whose intensities scale with brightness.
func DefaultWorld(brightness float64, offset mathutil.Vec3) *World {
	return &World{
		FOV: 70,
		Elements: []Element{
			&Sphere{
				Center: MovableSphereOrigin.Add(offset),
				Radius: 1,
				Material: Material{
					Color: mathutil.V3(255, 0, 0), Albedo: 1, Specular: 50, Reflectivity: 0.9,
				},
			},
			&Sphere{
				Center: mathutil.V3(2, 1, -2.6),
				Radius: 1,
				Material: Material{
					Color: mathutil.V3(0, 255, 0), Albedo: 1, Specular: 50,
				},
			},
			&Sphere{
				Center: mathutil.V3(-3, -1, -5.5),
				Radius: 1,
				Material: Material{
					Color: mathutil.V3(0, 0, 255), Albedo: 1, Specular: 10, Reflectivity: 0.2,
				},
			},
			&Plane{
				Origin: mathutil.V3(0, -4, 0),
				Facing: mathutil.V3(0, -1, 0),
				Material: Material{
					Color: mathutil.V3(60, 60, 60), Albedo: 1, Specular: NoSpecular,
				},
			},
		},
		Lights: []Light{
			{Kind: LightAmbient, Color: white, Intensity: 0.06 * brightness},
			{Kind: LightDirectional, Color: white, Intensity: 0.8 * brightness, Direction: mathutil.V3(0, -1, -2).Normalize()},
			{Kind: LightPoint, Color: white, Intensity: 6.2 * brightness, Position: mathutil.V3(-1, -1, -2.5)},
		},
	}
}
