package raytrace

import (
	"math"

	"sphere-viewer/internal/mathutil"
)

// LightKind selects how a Light contributes.
type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
	LightPoint
)

// Light is a white or tinted light source. Direction is used by directional
// lights (unit vector the light travels along), Position by point lights.
type Light struct {
	Kind      LightKind
	Color     mathutil.Vec3
	Intensity float64
	Direction mathutil.Vec3
	Position  mathutil.Vec3
}

// Shading constants.
const (
	shadowBias     = 1e-4
	reflectionBias = 1e-5
	maxChannel     = 255.0
)

// ReflectionMissColor is what mirrors show when a reflected ray escapes.
var ReflectionMissColor = mathutil.V3(40, 40, 60)

// shade computes the color seen along r at h, following reflections up to
// depth more bounces.
func (w *World) shade(r Ray, h hit, depth int) mathutil.Vec3 {
	point := r.At(h.distance)
	normal := h.element.Normal(point)
	mat := h.element.Surface()

	color := mat.Color
	intensity := 0.0
	for _, l := range w.Lights {
		color = color.Mul(l.Color)
		switch l.Kind {
		case LightAmbient:
			intensity += l.Intensity
		case LightDirectional:
			toLight := l.Direction.Neg()
			ndl := normal.Dot(toLight)
			shadow := Ray{Origin: point.Add(normal.Scale(shadowBias)), Direction: toLight}
			if _, blocked := w.trace(shadow); ndl > 0 && !blocked {
				intensity += ndl * l.Intensity
			}
		case LightPoint:
			toLight := l.Position.Sub(point)
			dist2 := toLight.Dot(toLight)
			li := l.Intensity / dist2
			toLight = toLight.Normalize()

			ndl := normal.Dot(toLight)
			shadow := Ray{Origin: point.Add(normal.Scale(shadowBias)), Direction: toLight}
			sh, blocked := w.trace(shadow)
			lit := !blocked || sh.distance*sh.distance > dist2
			if ndl > 0 && lit {
				intensity += ndl * li
			}

			if mat.Specular != NoSpecular {
				exit := normal.Scale(2 * toLight.Dot(normal)).Sub(toLight).Normalize()
				if resemblance := exit.Dot(r.Direction.Neg()); resemblance > 0 {
					intensity += li * math.Pow(resemblance*resemblance, mat.Specular)
				}
			}
		}
	}

	color = color.Scale(mat.Albedo / math.Pi).Scale(intensity).MinScalar(maxChannel)

	if depth > 0 && mat.Reflectivity > 0 {
		bounce := Ray{
			Origin:    point.Add(normal.Scale(reflectionBias)),
			Direction: r.Direction.Reflect(normal),
		}
		reflected := ReflectionMissColor
		if bh, ok := w.trace(bounce); ok {
			reflected = w.shade(bounce, bh, depth-1).Scale(mat.Reflectivity)
		}
		color = color.Scale(1 - mat.Reflectivity).Add(reflected.Scale(mat.Reflectivity))
	}
	return color
}

// toByte saturates a channel into 0..255, truncating the fraction.
func toByte(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= maxChannel:
		return 255
	}
	return uint8(v)
}
