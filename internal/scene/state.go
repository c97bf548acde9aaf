// Package scene holds the interactive, viewport-independent scene parameters
// and the discrete input actions that mutate them.
package scene

import (
	"math"

	"sphere-viewer/internal/mathutil"
)

// Brightness bounds and input step sizes.
const (
	MinBrightness     = 0.0
	MaxBrightness     = 4.0
	DefaultBrightness = 1.0

	MoveStep       = 0.5
	BrightnessStep = 0.1
)

// State is the mutable scene: the offset of the movable sphere and the light
// brightness multiplier. Dimensions are deliberately absent; they are read
// from the display surface when a frame is actually rendered.
type State struct {
	Position   mathutil.Vec3
	Brightness float64
}

// New returns a State at the origin with the given starting brightness,
// clamped into range.
func New(brightness float64) *State {
	s := &State{}
	s.SetBrightness(brightness)
	return s
}

// Move adds delta to the position. Any finite offset is valid.
func (s *State) Move(delta mathutil.Vec3) {
	s.Position = s.Position.Add(delta)
}

// AdjustBrightness adds delta and clamps to [MinBrightness, MaxBrightness].
// It returns the stored value so the caller can echo it.
func (s *State) AdjustBrightness(delta float64) float64 {
	s.Brightness = clampBrightness(s.Brightness + delta)
	return s.Brightness
}

// SetBrightness replaces the brightness with v snapped to the 0.1 grid and
// clamped. NaN is treated as the minimum.
func (s *State) SetBrightness(v float64) float64 {
	s.Brightness = clampBrightness(SnapBrightness(v))
	return s.Brightness
}

// SnapBrightness rounds v to the nearest BrightnessStep. Dividing by the
// step count rather than multiplying by the step keeps 0.7 exactly 0.7.
func SnapBrightness(v float64) float64 {
	const steps = 1 / BrightnessStep
	return math.Round(v*steps) / steps
}

func clampBrightness(v float64) float64 {
	if math.IsNaN(v) || v < MinBrightness {
		return MinBrightness
	}
	if v > MaxBrightness {
		return MaxBrightness
	}
	return v
}
