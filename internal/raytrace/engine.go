package raytrace

import (
	"errors"
	"fmt"

	"sphere-viewer/internal/mathutil"
)

// MaxDimension bounds each side of a frame.
const MaxDimension = 1 << 14

// ErrInvalidDimensions is returned for a non-positive or oversized frame.
var ErrInvalidDimensions = errors.New("invalid frame dimensions")

// Request is an immutable snapshot of everything one frame depends on.
type Request struct {
	Width      int
	Height     int
	Brightness float64
	Position   mathutil.Vec3
}

// Validate checks the frame dimensions.
func (r Request) Validate() error {
	if r.Width <= 0 || r.Height <= 0 || r.Width > MaxDimension || r.Height > MaxDimension {
		return fmt.Errorf("raytrace: %dx%d: %w", r.Width, r.Height, ErrInvalidDimensions)
	}
	return nil
}

// Engine produces a frame for a request.
//
// Implementations must be deterministic: equal requests yield byte-identical
// frames. Every call returns a freshly allocated buffer of exactly
// Width*Height*3 bytes.
type Engine interface {
	Render(req Request) (FrameBuffer, error)
}
