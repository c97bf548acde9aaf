// Package present converts packed RGB frames into the RGBA layout display
// surfaces expect and hands them to a Surface.
package present

import (
	"errors"
	"fmt"
	"image"

	"sphere-viewer/internal/raytrace"
)

// BytesPerPixel is the RGBA stride of an Image.
const BytesPerPixel = 4

// ErrDimensionMismatch means a frame's length disagrees with the dimensions
// it was requested for. It is a contract violation between engine and caller.
var ErrDimensionMismatch = errors.New("frame length does not match dimensions")

// Image is a row-major RGBA frame with every alpha byte set to 255.
type Image []byte

// Surface is where images end up.
type Surface interface {
	// Size reports the surface's current size in pixels. It is read at the
	// start of every render cycle.
	Size() (w, h int)
	// Blit replaces the whole surface content with img, anchored at (0,0).
	Blit(img Image, w, h int) error
}

// Convert expands a packed RGB frame into a newly allocated RGBA image.
// The frame is only read.
func Convert(frame raytrace.FrameBuffer, w, h int) (Image, error) {
	if w < 0 || h < 0 || len(frame) != raytrace.FrameSize(w, h) {
		return nil, fmt.Errorf("present: %d bytes for %dx%d: %w", len(frame), w, h, ErrDimensionMismatch)
	}
	n := w * h
	out := make(Image, n*BytesPerPixel)
	for i := 0; i < n; i++ {
		si := i * raytrace.BytesPerPixel
		di := i * BytesPerPixel
		out[di] = frame[si]
		out[di+1] = frame[si+1]
		out[di+2] = frame[si+2]
		out[di+3] = 255
	}
	return out, nil
}

// Presenter converts frames and blits them onto its surface.
type Presenter struct {
	Surface Surface
}

// Present converts frame and blits it. A conversion failure wraps
// ErrDimensionMismatch and leaves the surface untouched.
func (p *Presenter) Present(frame raytrace.FrameBuffer, w, h int) error {
	img, err := Convert(frame, w, h)
	if err != nil {
		return err
	}
	if err := p.Surface.Blit(img, w, h); err != nil {
		return fmt.Errorf("present: blit %dx%d: %w", w, h, err)
	}
	return nil
}

// NRGBA wraps img as an *image.NRGBA without copying. Because alpha is
// always opaque, the same bytes are also valid straight RGBA.
func (img Image) NRGBA(w, h int) *image.NRGBA {
	return &image.NRGBA{
		Pix:    img,
		Stride: w * BytesPerPixel,
		Rect:   image.Rect(0, 0, w, h),
	}
}
