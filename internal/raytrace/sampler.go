package raytrace

import (
	"image"

	"sphere-viewer/internal/mathutil"
)

// sampleBackdrop performs bilinear filtering of tex at normalized (u, v),
// clamping to the edges. The result is in 0..255 channel space.
func sampleBackdrop(tex *image.NRGBA, u, v float64) mathutil.Vec3 {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return mathutil.Vec3{}
	}

	fx := clamp01(u) * float64(w-1)
	fy := clamp01(v) * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := min(x0+1, w-1)
	y1 := min(y0+1, h-1)
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var c mathutil.Vec3
	for k := 0; k < 3; k++ {
		c[k] = float64(pix[i00+k])*w00 + float64(pix[i10+k])*w10 +
			float64(pix[i01+k])*w01 + float64(pix[i11+k])*w11
	}
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
