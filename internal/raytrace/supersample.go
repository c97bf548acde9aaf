package raytrace

import (
	"image"

	"golang.org/x/image/draw"
)

// downsample scales an opaque supersampled image to w×h with Catmull-Rom
// filtering and packs the result as RGB.
func downsample(src *image.RGBA, w, h int) FrameBuffer {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := NewFrameBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := dst.PixOffset(x, y)
			di := (y*w + x) * BytesPerPixel
			copy(out[di:di+3], dst.Pix[si:si+3])
		}
	}
	return out
}
