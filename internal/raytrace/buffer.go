package raytrace

// BytesPerPixel is the packed RGB stride of a FrameBuffer.
const BytesPerPixel = 3

// FrameBuffer is one rendered frame: packed R,G,B bytes, row-major, no row
// padding. Pixel (row, col) starts at (row*width+col)*3. The buffer belongs to
// the Render call that produced it; readers must not retain or mutate it.
type FrameBuffer []byte

// NewFrameBuffer allocates a zeroed (black) buffer for w×h pixels.
func NewFrameBuffer(w, h int) FrameBuffer {
	return make(FrameBuffer, w*h*BytesPerPixel)
}

// FrameSize returns the byte length a w×h frame must have.
func FrameSize(w, h int) int {
	return w * h * BytesPerPixel
}

// Pixel returns the RGB triple at column x, row y of a frame that is w
// pixels wide.
func (fb FrameBuffer) Pixel(w, x, y int) (r, g, b uint8) {
	i := (y*w + x) * BytesPerPixel
	return fb[i], fb[i+1], fb[i+2]
}
