// Package raytrace is the CPU rendering engine: a recursive Whitted-style ray
// tracer that turns a Request into a packed RGB FrameBuffer.
package raytrace

import (
	"image"
	"math"
	"runtime"
	"sync"

	"sphere-viewer/internal/mathutil"
)

// DefaultDepth is the number of mirror bounces followed per primary ray.
const DefaultDepth = 3

// Tracer renders DefaultWorld scenes. The zero value is usable; rows are
// split across Workers goroutines, which never changes the output.
type Tracer struct {
	Workers     int           // <=0 means runtime.NumCPU()
	Supersample int           // <=1 disables supersampling
	Depth       int           // <=0 means DefaultDepth
	Backdrop    *image.NRGBA  // optional, shown where primary rays miss
	Background  mathutil.Vec3 // used when Backdrop is nil
}

var _ Engine = (*Tracer)(nil)

// Render traces one frame.
func (t *Tracer) Render(req Request) (FrameBuffer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	world := DefaultWorld(req.Brightness, req.Position)

	k := t.Supersample
	if k <= 1 || req.Width*k > MaxDimension || req.Height*k > MaxDimension {
		fb := NewFrameBuffer(req.Width, req.Height)
		t.renderRows(world, req.Width, req.Height, func(x, y int, c mathutil.Vec3) {
			i := (y*req.Width + x) * BytesPerPixel
			fb[i], fb[i+1], fb[i+2] = toByte(c[0]), toByte(c[1]), toByte(c[2])
		})
		return fb, nil
	}

	sw, sh := req.Width*k, req.Height*k
	big := image.NewRGBA(image.Rect(0, 0, sw, sh))
	t.renderRows(world, sw, sh, func(x, y int, c mathutil.Vec3) {
		i := big.PixOffset(x, y)
		big.Pix[i], big.Pix[i+1], big.Pix[i+2], big.Pix[i+3] = toByte(c[0]), toByte(c[1]), toByte(c[2]), 255
	})
	return downsample(big, req.Width, req.Height), nil
}

// renderRows traces every pixel of a w×h image with a pool of row workers.
// Each row is written by exactly one worker.
func (t *Tracer) renderRows(world *World, w, h int, put func(x, y int, c mathutil.Vec3)) {
	workers := t.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, h)

	cam := newCamera(world.FOV, w, h)
	depth := t.Depth
	if depth <= 0 {
		depth = DefaultDepth
	}

	rows := make(chan int, workers*2)
	var wg sync.WaitGroup
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				for x := 0; x < w; x++ {
					put(x, y, t.pixel(world, cam, x, y, depth))
				}
			}
		}()
	}
	for y := 0; y < h; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()
}

func (t *Tracer) pixel(world *World, cam camera, x, y, depth int) mathutil.Vec3 {
	r := cam.primary(x, y)
	if h, ok := world.trace(r); ok {
		return world.shade(r, h, depth)
	}
	if t.Backdrop != nil {
		return sampleBackdrop(t.Backdrop, (float64(x)+0.5)/float64(cam.w), (float64(y)+0.5)/float64(cam.h))
	}
	return t.Background
}

// camera is a pinhole at the origin looking down -Z.
type camera struct {
	w, h   int
	fovAdj float64
	aspect float64
}

func newCamera(fovDeg float64, w, h int) camera {
	return camera{
		w:      w,
		h:      h,
		fovAdj: math.Tan(mathutil.Deg2Rad(fovDeg) / 2),
		aspect: float64(w) / float64(h),
	}
}

// primary returns the ray through the centre of pixel (x, y).
func (c camera) primary(x, y int) Ray {
	vx := ((float64(x)+0.5)/float64(c.w)*2 - 1) * c.aspect * c.fovAdj
	vy := (1 - (float64(y)+0.5)/float64(c.h)*2) * c.fovAdj
	return Ray{Direction: mathutil.V3(vx, vy, -1).Normalize()}
}
