// Package batch renders frame sequences headlessly through a worker pool.
package batch

import (
	"fmt"
	"math"
	"path/filepath"
	"sync"

	"sphere-viewer/internal/mathutil"
	"sphere-viewer/internal/present"
	"sphere-viewer/internal/raytrace"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Engine     raytrace.Engine
	OutputDir  string
	Format     string // "webp" or "png"
	Width      int
	Height     int
	Brightness float64
	Workers    int

	// KeepImages retains each converted image in its Result, for assembling
	// an animation afterwards.
	KeepImages bool

	// Progress, when set, is called once per finished job from the worker
	// that ran it.
	Progress func()
}

// Job is one frame of a sequence.
type Job struct {
	Index    int
	Position mathutil.Vec3
}

// Result holds the outcome of rendering one job.
type Result struct {
	Index    int
	Position mathutil.Vec3
	Image    string // path relative to OutputDir
	Success  bool
	Error    string

	pixels present.Image
}

// Pixels returns the converted frame when Config.KeepImages was set.
func (r Result) Pixels() present.Image { return r.pixels }

// Orbit returns n jobs that move the sphere around a horizontal circle of
// the given radius centred on its home position, starting at +X.
func Orbit(n int, radius float64) []Job {
	jobs := make([]Job, n)
	start := mathutil.V3(radius, 0, 0)
	for i := range jobs {
		rot := mathutil.RotY(2 * math.Pi * float64(i) / float64(n))
		jobs[i] = Job{Index: i, Position: rot.MulVec3(start)}
	}
	return jobs
}

// Run renders all jobs using a worker pool. Results are in job order.
//
// A frame whose length disagrees with its dimensions means the engine broke
// its contract. Run then stops handing out jobs and returns an error wrapping
// present.ErrDimensionMismatch instead of any results. Other per-frame
// failures are reported in the Result and do not stop the run.
func Run(cfg Config, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	workers := max(cfg.Workers, 1)

	var (
		mu    sync.Mutex
		fatal error
	)
	aborted := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fatal != nil
	}

	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				if aborted() {
					continue
				}
				res, err := processJob(cfg, jobs[idx])
				if err != nil {
					mu.Lock()
					if fatal == nil {
						fatal = err
					}
					mu.Unlock()
					continue
				}
				results[idx] = res
				if cfg.Progress != nil {
					cfg.Progress()
				}
			}
		}()
	}

	for i := range jobs {
		if aborted() {
			break
		}
		jobChan <- i
	}
	close(jobChan)
	wg.Wait()

	if fatal != nil {
		return nil, fatal
	}
	return results, nil
}

func processJob(cfg Config, job Job) (Result, error) {
	res := Result{Index: job.Index, Position: job.Position}

	req := raytrace.Request{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Brightness: cfg.Brightness,
		Position:   job.Position,
	}
	frame, err := cfg.Engine.Render(req)
	if err != nil {
		res.Error = err.Error()
		return res, nil
	}

	img, err := present.Convert(frame, req.Width, req.Height)
	if err != nil {
		return res, fmt.Errorf("batch: frame %d: %w", job.Index, err)
	}

	res.Image = fmt.Sprintf("%d.%s", job.Index, cfg.Format)
	surface := &present.FileSurface{
		Path:   filepath.Join(cfg.OutputDir, res.Image),
		Width:  req.Width,
		Height: req.Height,
	}
	if err := surface.Blit(img, req.Width, req.Height); err != nil {
		res.Error = err.Error()
		return res, nil
	}

	if cfg.KeepImages {
		res.pixels = img
	}
	res.Success = true
	return res, nil
}
