package batch

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"sphere-viewer/internal/mathutil"
	"sphere-viewer/internal/present"
	"sphere-viewer/internal/raytrace"
)

// shortEngine returns frames one byte short of the requested size.
type shortEngine struct{}

func (shortEngine) Render(req raytrace.Request) (raytrace.FrameBuffer, error) {
	fb := raytrace.NewFrameBuffer(req.Width, req.Height)
	return fb[:len(fb)-1], nil
}

// flakyEngine fails every frame whose sphere sits well left of home.
type flakyEngine struct {
	inner raytrace.Engine
}

func (e *flakyEngine) Render(req raytrace.Request) (raytrace.FrameBuffer, error) {
	if req.Position[0] < -0.5 {
		return nil, errors.New("no frame")
	}
	return e.inner.Render(req)
}

func TestOrbit(t *testing.T) {
	jobs := Orbit(4, 2)
	if len(jobs) != 4 {
		t.Fatalf("len = %d", len(jobs))
	}
	want := []mathutil.Vec3{{2, 0, 0}, {0, 0, -2}, {-2, 0, 0}, {0, 0, 2}}
	for i, j := range jobs {
		if j.Index != i {
			t.Errorf("job %d index = %d", i, j.Index)
		}
		for k := 0; k < 3; k++ {
			if math.Abs(j.Position[k]-want[i][k]) > 1e-9 {
				t.Errorf("job %d position = %v, want %v", i, j.Position, want[i])
				break
			}
		}
	}
}

func TestRunWritesFramesAndManifest(t *testing.T) {
	dir := t.TempDir()
	var done atomic.Int32
	cfg := Config{
		Engine:     &raytrace.Tracer{Workers: 1},
		OutputDir:  dir,
		Format:     "png",
		Width:      8,
		Height:     6,
		Brightness: 1,
		Workers:    3,
		KeepImages: true,
		Progress:   func() { done.Add(1) },
	}
	results, err := Run(cfg, Orbit(5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if done.Load() != 5 {
		t.Errorf("progress calls = %d, want 5", done.Load())
	}
	for i, r := range results {
		if !r.Success {
			t.Fatalf("job %d: %s", i, r.Error)
		}
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
		if _, err := os.Stat(filepath.Join(dir, r.Image)); err != nil {
			t.Errorf("job %d: %v", i, err)
		}
		if len(r.Pixels()) != 8*6*4 {
			t.Errorf("job %d kept %d bytes", i, len(r.Pixels()))
		}
	}

	mpath := filepath.Join(dir, "manifest.json")
	if err := WriteManifest(mpath, cfg, results); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(mpath)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 || entries[2].Image != "2.png" || entries[0].Width != 8 {
		t.Errorf("manifest = %+v", entries)
	}
}

func TestRunReportsFailures(t *testing.T) {
	cfg := Config{
		Engine:    &flakyEngine{inner: &raytrace.Tracer{Workers: 1}},
		OutputDir: t.TempDir(),
		Format:    "png",
		Width:     4,
		Height:    4,
		Workers:   2,
	}
	results, err := Run(cfg, Orbit(4, 1))
	if err != nil {
		t.Fatal(err)
	}
	var ok, failed int
	for _, r := range results {
		if r.Success {
			ok++
		} else {
			failed++
			if r.Error == "" {
				t.Errorf("job %d failed without an error", r.Index)
			}
		}
	}
	// Orbit(4) puts job 2 at -X.
	if ok != 3 || failed != 1 || results[2].Success {
		t.Errorf("ok = %d failed = %d", ok, failed)
	}
	if results[0].Pixels() != nil {
		t.Error("pixels kept without KeepImages")
	}
}

func TestRunAbortsOnDimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Engine:    shortEngine{},
		OutputDir: dir,
		Format:    "png",
		Width:     2,
		Height:    2,
		Workers:   2,
	}
	results, err := Run(cfg, Orbit(6, 1))
	if !errors.Is(err, present.ErrDimensionMismatch) {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}
	if results != nil {
		t.Errorf("got %d results from an aborted run", len(results))
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("aborted run wrote %d files", len(entries))
	}
}
