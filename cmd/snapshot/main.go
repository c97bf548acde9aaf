package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"sphere-viewer/internal/batch"
	"sphere-viewer/internal/config"
	"sphere-viewer/internal/logging"
	"sphere-viewer/internal/present"
	"sphere-viewer/internal/raytrace"
	"sphere-viewer/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	width := flag.Int("width", 0, "Frame width (default: 320)")
	height := flag.Int("height", 0, "Frame height (default: 240)")
	brightness := flag.Float64("brightness", config.NoBrightness, "Brightness 0-4 (default: 1)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 1)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	backdrop := flag.String("backdrop", "", "Backdrop image shown behind the scene")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Image format: webp or png (default: webp)")
	frames := flag.Int("frames", 0, "Number of frames orbiting the sphere (default: 1)")
	radius := flag.Float64("radius", 1.5, "Orbit radius in scene units")
	animate := flag.Bool("animate", false, "Also write the frames as an animated orbit.webp")
	delay := flag.Duration("delay", 80*time.Millisecond, "Frame delay of the animation")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Width:       *width,
		Height:      *height,
		Brightness:  *brightness,
		Supersample: *supersample,
		Workers:     *workers,
		Backdrop:    *backdrop,
		OutputDir:   *outputDir,
		Format:      *format,
		Frames:      *frames,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Frames are spread across the batch pool, so each frame traces on one
	// goroutine unless there is only one frame.
	tracer := &raytrace.Tracer{Supersample: cfg.Supersample, Workers: 1}
	if cfg.Frames == 1 {
		tracer.Workers = cfg.Workers
	}
	if cfg.Backdrop != "" {
		img, err := texture.Load(cfg.Backdrop)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading backdrop: %v\n", err)
			os.Exit(1)
		}
		tracer.Backdrop = img
	}

	jobs := []batch.Job{{Index: 0}}
	if cfg.Frames > 1 {
		jobs = batch.Orbit(cfg.Frames, *radius)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sphere snapshot → %s\n", cfg.Format)
	fmt.Printf("Frames: %d, Size: %dx%d, Workers: %d\n", len(jobs), cfg.Width, cfg.Height, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	bar := progressbar.Default(int64(len(jobs)), "rendering")
	start := time.Now()

	batchCfg := batch.Config{
		Engine:     tracer,
		OutputDir:  cfg.OutputDir,
		Format:     cfg.Format,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Brightness: cfg.StartBrightness(),
		Workers:    cfg.Workers,
		KeepImages: *animate,
		Progress:   func() { bar.Add(1) },
	}
	results, err := batch.Run(batchCfg, jobs)
	bar.Finish()
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", success, len(jobs))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Index, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, batchCfg, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if *animate && failed == 0 {
		images := make([]present.Image, len(results))
		for i, r := range results {
			images[i] = r.Pixels()
		}
		aniPath := filepath.Join(cfg.OutputDir, "orbit.webp")
		if err := present.WriteAnimation(aniPath, images, cfg.Width, cfg.Height, *delay); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: animation write failed: %v\n", err)
		} else {
			fmt.Printf("Animation: %s\n", aniPath)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
