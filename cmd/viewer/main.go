package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"sphere-viewer/internal/config"
	"sphere-viewer/internal/logging"
	"sphere-viewer/internal/raytrace"
	"sphere-viewer/internal/texture"
	"sphere-viewer/internal/window"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	width := flag.Int("width", 0, "Frame width in rendered pixels (default: 320)")
	height := flag.Int("height", 0, "Frame height in rendered pixels (default: 240)")
	brightness := flag.Float64("brightness", config.NoBrightness, "Initial brightness 0-4 (default: 1)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 1)")
	workers := flag.Int("workers", 0, "Number of render goroutines (default: NumCPU)")
	backdrop := flag.String("backdrop", "", "Backdrop image shown behind the scene (PNG, JPEG or TGA)")
	scale := flag.Int("scale", 0, "Screen pixels per rendered pixel (default: 2)")
	noHUD := flag.Bool("nohud", false, "Hide the status overlay")
	verbose := flag.Bool("v", false, "Log every render cycle")

	flag.Parse()

	level := slog.LevelInfo
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
		Scale:       *scale,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tracer := &raytrace.Tracer{
		Workers:     cfg.Workers,
		Supersample: cfg.Supersample,
	}
	if cfg.Backdrop != "" {
		img, err := texture.Load(cfg.Backdrop)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading backdrop: %v\n", err)
			os.Exit(1)
		}
		tracer.Backdrop = img
	}

	fmt.Printf("Sphere viewer %dx%d (x%d), workers %d\n", cfg.Width, cfg.Height, cfg.Scale, cfg.Workers)
	fmt.Println("W/S/A/D/Q/E move the red sphere, X/Z brightness, 0-4 set brightness, Esc quits")

	err := window.Run(window.Options{
		Title:      "Sphere viewer",
		Width:      cfg.Width,
		Height:     cfg.Height,
		Scale:      cfg.Scale,
		Brightness: cfg.StartBrightness(),
		Engine:     tracer,
		HUD:        !*noHUD,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
