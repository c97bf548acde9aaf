// Package config loads viewer settings from JSON or YAML and merges CLI
// overrides.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"sphere-viewer/internal/scene"
)

// Config holds all configurable render and output settings.
type Config struct {
	// Frame
	Width      int      `json:"width" yaml:"width"`
	Height     int      `json:"height" yaml:"height"`
	Brightness *float64 `json:"brightness" yaml:"brightness"` // nil = unset

	// Engine
	Supersample int    `json:"supersample" yaml:"supersample"`
	Workers     int    `json:"workers" yaml:"workers"`
	Backdrop    string `json:"backdrop" yaml:"backdrop"`

	// Window viewer: screen pixels per rendered pixel
	Scale int `json:"scale" yaml:"scale"`

	// Snapshot output
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	Format    string `json:"format" yaml:"format"`
	Frames    int    `json:"frames" yaml:"frames"`

	// baseDir is the directory of the loaded file; relative paths resolve
	// against it.
	baseDir string
}

// Defaults applied by Resolve.
const (
	DefaultWidth      = 320
	DefaultHeight     = 240
	DefaultBrightness = scene.DefaultBrightness
	DefaultScale      = 2
	DefaultOutputDir  = "renders"
	DefaultFormat     = "webp"
)

// Load reads a config file. The format follows the extension: .yaml/.yml
// for YAML, anything else is parsed as JSON. Fields not set in the file keep
// their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.baseDir = filepath.Dir(path)
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings. Zero
// values mean "not set"; Brightness uses a negative sentinel since 0 is a
// valid brightness.
type Flags struct {
	Width       int
	Height      int
	Brightness  float64
	Supersample int
	Workers     int
	Backdrop    string
	Scale       int
	OutputDir   string
	Format      string
	Frames      int
}

// NoBrightness marks the Brightness flag as unset.
const NoBrightness = -1

// Resolve applies flag overrides, then fills in defaults for anything still
// unset.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Brightness >= 0 {
		b := flags.Brightness
		c.Brightness = &b
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}

	// Paths from flags are relative to the working directory, paths from the
	// file relative to the file.
	if flags.Backdrop != "" {
		c.Backdrop = flags.Backdrop
	} else if c.Backdrop != "" && !filepath.IsAbs(c.Backdrop) && c.baseDir != "" {
		c.Backdrop = filepath.Join(c.baseDir, c.Backdrop)
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	} else if c.OutputDir != "" && !filepath.IsAbs(c.OutputDir) && c.baseDir != "" {
		c.OutputDir = filepath.Join(c.baseDir, c.OutputDir)
	}

	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Brightness == nil {
		b := DefaultBrightness
		c.Brightness = &b
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Scale <= 0 {
		c.Scale = DefaultScale
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	c.Format = strings.ToLower(strings.TrimPrefix(c.Format, "."))
	if c.Frames <= 0 {
		c.Frames = 1
	}
}

// StartBrightness returns the configured initial brightness clamped and
// snapped the way scene.State stores it, or the default before Resolve has
// run.
func (c *Config) StartBrightness() float64 {
	if c.Brightness == nil {
		return DefaultBrightness
	}
	return scene.New(*c.Brightness).Brightness
}

// Validate rejects settings no command can work with.
func (c *Config) Validate() error {
	if c.Format != "webp" && c.Format != "png" {
		return fmt.Errorf("config: unsupported format %q (want webp or png)", c.Format)
	}
	if b := c.Brightness; b != nil && (math.IsNaN(*b) || *b < scene.MinBrightness || *b > scene.MaxBrightness) {
		return fmt.Errorf("config: brightness %g is outside [%g, %g]", *b, scene.MinBrightness, scene.MaxBrightness)
	}
	if c.Supersample > 8 {
		return fmt.Errorf("config: supersample %d is above the limit of 8", c.Supersample)
	}
	return nil
}
