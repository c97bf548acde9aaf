package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "viewer.json", `{"width": 64, "height": 48, "brightness": 0, "backdrop": "sky.tga"}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{Brightness: NoBrightness})

	if cfg.Width != 64 || cfg.Height != 48 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.StartBrightness() != 0 {
		t.Errorf("brightness = %v, want 0 from file", cfg.StartBrightness())
	}
	if want := filepath.Join(filepath.Dir(path), "sky.tga"); cfg.Backdrop != want {
		t.Errorf("backdrop = %q, want %q", cfg.Backdrop, want)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "viewer.yaml", "width: 100\nsupersample: 3\nformat: PNG\noutput_dir: /tmp/out\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{Brightness: NoBrightness})
	if cfg.Width != 100 || cfg.Height != DefaultHeight || cfg.Supersample != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Format != "png" || cfg.OutputDir != "/tmp/out" {
		t.Errorf("format = %q output = %q", cfg.Format, cfg.OutputDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeFile(t, "bad.json", "{")); err == nil {
		t.Error("expected error for bad JSON")
	}
	if _, err := Load(writeFile(t, "bad.yml", "width: [")); err == nil {
		t.Error("expected error for bad YAML")
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{Brightness: NoBrightness})
	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.StartBrightness() != DefaultBrightness {
		t.Errorf("brightness = %v", cfg.StartBrightness())
	}
	if cfg.Supersample != 1 || cfg.Scale != DefaultScale || cfg.Frames != 1 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("workers = %d", cfg.Workers)
	}
	if cfg.Format != DefaultFormat || cfg.OutputDir != DefaultOutputDir {
		t.Errorf("format = %q output = %q", cfg.Format, cfg.OutputDir)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "viewer.json", `{"width": 64, "brightness": 3, "backdrop": "a.png", "workers": 2}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{Width: 10, Brightness: 0.5, Backdrop: "b.png", Format: ".webp"})
	if cfg.Width != 10 || cfg.StartBrightness() != 0.5 || cfg.Backdrop != "b.png" || cfg.Workers != 2 {
		t.Errorf("cfg = %+v brightness %v", cfg, cfg.StartBrightness())
	}
	if cfg.Format != "webp" {
		t.Errorf("format = %q", cfg.Format)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{Format: "gif"}
	if err := cfg.Validate(); err == nil {
		t.Error("gif accepted")
	}
	cfg = Config{Format: "webp", Supersample: 9}
	if err := cfg.Validate(); err == nil {
		t.Error("supersample 9 accepted")
	}
}

func TestValidateBrightnessRange(t *testing.T) {
	for _, b := range []float64{-0.1, 4.5, 9} {
		cfg := Config{Brightness: &b}
		cfg.Resolve(Flags{Brightness: NoBrightness})
		if err := cfg.Validate(); err == nil {
			t.Errorf("brightness %g accepted", b)
		}
	}
	cfg := Config{}
	cfg.Resolve(Flags{Brightness: 9})
	if err := cfg.Validate(); err == nil {
		t.Error("brightness flag 9 accepted")
	}
	for _, b := range []float64{0, 2.5, 4} {
		cfg := Config{}
		cfg.Resolve(Flags{Brightness: b})
		if err := cfg.Validate(); err != nil {
			t.Errorf("brightness %g rejected: %v", b, err)
		}
	}
}

func TestStartBrightnessClampsAndSnaps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{9, 4},
		{-2, 0},
		{1.26, 1.3},
		{0, 0},
	}
	for _, tt := range tests {
		b := tt.in
		cfg := Config{Brightness: &b}
		if got := cfg.StartBrightness(); got != tt.want {
			t.Errorf("StartBrightness(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
	if got := (&Config{}).StartBrightness(); got != DefaultBrightness {
		t.Errorf("unset StartBrightness = %g, want %g", got, DefaultBrightness)
	}
}
