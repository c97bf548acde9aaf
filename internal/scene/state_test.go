package scene

import (
	"math"
	"testing"

	"sphere-viewer/internal/mathutil"
)

func TestAdjustBrightnessClamps(t *testing.T) {
	s := New(3.9)
	for i := 0; i < 5; i++ {
		s.AdjustBrightness(0.1)
	}
	if s.Brightness != 4.0 {
		t.Errorf("brightness = %v, want 4.0", s.Brightness)
	}

	s = New(0.2)
	for i := 0; i < 10; i++ {
		s.AdjustBrightness(-0.1)
	}
	if s.Brightness != 0 {
		t.Errorf("brightness = %v, want 0", s.Brightness)
	}
}

func TestAdjustBrightnessReturnsStored(t *testing.T) {
	s := New(1)
	if got := s.AdjustBrightness(10); got != MaxBrightness || s.Brightness != got {
		t.Errorf("AdjustBrightness(10) = %v, stored %v", got, s.Brightness)
	}
}

func TestBrightnessNeverLeavesRange(t *testing.T) {
	s := New(DefaultBrightness)
	deltas := []float64{0.1, 0.7, 2.5, 3, -0.4, -9, 0.3, 100, -0.05, -4.2}
	for _, d := range deltas {
		got := s.AdjustBrightness(d)
		if got < MinBrightness || got > MaxBrightness {
			t.Fatalf("after %+v brightness = %v", d, got)
		}
	}
}

func TestSetBrightness(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.04, 1.0},
		{1.06, 1.1},
		{-2, 0},
		{7, 4},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		s := New(1)
		if got := s.SetBrightness(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SetBrightness(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMove(t *testing.T) {
	s := New(1)
	s.Move(mathutil.V3(1, -2, 0.5))
	s.Move(mathutil.V3(1e6, 0, 0))
	if want := mathutil.V3(1e6+1, -2, 0.5); s.Position != want {
		t.Errorf("position = %v, want %v", s.Position, want)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		key  rune
		want mathutil.Vec3
	}{
		{'w', mathutil.V3(0, 0, -0.5)},
		{'s', mathutil.V3(0, 0, 0.5)},
		{'a', mathutil.V3(-0.5, 0, 0)},
		{'d', mathutil.V3(0.5, 0, 0)},
		{'Q', mathutil.V3(0, 0.5, 0)},
		{'e', mathutil.V3(0, -0.5, 0)},
	}
	for _, tt := range tests {
		s := New(1)
		if !s.Apply(ActionForKey(tt.key)) {
			t.Errorf("Apply(%q) reported no change", tt.key)
		}
		if s.Position != tt.want {
			t.Errorf("Apply(%q) position = %v, want %v", tt.key, s.Position, tt.want)
		}
	}
}

func TestApplyBrightnessSteps(t *testing.T) {
	s := New(3.9)
	for i := 0; i < 5; i++ {
		s.Apply(ActionBrightnessUp)
	}
	if s.Brightness != 4.0 {
		t.Errorf("brightness = %v, want 4.0", s.Brightness)
	}
	s = New(1)
	for i := 0; i < 3; i++ {
		s.Apply(ActionForKey('z'))
	}
	if math.Abs(s.Brightness-0.7) > 1e-12 {
		t.Errorf("brightness = %v, want 0.7", s.Brightness)
	}
}

func TestApplyNone(t *testing.T) {
	s := New(1)
	if s.Apply(ActionForKey('p')) {
		t.Error("unmapped key should not apply")
	}
	if s.Position != (mathutil.Vec3{}) || s.Brightness != 1 {
		t.Errorf("state changed: %+v", s)
	}
}
