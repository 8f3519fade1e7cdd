package dynamics

import (
	"math"
	"testing"
)

func TestNewLimiterRejectsBadRate(t *testing.T) {
	t.Parallel()

	if _, err := NewLimiter(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewLimiter(math.NaN()); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}
}

func TestLimiterCeilingIsHard(t *testing.T) {
	t.Parallel()

	l, err := NewLimiter(48000)
	if err != nil {
		t.Fatal(err)
	}

	l.SetThresholdDB(-6)
	ceiling := l.Ceiling()

	for i := range 48000 {
		x := 4 * math.Sin(2*math.Pi*220*float64(i)/48000)
		if y := l.Process(x); math.Abs(y) > ceiling+1e-12 {
			t.Fatalf("sample %d: |%v| exceeds ceiling %v", i, y, ceiling)
		}
	}
}

func TestLimiterTransparentBelowCeiling(t *testing.T) {
	t.Parallel()

	l, _ := NewLimiter(48000)
	l.SetCeiling(0.8)

	for i := range 1000 {
		x := 0.5 * math.Sin(float64(i)*0.01)
		if got := l.Process(x); got != x {
			t.Fatalf("sample %d: got %v want %v", i, got, x)
		}
	}

	if l.GainReduction() != 1 {
		t.Fatalf("GainReduction = %v, want 1", l.GainReduction())
	}
}

func TestLimiterReleases(t *testing.T) {
	t.Parallel()

	l, _ := NewLimiter(48000)
	l.SetCeiling(0.5)
	l.SetRelease(20)

	l.Process(1)
	if gr := l.GainReduction(); math.Abs(gr-0.5) > 1e-12 {
		t.Fatalf("instant attack: gain = %v, want 0.5", gr)
	}

	// 200 ms of silence is ten release time constants.
	for range 9600 {
		l.Process(0)
	}

	if gr := l.GainReduction(); gr != 1 {
		t.Fatalf("limiter did not recover: gain = %v", gr)
	}
}

func TestLimiterSettersClamp(t *testing.T) {
	t.Parallel()

	l, _ := NewLimiter(48000)

	l.SetCeiling(3)
	if l.Ceiling() != maxLimiterCeiling {
		t.Fatalf("Ceiling = %v, want %v", l.Ceiling(), maxLimiterCeiling)
	}

	l.SetCeiling(math.NaN())
	if l.Ceiling() != minLimiterCeiling {
		t.Fatalf("Ceiling = %v, want %v", l.Ceiling(), minLimiterCeiling)
	}

	l.SetRelease(0)
	if l.Release() != minLimiterReleaseMs {
		t.Fatalf("Release = %v, want %v", l.Release(), minLimiterReleaseMs)
	}
}
