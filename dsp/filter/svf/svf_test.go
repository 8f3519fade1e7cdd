package svf

import (
	"math"
	"testing"
)

// steadyStateGain drives the filter with a sine and measures the output peak
// after the transient has settled.
func steadyStateGain(f *Filter, hz, sampleRate float64, out func(*Filter) float64) float64 {
	f.Reset()

	n := int(sampleRate / 2)
	peak := 0.0
	for i := range n {
		f.Process(math.Sin(2 * math.Pi * hz * float64(i) / sampleRate))
		if i > n/2 {
			peak = math.Max(peak, math.Abs(out(f)))
		}
	}

	return peak
}

func TestNewRejectsBadRate(t *testing.T) {
	t.Parallel()

	for _, sr := range []float64{0, -48000, math.NaN(), math.Inf(1), 1000} {
		if _, err := New(sr); err == nil {
			t.Errorf("New(%v): expected error", sr)
		}
	}
}

func TestSetFreqClamps(t *testing.T) {
	t.Parallel()

	f, _ := New(48000)

	f.SetFreq(1)
	if f.Freq() != minFreqHz {
		t.Fatalf("Freq = %v, want %v", f.Freq(), minFreqHz)
	}

	f.SetFreq(1e6)
	if want := 0.49 * 48000; f.Freq() != want {
		t.Fatalf("Freq = %v, want %v", f.Freq(), want)
	}

	f.SetRes(5)
	if f.Res() != 1 {
		t.Fatalf("Res = %v, want 1", f.Res())
	}
}

func TestLowPassResponse(t *testing.T) {
	t.Parallel()

	const sr = 48000.0

	f, _ := New(sr)
	f.SetFreq(1000)
	f.SetRes(0.3)

	low := func(f *Filter) float64 { return f.Low() }

	if g := steadyStateGain(f, 100, sr, low); math.Abs(g-1) > 0.05 {
		t.Errorf("passband gain = %v, want ~1", g)
	}

	if g := steadyStateGain(f, 10000, sr, low); g > 0.05 {
		t.Errorf("stopband gain = %v, want < 0.05", g)
	}
}

func TestHighPassResponse(t *testing.T) {
	t.Parallel()

	const sr = 48000.0

	f, _ := New(sr)
	f.SetFreq(200)
	f.SetRes(0.2)

	high := func(f *Filter) float64 { return f.High() }

	if g := steadyStateGain(f, 20, sr, high); g > 0.05 {
		t.Errorf("stopband gain = %v, want < 0.05", g)
	}

	if g := steadyStateGain(f, 5000, sr, high); math.Abs(g-1) > 0.05 {
		t.Errorf("passband gain = %v, want ~1", g)
	}
}

func TestOutputsSumToInput(t *testing.T) {
	t.Parallel()

	f, _ := New(48000)
	f.SetFreq(800)
	f.SetRes(0.5)

	k := f.k
	for i := range 256 {
		x := math.Sin(float64(i) * 0.3)
		f.Process(x)
		if got := f.Low() + k*f.Band() + f.High(); math.Abs(got-x) > 1e-12 {
			t.Fatalf("sample %d: low+k*band+high = %v, want %v", i, got, x)
		}
	}
}

func TestStableUnderModulation(t *testing.T) {
	t.Parallel()

	f, _ := New(48000)
	f.SetRes(1)

	for i := range 48000 {
		if i%64 == 0 {
			f.SetFreq(100 + 8000*(0.5+0.5*math.Sin(float64(i)*0.001)))
		}

		y := f.ProcessLow(math.Sin(float64(i) * 0.07))
		if math.IsNaN(y) || math.Abs(y) > 100 {
			t.Fatalf("sample %d: unstable output %v", i, y)
		}
	}
}
