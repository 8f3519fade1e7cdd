package dynamics

import (
	"math"
	"testing"
)

func TestNewCompressor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate float64
		wantErr    bool
	}{
		{"valid 44100", 44100, false},
		{"valid 48000", 48000, false},
		{"valid 96000", 96000, false},
		{"invalid zero", 0, true},
		{"invalid negative", -1, true},
		{"invalid NaN", math.NaN(), true},
		{"invalid +Inf", math.Inf(1), true},
		{"invalid too high", 384000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewCompressor(tt.sampleRate)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCompressor() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr && c == nil {
				t.Fatal("NewCompressor() returned nil without error")
			}
		})
	}
}

func TestCompressorDefaults(t *testing.T) {
	t.Parallel()

	c, err := NewCompressor(48000)
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"Threshold", c.Threshold(), defaultCompressorThresholdDB},
		{"Ratio", c.Ratio(), defaultCompressorRatio},
		{"Knee", c.Knee(), defaultCompressorKneeDB},
		{"Attack", c.Attack(), defaultCompressorAttackMs},
		{"Release", c.Release(), defaultCompressorReleaseMs},
		{"MakeupGain", c.MakeupGain(), 0},
		{"SampleRate", c.SampleRate(), 48000},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %f, want %f", tt.name, tt.got, tt.want)
		}
	}
}

func TestCompressorSettersClamp(t *testing.T) {
	t.Parallel()

	c, _ := NewCompressor(48000)

	c.SetThreshold(12)
	c.SetRatio(0.5)
	c.SetKnee(-3)
	c.SetAttack(math.NaN())
	c.SetRelease(1e9)
	c.SetMakeupGain(-6)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"Threshold", c.Threshold(), maxCompressorThresholdDB},
		{"Ratio", c.Ratio(), minCompressorRatio},
		{"Knee", c.Knee(), 0},
		{"Attack", c.Attack(), minCompressorAttackMs},
		{"Release", c.Release(), maxCompressorReleaseMs},
		{"MakeupGain", c.MakeupGain(), 0},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %f, want %f", tt.name, tt.got, tt.want)
		}
	}
}

func TestCompressorStaticCurve(t *testing.T) {
	t.Parallel()

	c, _ := NewCompressor(48000)
	c.SetThreshold(-20)
	c.SetRatio(4)
	c.SetKnee(0)

	tests := []struct {
		name   string
		input  float64
		wantDB float64
	}{
		{"below threshold", math.Pow(10, -30.0/20), -30},
		{"at threshold", math.Pow(10, -20.0/20), -20},
		{"0 dBFS", 1, -15},
		{"-8 dBFS", math.Pow(10, -8.0/20), -17},
	}

	for _, tt := range tests {
		got := 20 * math.Log10(c.CalculateOutputLevel(tt.input))
		if math.Abs(got-tt.wantDB) > 1e-6 {
			t.Errorf("%s: output = %.6f dB, want %.6f dB", tt.name, got, tt.wantDB)
		}
	}
}

func TestCompressorSoftKneeIsMonotonic(t *testing.T) {
	t.Parallel()

	c, _ := NewCompressor(48000)
	c.SetThreshold(-22)
	c.SetRatio(2.5)

	prev := 0.0
	for db := -60.0; db <= 0; db += 0.25 {
		out := c.CalculateOutputLevel(math.Pow(10, db/20))
		if out < prev {
			t.Fatalf("static curve not monotonic at %.2f dB: %v < %v", db, out, prev)
		}

		prev = out
	}
}

func TestCompressorRatioOneIsIdentity(t *testing.T) {
	t.Parallel()

	c, _ := NewCompressor(48000)
	c.SetRatio(1)

	for i := range 1000 {
		x := math.Sin(float64(i) * 0.05)
		if got := c.Process(x); got != x {
			t.Fatalf("sample %d: got %v want %v", i, got, x)
		}
	}
}

func TestCompressorReducesLoudSignal(t *testing.T) {
	t.Parallel()

	c, _ := NewCompressor(48000)
	c.SetThreshold(-30)
	c.SetRatio(8)
	c.SetAttack(1)

	var out float64
	for range 4800 {
		out = c.Process(0.9)
	}

	if out >= 0.9*0.5 {
		t.Fatalf("expected strong gain reduction, got %v", out)
	}

	c.Reset()
	if got := c.Process(0); got != 0 {
		t.Fatalf("after reset silence should stay silent, got %v", got)
	}
}

func TestCompressorMakeupGain(t *testing.T) {
	t.Parallel()

	c, _ := NewCompressor(48000)
	c.SetRatio(1)
	c.SetMakeupGain(6)

	want := 0.1 * math.Pow(10, 6.0/20)
	if got := c.Process(0.1); math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v want %v", got, want)
	}
}
