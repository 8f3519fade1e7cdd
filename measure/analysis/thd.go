package analysis

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultLowerHz      = 20.0
	defaultUpperHz      = 20000.0
	defaultMaxHarmonics = 10
	maxFFTSize          = 1 << 16

	// Half-width of the Hann main lobe in bins.
	hannCaptureBins = 2
)

// ErrNoSignal is returned when the input is empty or silent.
var ErrNoSignal = errors.New("analysis: no signal")

// THDConfig holds THD calculation parameters.
type THDConfig struct {
	SampleRate      float64
	FFTSize         int     // 0 selects the next power of two ≥ len(signal), capped at 65536
	FundamentalFreq float64 // 0 detects the strongest bin in range
	LowerFreq       float64
	UpperFreq       float64
	MaxHarmonics    int
}

// THDResult holds THD measurement results.
type THDResult struct {
	FundamentalFreq  float64
	FundamentalLevel float64
	THD              float64
	THDN             float64
	THDdB            float64
	THDNdB           float64
	OddHD            float64
	EvenHD           float64
	Harmonics        []float64 // level of harmonic k+2 relative to the fundamental
}

// THD windows signal, transforms it and evaluates harmonic distortion.
func THD(signal []float64, cfg THDConfig) (THDResult, error) {
	if len(signal) == 0 {
		return THDResult{}, ErrNoSignal
	}

	if !(cfg.SampleRate > 0) {
		return THDResult{}, fmt.Errorf("analysis: invalid sample rate %g", cfg.SampleRate)
	}

	cfg = normalizeConfig(cfg, len(signal))

	mag, err := magnitudeSpectrum(signal, cfg.FFTSize)
	if err != nil {
		return THDResult{}, err
	}

	return thdFromMagnitude(mag, cfg)
}

// magnitudeSpectrum returns |X[k]| for bins 0..fftSize/2 of the
// Hann-windowed signal, truncated or zero-padded to fftSize.
func magnitudeSpectrum(signal []float64, fftSize int) ([]float64, error) {
	n := min(len(signal), fftSize)

	frame := make([]float64, n)
	copy(frame, signal)
	vecmath.MulBlockInPlace(frame, hann(n))

	in := make([]complex128, fftSize)
	for i, v := range frame {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("analysis: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("analysis: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}

func thdFromMagnitude(mag []float64, cfg THDConfig) (THDResult, error) {
	maxBin := len(mag) - 1
	binHz := cfg.SampleRate / float64(cfg.FFTSize)

	lowerBin := clampInt(int(math.Round(cfg.LowerFreq/binHz)), 1, maxBin)
	upperBin := clampInt(int(math.Round(cfg.UpperFreq/binHz)), lowerBin, maxBin)

	fundamentalBin := findFundamentalBin(mag, lowerBin, upperBin, binHz, cfg.FundamentalFreq)

	capture := min(hannCaptureBins, fundamentalBin/2)

	fundamentalLevel := binLevel(mag, fundamentalBin, capture)
	if fundamentalLevel <= 0 {
		return THDResult{}, ErrNoSignal
	}

	var thdAbs, oddAbs, evenAbs float64

	harmonics := make([]float64, 0, cfg.MaxHarmonics)

	for k := 2; k-1 <= cfg.MaxHarmonics; k++ {
		bin := k * fundamentalBin
		if bin > upperBin {
			break
		}

		v := binLevel(mag, bin, capture)
		thdAbs += v

		if k%2 == 0 {
			evenAbs += v
		} else {
			oddAbs += v
		}

		harmonics = append(harmonics, v/fundamentalLevel)
	}

	totalAbs := 0.0
	for i := lowerBin; i <= upperBin; i++ {
		totalAbs += mag[i]
	}

	thdnAbs := math.Max(totalAbs-fundamentalLevel, 0)

	thd := thdAbs / fundamentalLevel
	thdn := thdnAbs / fundamentalLevel

	return THDResult{
		FundamentalFreq:  float64(fundamentalBin) * binHz,
		FundamentalLevel: fundamentalLevel,
		THD:              thd,
		THDN:             thdn,
		THDdB:            ratioToDB(thd),
		THDNdB:           ratioToDB(thdn),
		OddHD:            oddAbs / fundamentalLevel,
		EvenHD:           evenAbs / fundamentalLevel,
		Harmonics:        harmonics,
	}, nil
}

func findFundamentalBin(mag []float64, lowerBin, upperBin int, binHz, hint float64) int {
	if hint > 0 {
		return clampInt(int(math.Round(hint/binHz)), lowerBin, upperBin)
	}

	best := lowerBin
	for i := lowerBin + 1; i <= upperBin; i++ {
		if mag[i] > mag[best] {
			best = i
		}
	}

	return best
}

func normalizeConfig(cfg THDConfig, n int) THDConfig {
	if cfg.FFTSize <= 1 {
		cfg.FFTSize = min(nextPowerOf2(n), maxFFTSize)
	}

	cfg.FFTSize = max(cfg.FFTSize, 4)

	if cfg.LowerFreq <= 0 {
		cfg.LowerFreq = defaultLowerHz
	}

	if cfg.UpperFreq <= 0 {
		cfg.UpperFreq = math.Min(defaultUpperHz, cfg.SampleRate/2)
	}

	cfg.UpperFreq = math.Max(cfg.UpperFreq, cfg.LowerFreq)

	if cfg.MaxHarmonics <= 0 {
		cfg.MaxHarmonics = defaultMaxHarmonics
	}

	return cfg
}

// binLevel sums the magnitude over bin ± capture.
func binLevel(mag []float64, bin, capture int) float64 {
	if bin < 0 || bin >= len(mag) {
		return 0
	}

	lo := max(bin-capture, 0)
	hi := min(bin+capture, len(mag)-1)

	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += mag[i]
	}

	return sum
}

// hann returns a periodic Hann window of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}

	return w
}

func ratioToDB(r float64) float64 {
	if r <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(r)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
