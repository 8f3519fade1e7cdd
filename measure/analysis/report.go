package analysis

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// Report is the analysis of a stereo render.
type Report struct {
	SampleRate  float64
	Samples     int
	Left        Levels
	Right       Levels
	Correlation float64
	THD         THDResult // of the mid signal; zero when the render is silent
}

// AnalyzeStereo measures a stereo render. THD is evaluated on (L+R)/2 over
// at most the first 65536 samples.
func AnalyzeStereo(left, right []float64, sampleRate float64) (Report, error) {
	if len(left) != len(right) {
		return Report{}, fmt.Errorf("analysis: channel length mismatch: %d vs %d", len(left), len(right))
	}

	rep := Report{
		SampleRate:  sampleRate,
		Samples:     len(left),
		Left:        MeasureLevels(left),
		Right:       MeasureLevels(right),
		Correlation: Correlation(left, right),
	}

	mid := make([]float64, min(len(left), maxFFTSize))
	for i := range mid {
		mid[i] = 0.5 * (left[i] + right[i])
	}

	thd, err := THD(mid, THDConfig{SampleRate: sampleRate})
	if err != nil && !errors.Is(err, ErrNoSignal) {
		return Report{}, err
	}

	rep.THD = thd

	return rep, nil
}

// WriteText prints the report as aligned text lines.
func (r Report) WriteText(w io.Writer) error {
	lines := []struct {
		name string
		val  string
	}{
		{"samples", fmt.Sprintf("%d (%.2f s)", r.Samples, float64(r.Samples)/math.Max(r.SampleRate, 1))},
		{"peak L/R", fmt.Sprintf("%.2f / %.2f dBFS", r.Left.PeakDB, r.Right.PeakDB)},
		{"rms L/R", fmt.Sprintf("%.2f / %.2f dBFS", r.Left.RMSDB, r.Right.RMSDB)},
		{"crest L/R", fmt.Sprintf("%.2f / %.2f dB", r.Left.CrestDB, r.Right.CrestDB)},
		{"correlation", fmt.Sprintf("%.3f", r.Correlation)},
		{"fundamental", fmt.Sprintf("%.1f Hz", r.THD.FundamentalFreq)},
		{"thd", fmt.Sprintf("%.2f %% (%.1f dB)", 100*r.THD.THD, r.THD.THDdB)},
		{"thd+n", fmt.Sprintf("%.2f %% (%.1f dB)", 100*r.THD.THDN, r.THD.THDNdB)},
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-12s %s\n", l.name, l.val); err != nil {
			return err
		}
	}

	return nil
}
