package analysis

import (
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
)

// Levels summarises the amplitude of one channel.
type Levels struct {
	Peak    float64
	PeakDB  float64
	RMS     float64
	RMSDB   float64
	CrestDB float64 // peak over RMS, 0 for silence
}

// MeasureLevels computes peak, RMS and crest factor of x.
func MeasureLevels(x []float64) Levels {
	if len(x) == 0 {
		return Levels{PeakDB: math.Inf(-1), RMSDB: math.Inf(-1)}
	}

	var peak, sum float64
	for _, v := range x {
		peak = math.Max(peak, math.Abs(v))
		sum += v * v
	}

	rms := math.Sqrt(sum / float64(len(x)))

	l := Levels{
		Peak:   peak,
		PeakDB: core.LinearToDB(peak),
		RMS:    rms,
		RMSDB:  core.LinearToDB(rms),
	}

	if rms > 0 {
		l.CrestDB = l.PeakDB - l.RMSDB
	}

	return l
}

// Correlation returns the normalised zero-lag cross-correlation of l and r
// in [-1, 1]: 1 for identical channels, near 0 for decorrelated ones. It is
// 0 when either channel is silent. The shorter length is used.
func Correlation(l, r []float64) float64 {
	n := min(len(l), len(r))

	var lr, ll, rr float64
	for i := range n {
		lr += l[i] * r[i]
		ll += l[i] * l[i]
		rr += r[i] * r[i]
	}

	if ll == 0 || rr == 0 {
		return 0
	}

	return core.Clamp(lr/math.Sqrt(ll*rr), -1, 1)
}
