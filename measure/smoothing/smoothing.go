package smoothing

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-smooth/dsp/core"
)

const defaultMaxLag = 64

// ErrLengthMismatch is returned when paired signals differ in length.
var ErrLengthMismatch = errors.New("smoothing: signal lengths differ")

// Report summarizes a filtered signal against its raw input and, if known,
// the noise-free reference.
type Report struct {
	Samples         int
	RawJitter       float64 // RMS of first differences of the input
	FilteredJitter  float64 // RMS of first differences of the output
	JitterReduction float64 // RawJitter / FilteredJitter; +Inf for a flat output
	LagSamples      int     // shift that best aligns output with reference
	RMSError        float64 // RMS of output - reference
	ErrorMean       float64
	ErrorStdDev     float64
	HighBandRatio   float64 // share of residual power above the corner
}

// Jitter returns the RMS of the first differences of x, a scale-aware
// measure of sample-to-sample noise. Signals shorter than two samples have
// zero jitter.
func Jitter(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}

	diff := make([]float64, len(x)-1)
	floats.SubTo(diff, x[1:], x[:len(x)-1])
	vecmath.MulBlockInPlace(diff, diff)

	return math.Sqrt(floats.Sum(diff) / float64(len(diff)))
}

// TrackingError returns the RMS, mean and standard deviation of
// filtered - reference.
func TrackingError(filtered, reference []float64) (rms, mean, stddev float64, err error) {
	if len(filtered) != len(reference) {
		return 0, 0, 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(filtered), len(reference))
	}
	if len(filtered) == 0 {
		return 0, 0, 0, nil
	}

	e := make([]float64, len(filtered))
	floats.SubTo(e, filtered, reference)

	mean, stddev = stat.MeanStdDev(e, nil)
	if len(e) == 1 {
		stddev = 0
	}

	sq := make([]float64, len(e))
	vecmath.MulBlock(sq, e, e)
	rms = math.Sqrt(floats.Sum(sq) / float64(len(sq)))

	return rms, mean, stddev, nil
}

// Lag returns the delay k in [0, maxLag] samples for which
// filtered[i] best matches reference[i-k] in the mean-squared sense. A
// causal smoother never leads, so negative shifts are not searched.
// maxLag <= 0 selects a default of 64 samples.
func Lag(filtered, reference []float64, maxLag int) (int, error) {
	if len(filtered) != len(reference) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(filtered), len(reference))
	}
	if maxLag <= 0 {
		maxLag = defaultMaxLag
	}
	if maxLag > len(filtered)/2 {
		maxLag = len(filtered) / 2
	}

	best, bestErr := 0, math.Inf(1)
	var diff []float64
	for k := 0; k <= maxLag; k++ {
		n := len(filtered) - k
		if n <= 0 {
			break
		}
		diff = core.EnsureLen(diff, n)
		floats.SubTo(diff, filtered[k:], reference[:n])

		mse := floats.Dot(diff, diff) / float64(n)
		if mse < bestErr {
			best, bestErr = k, mse
		}
	}

	return best, nil
}

// Analyze computes a Report. reference may be nil, in which case raw is
// used as the reference for lag and error. sampleRate is used for the
// high-band ratio, whose corner is a tenth of the sample rate.
func Analyze(raw, filtered, reference []float64, sampleRate float64) (Report, error) {
	if len(raw) != len(filtered) {
		return Report{}, fmt.Errorf("%w: raw %d vs filtered %d", ErrLengthMismatch, len(raw), len(filtered))
	}
	if reference == nil {
		reference = raw
	}

	rms, mean, stddev, err := TrackingError(filtered, reference)
	if err != nil {
		return Report{}, err
	}

	lag, err := Lag(filtered, reference, 0)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		Samples:        len(raw),
		RawJitter:      Jitter(raw),
		FilteredJitter: Jitter(filtered),
		LagSamples:     lag,
		RMSError:       rms,
		ErrorMean:      mean,
		ErrorStdDev:    stddev,
	}

	switch {
	case rep.FilteredJitter > 0:
		rep.JitterReduction = rep.RawJitter / rep.FilteredJitter
	case rep.RawJitter > 0:
		rep.JitterReduction = math.Inf(1)
	default:
		rep.JitterReduction = 1
	}

	if len(raw) >= 2 && sampleRate > 0 {
		residual := make([]float64, len(filtered))
		floats.SubTo(residual, filtered, reference)

		ratio, err := HighBandRatio(residual, sampleRate, sampleRate/10)
		if err != nil {
			return Report{}, err
		}
		rep.HighBandRatio = ratio
	}

	return rep, nil
}
