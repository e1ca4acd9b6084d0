package smoothing

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Spectrum is a one-sided power spectrum.
type Spectrum struct {
	FFTSize    int
	SampleRate float64
	Freqs      []float64 // bin centre frequencies in Hz, 0..Nyquist
	Power      []float64 // |X[k]|², Hann-windowed, mean removed
}

// NoiseSpectrum returns the power spectrum of x. The mean is removed and a
// Hann window applied before a zero-padded power-of-two FFT.
func NoiseSpectrum(x []float64, sampleRate float64) (Spectrum, error) {
	if len(x) < 2 {
		return Spectrum{}, fmt.Errorf("smoothing: spectrum needs at least 2 samples: %d", len(x))
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Spectrum{}, fmt.Errorf("smoothing: sample rate must be > 0 and finite: %f", sampleRate)
	}

	fftSize := nextPowerOfTwo(len(x))

	windowed := make([]float64, len(x))
	copy(windowed, x)
	floats.AddConst(-stat.Mean(x, nil), windowed)
	vecmath.MulBlockInPlace(windowed, hann(len(x)))

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("smoothing: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("smoothing: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	spec := Spectrum{
		FFTSize:    fftSize,
		SampleRate: sampleRate,
		Freqs:      make([]float64, bins),
		Power:      make([]float64, bins),
	}
	vecmath.Power(spec.Power, re, im)

	binHz := sampleRate / float64(fftSize)
	for k := range spec.Freqs {
		spec.Freqs[k] = float64(k) * binHz
	}

	return spec, nil
}

// HighBandRatio returns the share of the power of x above cornerHz. It is 0
// for a signal without AC content.
func HighBandRatio(x []float64, sampleRate, cornerHz float64) (float64, error) {
	spec, err := NoiseSpectrum(x, sampleRate)
	if err != nil {
		return 0, err
	}

	total := floats.Sum(spec.Power)
	if total == 0 {
		return 0, nil
	}

	high := 0.0
	for k, f := range spec.Freqs {
		if f > cornerHz {
			high += spec.Power[k]
		}
	}

	return high / total, nil
}

func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
