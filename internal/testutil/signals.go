package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates Gaussian noise with a fixed seed for
// reproducibility.
func DeterministicNoise(seed int64, stddev float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64() * stddev
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// UniformTimes returns length timestamps in seconds spaced 1/sampleRate apart.
func UniformTimes(sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = float64(i) / sampleRate
	}
	return out
}
