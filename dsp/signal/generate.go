package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-smooth/dsp/core"
)

// Generator creates deterministic motion test signals from a shared stream
// configuration.
type Generator struct {
	cfg  core.StreamConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise and jitter generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.StreamOption) *Generator {
	return &Generator{
		cfg:  core.ApplyStreamOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(streamOpts []core.StreamOption, opts ...Option) *Generator {
	g := NewGenerator(streamOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator stream configuration.
func (g *Generator) Config() core.StreamConfig {
	return g.cfg
}

// Seed returns the random seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed replaces the random seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// Timestamps returns sample times in seconds starting at 0. Each time is
// displaced from the nominal grid by up to Jitter sample periods, so the
// sequence is strictly increasing.
func (g *Generator) Timestamps(samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("timestamps samples must be > 0: %d", samples)
	}

	period := 1 / g.cfg.SampleRate
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed + 1))
	for i := range out {
		offset := 0.0
		if g.cfg.Jitter > 0 && i > 0 {
			offset = (rng.Float64()*2 - 1) * g.cfg.Jitter * period
		}
		out[i] = float64(i)*period + offset
	}
	return out, nil
}

// Step generates from for the first at samples and to afterwards.
func (g *Generator) Step(from, to float64, at, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("step samples must be > 0: %d", samples)
	}
	if at < 0 || at > samples {
		return nil, fmt.Errorf("step position must be in [0, %d]: %d", samples, at)
	}
	out := make([]float64, samples)
	for i := range out {
		if i < at {
			out[i] = from
		} else {
			out[i] = to
		}
	}
	return out, nil
}

// Ramp generates start + slope*t at the nominal sample times, slope in
// units per second.
func (g *Generator) Ramp(start, slope float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("ramp samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = start + slope*float64(i)/g.cfg.SampleRate
	}
	return out, nil
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// GaussianNoise generates deterministic zero-mean Gaussian noise with the
// given standard deviation, the usual model of sensor jitter.
func (g *Generator) GaussianNoise(stddev float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if stddev < 0 {
		return nil, fmt.Errorf("noise stddev must be >= 0: %f", stddev)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = rng.NormFloat64() * stddev
	}
	return out, nil
}

// Add returns the element-wise sum of a and b.
func Add(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("add length mismatch: %d vs %d", len(a), len(b))
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out, nil
}
