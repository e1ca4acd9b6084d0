package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"strconv"

	"gonum.org/v1/gonum/num/quat"

	"github.com/cwbudde/algo-smooth/dsp/core"
	"github.com/cwbudde/algo-smooth/dsp/signal"
)

const (
	demoNoise    = 0.05
	demoJitter   = 0.2
	demoSpinHz   = 0.25
	demoFlipRate = 0.1
)

// generateDemo writes samples synthetic records for cfg.Kind: a slow sine
// per axis, or a slow spin for rotations, plus Gaussian noise and jittered
// timestamps. Rotations get random sign flips.
func generateDemo(cfg Config, samples int, seed int64, w io.Writer) error {
	gen := signal.NewGeneratorWithOptions(
		[]core.StreamOption{
			core.WithSampleRate(cfg.Filter.Params().Frequency),
			core.WithJitter(demoJitter),
		},
		signal.WithSeed(seed),
	)

	times, err := gen.Timestamps(samples)
	if err != nil {
		return fmt.Errorf("smooth: demo: %w", err)
	}

	dims := cfg.dimensions()
	axes := make([][]float64, dims)
	for i := range axes {
		gen.SetSeed(seed + int64(i)*7919)
		noise, err := gen.GaussianNoise(demoNoise, samples)
		if err != nil {
			return fmt.Errorf("smooth: demo: %w", err)
		}
		if cfg.Kind == "rotation" {
			axes[i] = noise
			continue
		}

		wave, err := gen.Sine(0.5*float64(i+1), 1, samples)
		if err != nil {
			return fmt.Errorf("smooth: demo: %w", err)
		}
		if axes[i], err = signal.Add(wave, noise); err != nil {
			return fmt.Errorf("smooth: demo: %w", err)
		}
	}

	if cfg.Kind == "rotation" {
		spin(axes, times, seed)
	}

	cw := csv.NewWriter(w)
	record := make([]string, dims+1)
	for n, t := range times {
		record[0] = strconv.FormatFloat(t, 'f', 6, 64)
		for i := range dims {
			record[i+1] = strconv.FormatFloat(axes[i][n], 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("smooth: demo: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// spin adds a rotation about z to the noise already held in axes
// (w, x, y, z order), normalizes and randomly negates each sample.
func spin(axes [][]float64, times []float64, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for n, t := range times {
		half := math.Pi * demoSpinHz * t
		q := quat.Number{
			Real: math.Cos(half) + axes[0][n],
			Imag: axes[1][n],
			Jmag: axes[2][n],
			Kmag: math.Sin(half) + axes[3][n],
		}
		q = quat.Scale(1/quat.Abs(q), q)
		if rng.Float64() < demoFlipRate {
			q = quat.Scale(-1, q)
		}
		axes[0][n], axes[1][n], axes[2][n], axes[3][n] = q.Real, q.Imag, q.Jmag, q.Kmag
	}
}

// runDemo smooths a generated stream and reports per-axis metrics.
func runDemo(cfg Config, samples int, seed int64, w io.Writer, logger *slog.Logger) (Summary, error) {
	var input bytes.Buffer
	if err := generateDemo(cfg, samples, seed, &input); err != nil {
		return Summary{}, err
	}

	cfg.Timestamps = true
	cfg.Header = false
	cfg.Delimiter = ","
	cfg.Report = true

	logger.Info("demo", "kind", cfg.Kind, "samples", samples, "seed", seed)

	return smoothStream(cfg, &input, w, logger)
}
