package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/cwbudde/algo-smooth/dsp/filter/oneeuro"
	"github.com/cwbudde/algo-smooth/measure/smoothing"
)

// ErrColumnCount is returned for a record with the wrong number of fields.
var ErrColumnCount = errors.New("smooth: wrong number of columns")

// Summary describes a completed run.
type Summary struct {
	Samples     int
	Diagnostics int
	SampleRate  float64
	Reports     []smoothing.Report // one per axis, only with Config.Report
}

// smoothStream filters CSV records from r to w. Each record holds an
// optional leading timestamp in seconds followed by one column per axis.
// Rotations are given as w, x, y, z.
func smoothStream(cfg Config, r io.Reader, w io.Writer, logger *slog.Logger) (Summary, error) {
	switch cfg.Kind {
	case "vec2":
		return runLayout(oneeuro.Vector2, cfg, r, w, logger)
	case "vec3":
		return runLayout(oneeuro.Vector3, cfg, r, w, logger)
	case "vec4":
		return runLayout(oneeuro.Vector4, cfg, r, w, logger)
	case "rotation":
		return runLayout(oneeuro.Rotation, cfg, r, w, logger)
	default:
		return runLayout(oneeuro.Scalar, cfg, r, w, logger)
	}
}

func runLayout[T any](layout oneeuro.Layout[T], cfg Config, r io.Reader, w io.Writer, logger *slog.Logger) (Summary, error) {
	var sum Summary

	report := func(d oneeuro.Diagnostic) {
		sum.Diagnostics++
		logger.Warn("filter input corrected",
			"field", d.Field,
			"value", d.Value,
			"corrected", d.Corrected,
			"err", d.Err)
	}

	filter := oneeuro.NewMultiAxis(layout, cfg.Filter.Params(), oneeuro.WithDiagnostics(report))
	dims := layout.Dimensions()

	cr := csv.NewReader(r)
	cr.Comma, _ = utf8.DecodeRuneInString(cfg.Delimiter)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	cw := csv.NewWriter(w)
	cw.Comma = cr.Comma

	offset := 0
	if cfg.Timestamps {
		offset = 1
	}

	var (
		raw      = make([]float64, dims)
		smoothed = make([]float64, dims)
		record   = make([]string, offset+dims)
		rawAxes  = make([][]float64, dims)
		outAxes  = make([][]float64, dims)
		first    = 0.0
		last     = 0.0
		line     = 0
	)

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("smooth: read input: %w", err)
		}
		line++

		if cfg.Header && line == 1 {
			if err := cw.Write(fields); err != nil {
				return sum, fmt.Errorf("smooth: write output: %w", err)
			}
			continue
		}

		if len(fields) != offset+dims {
			return sum, fmt.Errorf("%w: line %d has %d, want %d", ErrColumnCount, line, len(fields), offset+dims)
		}

		ts := oneeuro.NoTimestamp
		if cfg.Timestamps {
			t, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return sum, fmt.Errorf("smooth: line %d: timestamp: %w", line, err)
			}
			ts = oneeuro.At(t)
			if sum.Samples == 0 {
				first = t
			}
			last = t
		}

		for i := range dims {
			v, err := strconv.ParseFloat(fields[offset+i], 64)
			if err != nil {
				return sum, fmt.Errorf("smooth: line %d: column %d: %w", line, offset+i+1, err)
			}
			raw[i] = v
		}

		if cfg.Bypass {
			copy(smoothed, raw)
		} else {
			out := filter.Process(layout.Recompose(raw), ts)
			layout.Decompose(smoothed, out)
		}

		if offset == 1 {
			record[0] = fields[0]
		}
		for i, v := range smoothed {
			record[offset+i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return sum, fmt.Errorf("smooth: write output: %w", err)
		}

		if cfg.Report {
			for i := range dims {
				rawAxes[i] = append(rawAxes[i], raw[i])
				outAxes[i] = append(outAxes[i], smoothed[i])
			}
		}
		sum.Samples++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return sum, fmt.Errorf("smooth: write output: %w", err)
	}

	sum.SampleRate = cfg.Filter.Params().Frequency
	if cfg.Timestamps && sum.Samples > 1 && last > first {
		sum.SampleRate = float64(sum.Samples-1) / (last - first)
	}

	if !cfg.Report {
		return sum, nil
	}

	sum.Reports = make([]smoothing.Report, dims)
	for i := range dims {
		rep, err := smoothing.Analyze(rawAxes[i], outAxes[i], nil, sum.SampleRate)
		if err != nil {
			return sum, fmt.Errorf("smooth: axis %d: %w", i, err)
		}
		sum.Reports[i] = rep

		logger.Info("axis report",
			"axis", i,
			"samples", rep.Samples,
			"raw_jitter", rep.RawJitter,
			"filtered_jitter", rep.FilteredJitter,
			"jitter_reduction", rep.JitterReduction,
			"lag_samples", rep.LagSamples,
			"rms_error", rep.RMSError,
			"high_band_ratio", rep.HighBandRatio)
	}

	return sum, nil
}
