// Command smooth applies a One Euro filter to a CSV stream of samples.
//
// Usage:
//
//	smooth [flags] < input.csv > output.csv
//
// Each input record holds a timestamp in seconds (unless -timestamps=false)
// followed by one column per axis: 1 for scalar, 2 for vec2, 3 for vec3,
// 4 for vec4 and rotation (w, x, y, z). Output has the same shape.
//
// Examples:
//
//	smooth -kind vec3 -min-cutoff 0.5 -beta 0.01 < hand.csv
//	smooth -kind rotation -report < imu.csv > smoothed.csv
//	smooth -config smooth.yaml -bypass < raw.csv
//	smooth -kind vec2 -demo 600
//
// Settings may also come from a YAML or TOML file (-config) and from
// SMOOTH_* environment variables such as SMOOTH_FILTER_BETA. Flags win.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("smooth", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML or TOML config file")
	demo := fs.Int("demo", 0, "smooth this many synthetic samples instead of reading stdin")
	seed := fs.Int64("seed", 1, "random seed for -demo")

	// Registered for parsing and -help only; loadConfig reads the values
	// of the flags that were set.
	fs.String("kind", "scalar", "sample kind: scalar, vec2, vec3, vec4 or rotation")
	fs.Bool("timestamps", true, "first column is a timestamp in seconds")
	fs.Bool("header", false, "first record is a header and is copied through")
	fs.String("delimiter", ",", "field delimiter")
	fs.Bool("bypass", false, "copy samples through unfiltered")
	fs.Bool("report", false, "log jitter, lag and error metrics per axis")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.Float64("frequency", 120, "initial sampling frequency in Hz")
	fs.Float64("min-cutoff", 1, "minimum cutoff frequency in Hz")
	fs.Float64("beta", 0, "speed coefficient")
	fs.Float64("derivative-cutoff", 1, "derivative cutoff frequency in Hz")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: smooth [flags] < input.csv > output.csv\n\n")
		fmt.Fprintf(stderr, "Smooths noisy samples with a One Euro filter.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "smooth: unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath, fs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.slogLevel()}))

	var sum Summary
	if *demo > 0 {
		sum, err = runDemo(cfg, *demo, *seed, stdout, logger)
	} else {
		sum, err = smoothStream(cfg, stdin, stdout, logger)
	}
	if err != nil {
		logger.Error("smoothing failed", "err", err)
		return 1
	}

	logger.Debug("done",
		"kind", cfg.Kind,
		"samples", sum.Samples,
		"sample_rate", sum.SampleRate,
		"diagnostics", sum.Diagnostics,
		"bypass", cfg.Bypass)

	return 0
}
