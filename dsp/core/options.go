package core

// StreamConfig describes a sampled input stream as seen by a per-frame host
// loop.
type StreamConfig struct {
	// SampleRate is the nominal number of samples per second.
	SampleRate float64
	// Jitter is the timestamp jitter as a fraction of the nominal sample
	// period, in [0, 0.5).
	Jitter float64
}

// StreamOption mutates a StreamConfig.
type StreamOption func(*StreamConfig)

// DefaultStreamConfig returns a 120 Hz stream without timestamp jitter.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		SampleRate: 120,
		Jitter:     0,
	}
}

// WithSampleRate sets the nominal sample rate.
func WithSampleRate(sampleRate float64) StreamOption {
	return func(cfg *StreamConfig) {
		if sampleRate > 0 && IsFinite(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithJitter sets the timestamp jitter fraction. Values outside [0, 0.5)
// are ignored so generated timestamps stay strictly increasing.
func WithJitter(fraction float64) StreamOption {
	return func(cfg *StreamConfig) {
		if fraction >= 0 && fraction < 0.5 {
			cfg.Jitter = fraction
		}
	}
}

// ApplyStreamOptions applies zero or more options to the default config.
func ApplyStreamOptions(opts ...StreamOption) StreamConfig {
	cfg := DefaultStreamConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
