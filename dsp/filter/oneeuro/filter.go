package oneeuro

import "math"

// Option configures a Filter or MultiAxis.
type Option func(*config)

type config struct {
	report DiagnosticFunc
}

// WithDiagnostics installs a callback for corrected parameters. Without it
// corrections happen silently.
func WithDiagnostics(fn DiagnosticFunc) Option {
	return func(cfg *config) {
		cfg.report = fn
	}
}

func applyOptions(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Filter is the adaptive scalar filter. It cascades two LowPass stages: one
// smooths the speed of the input, the other smooths the input with a cutoff
// that rises with that speed.
type Filter struct {
	params     Params  // as configured, after validation
	rate       float64 // sampling frequency used by the most recent sample
	value      LowPass
	derivative LowPass
	last       Timestamp
	current    float64
	previous   float64
	report     DiagnosticFunc
}

// New constructs a Filter. Invalid parameters are corrected, never
// rejected.
func New(params Params, opts ...Option) *Filter {
	cfg := applyOptions(opts)

	f := &Filter{}
	f.init(params.validate(cfg.report), cfg.report)

	return f
}

func (f *Filter) init(params Params, report DiagnosticFunc) {
	f.report = report
	f.value = LowPass{report: report}
	f.derivative = LowPass{report: report}
	f.setParams(params)
}

// Params returns the configured parameters after validation. Frequency is
// the static rate, not the latest estimate.
func (f *Filter) Params() Params { return f.params }

// Frequency returns the sampling frequency in Hz used for the most recent
// sample: the estimate from its timestamp interval, or the configured
// frequency when there was none.
func (f *Filter) Frequency() float64 { return f.rate }

// Current returns the most recent filtered value.
func (f *Filter) Current() float64 { return f.current }

// Previous returns the filtered value before the most recent one.
func (f *Filter) Previous() float64 { return f.previous }

// UpdateParams replaces all parameters. They are validated immediately, so
// the next sample uses corrected values even without a new timestamp. The
// frequency estimate is discarded in favour of the new static frequency.
func (f *Filter) UpdateParams(params Params) {
	f.setParams(params.validate(f.report))
}

func (f *Filter) setParams(params Params) {
	f.params = params
	f.rate = params.Frequency
	f.value.SetAlpha(Alpha(params.MinCutoff, params.Frequency))
	f.derivative.SetAlpha(Alpha(params.DerivativeCutoff, params.Frequency))
}

// Process filters one sample and returns the filtered value.
//
// If both ts and the previous sample's timestamp are present, the sampling
// frequency is estimated from their difference. Otherwise the configured
// frequency is used. A missing timestamp is remembered too, so the timed
// sample after it also falls back to the configured frequency.
func (f *Filter) Process(x float64, ts Timestamp) float64 {
	f.previous = f.current

	rate := f.params.Frequency
	if last, ok := f.last.Value(); ok {
		if now, ok := ts.Value(); ok {
			rate = f.estimateFrequency(now - last)
		}
	}
	f.rate = rate

	f.last = ts

	dx := 0.0
	if f.value.Initialized() {
		dx = (x - f.value.LastInput()) * f.rate
	}

	edx := f.derivative.Process(dx, Alpha(f.params.DerivativeCutoff, f.rate))
	cutoff := f.params.MinCutoff + f.params.Beta*math.Abs(edx)

	f.current = f.value.Process(x, Alpha(cutoff, f.rate))

	return f.current
}

// estimateFrequency converts the time between two samples into a rate.
// Equal timestamps keep the rate of the previous sample; reversed ones clamp
// to the smallest positive rate.
func (f *Filter) estimateFrequency(elapsed float64) float64 {
	freq := 1 / elapsed
	if math.IsInf(freq, 1) {
		f.report.emit(ErrNonPositiveFrequency, "frequency", freq, f.rate)
		return f.rate
	}

	return validateFrequency(freq, f.report)
}

// Reset clears the sample history and the frequency estimate. Parameters
// are kept.
func (f *Filter) Reset() {
	f.rate = f.params.Frequency
	f.value.Reset()
	f.derivative.Reset()
	f.last = NoTimestamp
	f.current = 0
	f.previous = 0
}
