package oneeuro

import "github.com/cwbudde/algo-smooth/dsp/core"

const (
	defaultFrequency        = 120.0
	defaultMinCutoff        = 1.0
	defaultBeta             = 0.0
	defaultDerivativeCutoff = 1.0
)

// Params holds the tunable filter knobs. It is a plain value: filters copy
// it on construction and on UpdateParams.
type Params struct {
	// Frequency is the static sampling frequency in Hz, used whenever a
	// sample and its predecessor do not both carry a timestamp.
	Frequency float64
	// MinCutoff is the cutoff in Hz applied to a stationary signal.
	MinCutoff float64
	// Beta scales how fast the cutoff rises with signal speed.
	Beta float64
	// DerivativeCutoff is the cutoff in Hz of the speed estimate.
	DerivativeCutoff float64
}

// DefaultParams returns 120 Hz sampling, 1 Hz minimum cutoff, no speed
// adaptation and a 1 Hz derivative cutoff.
func DefaultParams() Params {
	return Params{
		Frequency:        defaultFrequency,
		MinCutoff:        defaultMinCutoff,
		Beta:             defaultBeta,
		DerivativeCutoff: defaultDerivativeCutoff,
	}
}

// Validate returns a corrected copy of p together with one Diagnostic per
// corrected field. Non-positive or NaN frequency and cutoffs become
// core.MinPositive. Beta is taken as is.
func (p Params) Validate() (Params, []Diagnostic) {
	var diags []Diagnostic

	valid := p.validate(func(d Diagnostic) {
		diags = append(diags, d)
	})

	return valid, diags
}

func (p Params) validate(report DiagnosticFunc) Params {
	p.Frequency = validateFrequency(p.Frequency, report)
	p.MinCutoff = validateCutoff(p.MinCutoff, "min cutoff", report)
	p.DerivativeCutoff = validateCutoff(p.DerivativeCutoff, "derivative cutoff", report)

	return p
}

func validateFrequency(freq float64, report DiagnosticFunc) float64 {
	valid := core.PositiveOr(freq, core.MinPositive)
	if valid != freq {
		report.emit(ErrNonPositiveFrequency, "frequency", freq, valid)
	}

	return valid
}

func validateCutoff(cutoff float64, field string, report DiagnosticFunc) float64 {
	if cutoff > 0 {
		return cutoff
	}

	report.emit(ErrNonPositiveCutoff, field, cutoff, core.MinPositive)

	return core.MinPositive
}
