package oneeuro

import "github.com/cwbudde/algo-smooth/dsp/core"

// LowPass is a first-order exponential smoother whose coefficient is
// supplied on every call.
//
// The first processed sample passes through unchanged and seeds the state.
type LowPass struct {
	alpha       float64
	lastInput   float64
	lastOutput  float64
	initialized bool
	fault       int8 // sign of the last clamp, 0 when in range
	report      DiagnosticFunc
}

// NewLowPass returns a smoother with the given initial coefficient. report
// may be nil.
func NewLowPass(alpha float64, report DiagnosticFunc) *LowPass {
	lp := &LowPass{report: report}
	lp.SetAlpha(alpha)

	return lp
}

// Alpha returns the coefficient used by the last call.
func (lp *LowPass) Alpha() float64 { return lp.alpha }

// LastInput returns the most recent raw input.
func (lp *LowPass) LastInput() float64 { return lp.lastInput }

// LastOutput returns the most recent smoothed output.
func (lp *LowPass) LastOutput() float64 { return lp.lastOutput }

// Initialized reports whether at least one sample has been processed.
func (lp *LowPass) Initialized() bool { return lp.initialized }

// SetAlpha sets the coefficient, clamping it into (0, 1]. A clamp is
// reported when the coefficient leaves the range, not again while it stays
// out on the same side.
func (lp *LowPass) SetAlpha(alpha float64) {
	clamped, fault := clampAlpha(alpha)
	if fault != 0 && fault != lp.fault {
		lp.report.emit(ErrAlphaOutOfRange, "alpha", alpha, clamped)
	}

	lp.alpha = clamped
	lp.fault = fault
}

// Process smooths value with coefficient alpha and returns the output.
func (lp *LowPass) Process(value, alpha float64) float64 {
	lp.SetAlpha(alpha)

	out := value
	if lp.initialized {
		// Same as alpha*value + (1-alpha)*lastOutput, but exact when
		// value == lastOutput.
		out = lp.lastOutput + lp.alpha*(value-lp.lastOutput)
	} else {
		lp.initialized = true
	}

	lp.lastInput = value
	lp.lastOutput = out

	return out
}

// Reset forgets all processed samples. The coefficient is kept.
func (lp *LowPass) Reset() {
	lp.lastInput = 0
	lp.lastOutput = 0
	lp.initialized = false
}

func clampAlpha(alpha float64) (float64, int8) {
	switch {
	case alpha > 1:
		return 1, 1
	case alpha > 0:
		return alpha, 0
	default:
		return core.MinPositive, -1
	}
}
