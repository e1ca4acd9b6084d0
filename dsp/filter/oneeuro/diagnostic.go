package oneeuro

import (
	"errors"
	"fmt"
)

// Recoverable configuration faults. They are reported through a
// DiagnosticFunc after the offending value has been corrected.
var (
	ErrNonPositiveFrequency = errors.New("oneeuro: frequency must be > 0")
	ErrNonPositiveCutoff    = errors.New("oneeuro: cutoff must be > 0")
	ErrAlphaOutOfRange      = errors.New("oneeuro: alpha must be in (0, 1]")
)

// Diagnostic describes one corrected value.
type Diagnostic struct {
	// Err is one of the package sentinel errors.
	Err error
	// Field names the corrected quantity, e.g. "frequency" or "min cutoff".
	Field string
	// Value is the rejected input.
	Value float64
	// Corrected is the value used instead.
	Corrected float64
}

// Error implements error.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%v: %s = %g, using %g", d.Err, d.Field, d.Value, d.Corrected)
}

// Unwrap returns the sentinel error so errors.Is works on a Diagnostic.
func (d Diagnostic) Unwrap() error { return d.Err }

// DiagnosticFunc receives diagnostics synchronously from the goroutine that
// drives the filter. A nil DiagnosticFunc discards them.
type DiagnosticFunc func(Diagnostic)

func (fn DiagnosticFunc) emit(err error, field string, value, corrected float64) {
	if fn == nil {
		return
	}

	fn(Diagnostic{Err: err, Field: field, Value: value, Corrected: corrected})
}
