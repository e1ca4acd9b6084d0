package oneeuro

import "math"

// Alpha returns the exponential smoothing coefficient of a first-order RC
// low-pass with the given cutoff, sampled at frequency:
//
//	te = 1/frequency, tau = 1/(2π·cutoff), alpha = 1/(1 + tau/te)
//
// For positive arguments the result rises with the cutoff and falls with the
// sampling frequency. Extreme arguments may round to 0 or 1; LowPass clamps
// the result into (0, 1].
func Alpha(cutoff, frequency float64) float64 {
	te := 1 / frequency
	tau := 1 / (2 * math.Pi * cutoff)

	return 1 / (1 + tau/te)
}
