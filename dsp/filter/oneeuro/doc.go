// Package oneeuro provides speed-adaptive low-pass smoothing for noisy,
// irregularly sampled signals, in the style of the "1€ filter" (Casiez,
// Roussel and Vogel 2012).
//
// A first-order exponential smoother is driven by a cutoff frequency that
// rises with the smoothed speed of the signal:
//
//	cutoff = MinCutoff + Beta*|dx/dt|
//
// Slow or stationary input is smoothed hard (low jitter); fast input is
// smoothed lightly (low lag). Beta = 0 degenerates to a fixed-cutoff
// low-pass filter.
//
// Building blocks:
//   - LowPass: exponential smoother with a per-call coefficient.
//   - Filter: adaptive scalar filter with timestamp-driven rate estimation.
//   - MultiAxis: one Filter per axis of a structured value, selected by a
//     Layout (Scalar, Vector2, Vector3, Vector4, Rotation).
//
// Rotations are gonum quaternions. Because q and -q describe the same
// orientation, the Rotation layout flips the sign of an incoming sample that
// lies on the far side of the double cover from the current output, so a
// sign change upstream never looks like a 180° jump to the filter.
//
// Invalid parameters never stop filtering. Non-positive rates, cutoffs and
// coefficients are clamped to the smallest positive value (coefficients
// above 1 to 1) and reported through an optional DiagnosticFunc.
//
// Filters are not safe for concurrent use. Drive each instance from one
// sample stream, or serialize access externally.
package oneeuro
