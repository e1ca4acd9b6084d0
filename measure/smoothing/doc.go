// Package smoothing measures the quality of a smoothed signal: how much
// jitter survives, how far the output lags behind the true motion, and how
// much residual noise power sits above a corner frequency.
//
// The metrics support the usual tuning procedure for speed-adaptive
// filters: with Beta = 0, lower MinCutoff until Jitter is acceptable, then
// raise Beta until Lag is acceptable.
//
// # Usage
//
//	rep, err := smoothing.Analyze(raw, filtered, clean, 120)
//	fmt.Printf("jitter %.3f -> %.3f, lag %d samples\n",
//		rep.RawJitter, rep.FilteredJitter, rep.LagSamples)
package smoothing
