package oneeuro

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-smooth/dsp/core"
	"github.com/cwbudde/algo-smooth/internal/testutil"
	"github.com/cwbudde/algo-smooth/measure/smoothing"
)

func collect(diags *[]Diagnostic) Option {
	return WithDiagnostics(func(d Diagnostic) { *diags = append(*diags, d) })
}

func TestFilterFirstSamplePassesThrough(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		ts   Timestamp
	}{
		{name: "zero", x: 0, ts: At(0)},
		{name: "positive with time", x: 12.5, ts: At(3.2)},
		{name: "negative without time", x: -7.75, ts: NoTimestamp},
		{name: "large", x: 1e12, ts: At(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(Params{Frequency: 60, MinCutoff: 0.5, Beta: 0.3, DerivativeCutoff: 1})
			if got := f.Process(tt.x, tt.ts); got != tt.x {
				t.Fatalf("Process() = %v, want %v", got, tt.x)
			}
			if f.Current() != tt.x || f.Previous() != 0 {
				t.Fatalf("Current/Previous = %v/%v, want %v/0", f.Current(), f.Previous(), tt.x)
			}
		})
	}
}

func TestFilterConstantInputIsExact(t *testing.T) {
	for _, v := range []float64{0.1, -3, 42.4242} {
		f := New(Params{Frequency: 60, MinCutoff: 1, Beta: 0.5, DerivativeCutoff: 1})
		for i := range 200 {
			if got := f.Process(v, At(float64(i)/60)); got != v {
				t.Fatalf("value %v sample %d: Process() = %v, want exactly %v", v, i, got, v)
			}
		}
	}
}

func TestFilterEstimatesFrequencyFromTimestamps(t *testing.T) {
	f := New(DefaultParams())

	f.Process(0, At(1))
	if f.Frequency() != 120 {
		t.Fatalf("Frequency() after one sample = %v, want configured 120", f.Frequency())
	}

	f.Process(0, At(1.01))
	testutil.RequireNearlyEqual(t, "Frequency()", f.Frequency(), 100, 1e-9)

	f.Process(0, At(1.03))
	testutil.RequireNearlyEqual(t, "Frequency()", f.Frequency(), 50, 1e-9)
}

func TestFilterWithoutTimestampsUsesStaticFrequency(t *testing.T) {
	f := New(Params{Frequency: 90, MinCutoff: 1, DerivativeCutoff: 1})
	g := New(Params{Frequency: 90, MinCutoff: 1, DerivativeCutoff: 1})

	in := testutil.DeterministicSine(1, 90, 1, 50)
	for i, x := range in {
		a := f.Process(x, NoTimestamp)
		b := g.Process(x, NoTimestamp)
		if a != b {
			t.Fatalf("sample %d: %v != %v", i, a, b)
		}
	}

	if f.Frequency() != 90 {
		t.Fatalf("Frequency() = %v, want 90", f.Frequency())
	}

	// Expected output from the fixed-frequency recurrence.
	ref := NewLowPass(1, nil)
	h := New(Params{Frequency: 90, MinCutoff: 1, DerivativeCutoff: 1})
	a := Alpha(1, 90)
	for i, x := range in {
		want := ref.Process(x, a)
		if got := h.Process(x, NoTimestamp); math.Abs(got-want) > 1e-12 {
			t.Fatalf("sample %d: Process() = %v, want %v", i, got, want)
		}
	}
}

func TestFilterMissingTimestampUsesConfiguredFrequency(t *testing.T) {
	f := New(DefaultParams())

	f.Process(1, At(0))
	f.Process(1, At(0.02))
	testutil.RequireNearlyEqual(t, "Frequency()", f.Frequency(), 50, 1e-9)

	f.Process(1, NoTimestamp)
	if f.Frequency() != 120 {
		t.Fatalf("Frequency() without timestamp = %v, want configured 120", f.Frequency())
	}

	// The absent timestamp overwrites the last one, so the following timed
	// sample has nothing to difference against either.
	f.Process(1, At(5))
	if f.Frequency() != 120 {
		t.Fatalf("Frequency() after gap = %v, want configured 120", f.Frequency())
	}

	f.Process(1, At(5.1))
	testutil.RequireNearlyEqual(t, "Frequency()", f.Frequency(), 10, 1e-9)

	if f.Params().Frequency != 120 {
		t.Fatalf("Params().Frequency = %v, want 120", f.Params().Frequency)
	}
}

// referenceOutputs runs the filter recurrence with an explicit rate per
// sample.
func referenceOutputs(p Params, xs, rates []float64) []float64 {
	value := NewLowPass(1, nil)
	derivative := NewLowPass(1, nil)

	out := make([]float64, len(xs))
	for i, x := range xs {
		dx := 0.0
		if value.Initialized() {
			dx = (x - value.LastInput()) * rates[i]
		}
		edx := derivative.Process(dx, Alpha(p.DerivativeCutoff, rates[i]))
		out[i] = value.Process(x, Alpha(p.MinCutoff+p.Beta*math.Abs(edx), rates[i]))
	}
	return out
}

func TestFilterSwitchesBetweenTimedAndUntimedSamples(t *testing.T) {
	const configured = 75.0

	p := Params{Frequency: configured, MinCutoff: 0.8, Beta: 0.4, DerivativeCutoff: 1.2}
	xs := []float64{0, 0.5, 1.5, 1.2, 2, 3, 2.5, 2.75, 4, 3.5, 3.8, 5}
	stamps := []Timestamp{
		At(0), At(0.01), At(0.02), At(0.04), // timed
		NoTimestamp, NoTimestamp, NoTimestamp, // untimed
		At(1), At(1.02), At(1.03), // timed again
		NoTimestamp, At(2), // single gap
	}

	rates := make([]float64, len(xs))
	for i, ts := range stamps {
		rates[i] = configured
		if i == 0 {
			continue
		}
		last, lastOK := stamps[i-1].Value()
		now, ok := ts.Value()
		if lastOK && ok {
			rates[i] = 1 / (now - last)
		}
	}

	want := referenceOutputs(p, xs, rates)

	f := New(p)
	for i, x := range xs {
		got := f.Process(x, stamps[i])
		if got != want[i] {
			t.Fatalf("sample %d (%v): Process() = %v, want %v", i, stamps[i], got, want[i])
		}
		if f.Frequency() != rates[i] {
			t.Fatalf("sample %d (%v): Frequency() = %v, want %v", i, stamps[i], f.Frequency(), rates[i])
		}
	}
}

func TestFilterUpdateParamsDiscardsEstimate(t *testing.T) {
	f := New(DefaultParams())
	f.Process(0, At(0))
	f.Process(1, At(0.05))
	testutil.RequireNearlyEqual(t, "Frequency()", f.Frequency(), 20, 1e-9)

	f.UpdateParams(Params{Frequency: 200, MinCutoff: 1, DerivativeCutoff: 1})
	if f.Frequency() != 200 {
		t.Fatalf("Frequency() after UpdateParams = %v, want 200", f.Frequency())
	}

	f.Process(2, NoTimestamp)
	if f.Frequency() != 200 {
		t.Fatalf("Frequency() = %v, want 200", f.Frequency())
	}
}

func TestFilterEqualTimestampsKeepFrequency(t *testing.T) {
	var diags []Diagnostic
	f := New(DefaultParams(), collect(&diags))

	f.Process(0, At(0))
	f.Process(1, At(0.01))
	f.Process(2, At(0.01))

	testutil.RequireNearlyEqual(t, "Frequency()", f.Frequency(), 100, 1e-9)
	testutil.RequireFinite(t, f.Current())

	if len(diags) != 1 || !errors.Is(diags[0], ErrNonPositiveFrequency) {
		t.Fatalf("diagnostics = %v, want one ErrNonPositiveFrequency", diags)
	}
	if !math.IsInf(diags[0].Value, 1) {
		t.Fatalf("Value = %v, want +Inf", diags[0].Value)
	}
}

func TestFilterDecreasingTimestampsClampFrequency(t *testing.T) {
	var diags []Diagnostic
	f := New(DefaultParams(), collect(&diags))

	f.Process(0, At(1))
	out := f.Process(5, At(0.5))

	if f.Frequency() != core.MinPositive {
		t.Fatalf("Frequency() = %v, want %v", f.Frequency(), core.MinPositive)
	}
	testutil.RequireFinite(t, out)
	if len(diags) == 0 || !errors.Is(diags[0], ErrNonPositiveFrequency) {
		t.Fatalf("diagnostics = %v, want ErrNonPositiveFrequency first", diags)
	}

	// Monotonic timestamps afterwards restore a sane estimate.
	f.Process(5, At(0.6))
	testutil.RequireNearlyEqual(t, "Frequency()", f.Frequency(), 10, 1e-9)
	testutil.RequireFinite(t, f.Process(6, At(0.7)))
}

func TestFilterNegativeMinCutoffClamped(t *testing.T) {
	var diags []Diagnostic
	f := New(Params{Frequency: 120, MinCutoff: -1, Beta: 0, DerivativeCutoff: 1}, collect(&diags))

	if f.Params().MinCutoff != core.MinPositive {
		t.Fatalf("MinCutoff = %v, want %v", f.Params().MinCutoff, core.MinPositive)
	}
	if len(diags) == 0 || !errors.Is(diags[0], ErrNonPositiveCutoff) {
		t.Fatalf("diagnostics = %v, want ErrNonPositiveCutoff first", diags)
	}

	testutil.RequireFinite(t,
		f.Process(1, At(0)),
		f.Process(2, At(1.0/120)),
		f.Process(3, At(2.0/120)),
	)
}

func TestFilterClampedCutoffReportedOnce(t *testing.T) {
	var diags []Diagnostic
	f := New(Params{Frequency: 120, MinCutoff: -1, Beta: 0, DerivativeCutoff: 1}, collect(&diags))

	// The cutoff correction and the coefficient it underflows to.
	if len(diags) != 2 || !errors.Is(diags[0], ErrNonPositiveCutoff) || !errors.Is(diags[1], ErrAlphaOutOfRange) {
		t.Fatalf("diagnostics at construction = %v, want cutoff then alpha", diags)
	}

	for i := range 100 {
		f.Process(float64(i%3), At(float64(i)/120))
	}
	if len(diags) != 2 {
		t.Fatalf("diagnostics after 100 samples = %d, want 2", len(diags))
	}
}

func TestFilterUpdateParamsValidatesImmediately(t *testing.T) {
	var diags []Diagnostic
	f := New(DefaultParams(), collect(&diags))

	f.UpdateParams(Params{Frequency: -5, MinCutoff: 2, Beta: 0.1, DerivativeCutoff: 1})

	if len(diags) != 1 || !errors.Is(diags[0], ErrNonPositiveFrequency) {
		t.Fatalf("diagnostics = %v, want one ErrNonPositiveFrequency", diags)
	}
	want := Params{Frequency: core.MinPositive, MinCutoff: 2, Beta: 0.1, DerivativeCutoff: 1}
	if f.Params() != want {
		t.Fatalf("Params() = %+v, want %+v", f.Params(), want)
	}

	f.Process(1, NoTimestamp)
	testutil.RequireFinite(t, f.Process(2, NoTimestamp))
}

func TestFilterParamsAreCopied(t *testing.T) {
	p := DefaultParams()
	a := New(p)
	b := New(p)

	a.UpdateParams(Params{Frequency: 30, MinCutoff: 5, Beta: 1, DerivativeCutoff: 2})
	p.MinCutoff = 99

	if b.Params() != DefaultParams() {
		t.Fatalf("b.Params() = %+v, want defaults", b.Params())
	}
	if a.Params().MinCutoff != 5 {
		t.Fatalf("a.Params().MinCutoff = %v, want 5", a.Params().MinCutoff)
	}
}

func TestFilterPreviousTracksLastOutput(t *testing.T) {
	f := New(DefaultParams())

	first := f.Process(1, NoTimestamp)
	second := f.Process(4, NoTimestamp)

	if f.Previous() != first || f.Current() != second {
		t.Fatalf("Previous/Current = %v/%v, want %v/%v", f.Previous(), f.Current(), first, second)
	}
}

// A larger beta raises the cutoff while the signal moves, so the output
// follows the same input more closely.
func TestFilterBetaReducesLag(t *testing.T) {
	const fs = 120.0

	in := testutil.DeterministicSine(1, fs, 1, 480)
	times := testutil.UniformTimes(fs, len(in))

	run := func(beta float64) []float64 {
		f := New(Params{Frequency: fs, MinCutoff: 1, Beta: beta, DerivativeCutoff: 1})
		out := make([]float64, len(in))
		for i, x := range in {
			out[i] = f.Process(x, At(times[i]))
		}
		return out
	}

	prevLag, prevRMS := math.MaxInt, math.Inf(1)
	for _, beta := range []float64{0, 0.1, 0.5, 2} {
		out := run(beta)

		lag, err := smoothing.Lag(out, in, 0)
		if err != nil {
			t.Fatalf("Lag() error = %v", err)
		}
		rms, _, _, err := smoothing.TrackingError(out, in)
		if err != nil {
			t.Fatalf("TrackingError() error = %v", err)
		}

		if lag > prevLag {
			t.Fatalf("beta %v: lag %d above %d of smaller beta", beta, lag, prevLag)
		}
		if rms >= prevRMS {
			t.Fatalf("beta %v: rms error %v not below %v of smaller beta", beta, rms, prevRMS)
		}
		prevLag, prevRMS = lag, rms
	}
}

// With Beta = 0 the filter trades lag for jitter: a noisy stationary input
// comes out far quieter.
func TestFilterReducesJitterWhenStationary(t *testing.T) {
	const fs = 120.0

	noise := testutil.DeterministicNoise(11, 0.02, 600)
	f := New(Params{Frequency: fs, MinCutoff: 1, Beta: 0, DerivativeCutoff: 1})

	out := make([]float64, len(noise))
	for i, x := range noise {
		out[i] = f.Process(5+x, At(float64(i)/fs))
	}

	raw := make([]float64, len(noise))
	for i, x := range noise {
		raw[i] = 5 + x
	}

	if r := smoothing.Jitter(raw) / smoothing.Jitter(out); r < 10 {
		t.Fatalf("jitter reduction = %v, want >= 10", r)
	}
}

func TestFilterReset(t *testing.T) {
	f := New(DefaultParams())
	f.Process(3, At(0))
	f.Process(4, At(0.1))
	f.Reset()

	if f.Current() != 0 || f.Previous() != 0 {
		t.Fatalf("Current/Previous = %v/%v after Reset, want 0/0", f.Current(), f.Previous())
	}
	if f.Frequency() != 120 {
		t.Fatalf("Frequency() after Reset = %v, want configured 120", f.Frequency())
	}
	if got := f.Process(-8, At(10)); got != -8 {
		t.Fatalf("Process() after Reset = %v, want -8", got)
	}
	if f.Frequency() != 120 {
		t.Fatalf("Frequency() = %v, want configured 120", f.Frequency())
	}

	f.Process(-8, At(10.5))
	testutil.RequireNearlyEqual(t, "Frequency()", f.Frequency(), 2, 1e-9)
}

func TestFilterResetReplaysStream(t *testing.T) {
	p := Params{Frequency: 90, MinCutoff: 0.5, Beta: 0.05, DerivativeCutoff: 1}
	xs := testutil.DeterministicNoise(11, 0.4, 90)
	times := testutil.UniformTimes(90, len(xs))

	run := func(f *Filter) []float64 {
		out := make([]float64, len(xs))
		for i, x := range xs {
			out[i] = f.Process(x, At(times[i]))
		}
		return out
	}

	f := New(p)
	first := run(f)
	f.Reset()
	second := run(f)

	testutil.RequireSliceNearlyEqual(t, second, first, 0)

	// The filtered stream must differ from its input.
	d, err := testutil.MaxAbsDiff(first, xs)
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if d == 0 {
		t.Fatal("filter output equals its input")
	}
}
