package oneeuro

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// MultiAxis filters a structured value by running one Filter per axis.
// The axis count is fixed by the layout for the lifetime of the instance.
type MultiAxis[T any] struct {
	layout   Layout[T]
	axes     []Filter
	scratch  []float64 // owned; written only by Process
	current  T
	previous T
	report   DiagnosticFunc
}

// NewMultiAxis constructs a filter for values described by layout. It
// panics if layout is not one of the predefined layouts.
func NewMultiAxis[T any](layout Layout[T], params Params, opts ...Option) *MultiAxis[T] {
	if !layout.valid() {
		panic("oneeuro: invalid layout")
	}

	cfg := applyOptions(opts)
	n := layout.Dimensions()

	m := &MultiAxis[T]{
		layout:  layout,
		axes:    make([]Filter, n),
		scratch: make([]float64, n),
		report:  cfg.report,
	}

	valid := params.validate(cfg.report)
	for i := range m.axes {
		m.axes[i].init(valid, cfg.report)
	}

	return m
}

// NewScalar returns a single-axis filter for float64 values.
func NewScalar(params Params, opts ...Option) *MultiAxis[float64] {
	return NewMultiAxis(Scalar, params, opts...)
}

// NewVector2 returns a filter for r2.Vec values.
func NewVector2(params Params, opts ...Option) *MultiAxis[r2.Vec] {
	return NewMultiAxis(Vector2, params, opts...)
}

// NewVector3 returns a filter for r3.Vec values.
func NewVector3(params Params, opts ...Option) *MultiAxis[r3.Vec] {
	return NewMultiAxis(Vector3, params, opts...)
}

// NewVector4 returns a filter for Vec4 values.
func NewVector4(params Params, opts ...Option) *MultiAxis[Vec4] {
	return NewMultiAxis(Vector4, params, opts...)
}

// NewRotation returns a filter for quaternion rotations. The output is not
// renormalized.
func NewRotation(params Params, opts ...Option) *MultiAxis[quat.Number] {
	return NewMultiAxis(Rotation, params, opts...)
}

// Kind returns the layout tag.
func (m *MultiAxis[T]) Kind() Kind { return m.layout.Kind() }

// Dimensions returns the number of axes.
func (m *MultiAxis[T]) Dimensions() int { return len(m.axes) }

// Axis returns the filter of axis i.
func (m *MultiAxis[T]) Axis(i int) *Filter { return &m.axes[i] }

// Params returns the configured parameters, shared by all axes.
func (m *MultiAxis[T]) Params() Params { return m.axes[0].Params() }

// Frequency returns the sampling frequency used for the most recent
// sample. Every axis sees the same timestamps, so the first one speaks for
// all.
func (m *MultiAxis[T]) Frequency() float64 { return m.axes[0].Frequency() }

// Current returns the most recent filtered value.
func (m *MultiAxis[T]) Current() T { return m.current }

// Previous returns the filtered value before the most recent one.
func (m *MultiAxis[T]) Previous() T { return m.previous }

// Process filters one structured sample and returns the filtered value.
func (m *MultiAxis[T]) Process(v T, ts Timestamp) T {
	if m.layout.align != nil {
		v = m.layout.align(m.current, v)
	}

	m.layout.decompose(m.scratch, v)

	for i := range m.axes {
		m.scratch[i] = m.axes[i].Process(m.scratch[i], ts)
	}

	m.previous = m.current
	m.current = m.layout.recompose(m.scratch)

	return m.current
}

// UpdateParams copies params into every axis. Diagnostics for corrected
// values are reported once, not per axis.
func (m *MultiAxis[T]) UpdateParams(params Params) {
	valid := params.validate(m.report)
	for i := range m.axes {
		m.axes[i].setParams(valid)
	}
}

// Reset clears the sample history of all axes and the stored outputs.
func (m *MultiAxis[T]) Reset() {
	for i := range m.axes {
		m.axes[i].Reset()
	}

	var zero T
	m.current = zero
	m.previous = zero
}
