package oneeuro

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// RotationFlipThreshold is the squared distance between two normalized
// quaternions above which the incoming one is taken to sit on the opposite
// side of the double cover. Unit quaternions are at most 4 apart (squared),
// and q, -q are exactly 4 apart.
const RotationFlipThreshold = 2.0

// Kind tags the structured value types a MultiAxis can filter.
type Kind int

const (
	// KindScalar is a single float64.
	KindScalar Kind = iota
	// KindVector2 is an r2.Vec.
	KindVector2
	// KindVector3 is an r3.Vec.
	KindVector3
	// KindVector4 is a Vec4.
	KindVector4
	// KindRotation is a quat.Number with sign-continuity correction.
	KindRotation
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector2:
		return "vec2"
	case KindVector3:
		return "vec3"
	case KindVector4:
		return "vec4"
	case KindRotation:
		return "rotation"
	default:
		return "unknown"
	}
}

// Dimensions returns the number of axes of the kind, or 0 if unknown.
func (k Kind) Dimensions() int {
	switch k {
	case KindScalar:
		return 1
	case KindVector2:
		return 2
	case KindVector3:
		return 3
	case KindVector4, KindRotation:
		return 4
	default:
		return 0
	}
}

// Vec4 is a four-component vector.
type Vec4 struct {
	X, Y, Z, W float64
}

// Layout maps a structured value of type T to a fixed number of float64
// axes and back. The predefined layouts are the only valid ones.
type Layout[T any] struct {
	kind      Kind
	decompose func(dst []float64, v T)
	recompose func(src []float64) T
	align     func(current, raw T) T
}

// Predefined layouts.
var (
	Scalar = Layout[float64]{
		kind:      KindScalar,
		decompose: func(dst []float64, v float64) { dst[0] = v },
		recompose: func(src []float64) float64 { return src[0] },
	}

	Vector2 = Layout[r2.Vec]{
		kind:      KindVector2,
		decompose: decomposeVec2,
		recompose: recomposeVec2,
	}

	Vector3 = Layout[r3.Vec]{
		kind:      KindVector3,
		decompose: decomposeVec3,
		recompose: recomposeVec3,
	}

	Vector4 = Layout[Vec4]{
		kind:      KindVector4,
		decompose: decomposeVec4,
		recompose: recomposeVec4,
	}

	Rotation = Layout[quat.Number]{
		kind:      KindRotation,
		decompose: decomposeQuat,
		recompose: recomposeQuat,
		align:     AlignRotation,
	}
)

// Kind returns the layout tag.
func (l Layout[T]) Kind() Kind { return l.kind }

// Dimensions returns the number of axes.
func (l Layout[T]) Dimensions() int { return l.kind.Dimensions() }

// Decompose writes the axes of v into dst, which must hold at least
// Dimensions values.
func (l Layout[T]) Decompose(dst []float64, v T) { l.decompose(dst, v) }

// Recompose builds a value from the first Dimensions values of src.
func (l Layout[T]) Recompose(src []float64) T { return l.recompose(src) }

func (l Layout[T]) valid() bool {
	return l.decompose != nil && l.recompose != nil && l.Dimensions() > 0
}

func decomposeVec2(dst []float64, v r2.Vec) {
	dst[0], dst[1] = v.X, v.Y
}

func recomposeVec2(src []float64) r2.Vec {
	return r2.Vec{X: src[0], Y: src[1]}
}

func decomposeVec3(dst []float64, v r3.Vec) {
	dst[0], dst[1], dst[2] = v.X, v.Y, v.Z
}

func recomposeVec3(src []float64) r3.Vec {
	return r3.Vec{X: src[0], Y: src[1], Z: src[2]}
}

func decomposeVec4(dst []float64, v Vec4) {
	dst[0], dst[1], dst[2], dst[3] = v.X, v.Y, v.Z, v.W
}

func recomposeVec4(src []float64) Vec4 {
	return Vec4{X: src[0], Y: src[1], Z: src[2], W: src[3]}
}

func decomposeQuat(dst []float64, q quat.Number) {
	dst[0], dst[1], dst[2], dst[3] = q.Real, q.Imag, q.Jmag, q.Kmag
}

func recomposeQuat(src []float64) quat.Number {
	return quat.Number{Real: src[0], Imag: src[1], Jmag: src[2], Kmag: src[3]}
}

// AlignRotation returns raw, or -raw if raw lies on the opposite side of the
// quaternion double cover from current. Both are compared normalized; a zero
// current (no output yet) never causes a flip.
func AlignRotation(current, raw quat.Number) quat.Number {
	d := quat.Sub(normalizeQuat(current), normalizeQuat(raw))
	if squaredNorm(d) > RotationFlipThreshold {
		return quat.Scale(-1, raw)
	}

	return raw
}

func normalizeQuat(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) {
		return q
	}

	return quat.Scale(1/n, q)
}

func squaredNorm(q quat.Number) float64 {
	return q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag
}
