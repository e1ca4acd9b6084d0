package core

// EnsureLen returns buf resized to n, reallocating only when its capacity
// is too small. Contents are not preserved across a reallocation.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}
