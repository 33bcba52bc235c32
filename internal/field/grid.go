package field

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultPoints is the sample count used when none is configured
	DefaultPoints = 2000

	// MinPoints is the smallest sample count a grid is built with
	MinPoints = 100
)

// Grid returns n evenly spaced positions from start to end inclusive.
// n is raised to MinPoints when smaller.
func Grid(start, end float64, n int) []float64 {
	if n < MinPoints {
		n = MinPoints
	}
	x := floats.Span(make([]float64, n), start, end)
	x[n-1] = end
	return x
}

// SpanRange returns the inclusive index range of the grid points lying in
// [a, b]. ok is false when no point falls inside.
func SpanRange(x []float64, a, b float64) (lo, hi int, ok bool) {
	lo = sort.SearchFloat64s(x, a)
	hi = sort.Search(len(x), func(i int) bool { return x[i] > b }) - 1
	if lo > hi || lo >= len(x) || hi < 0 {
		return 0, 0, false
	}
	return lo, hi, true
}

// Interpolate evaluates the piecewise-linear curve (x, y) at position at.
// Positions outside the grid are clamped to the first or last value.
func Interpolate(x, y []float64, at float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	if at <= x[0] {
		return y[0]
	}
	if at >= x[n-1] {
		return y[n-1]
	}

	i := sort.SearchFloat64s(x, at)
	if x[i] == at {
		return y[i]
	}
	x0, x1 := x[i-1], x[i]
	t := (at - x0) / (x1 - x0)
	return y[i-1] + t*(y[i]-y[i-1])
}

// MaxAbs returns the index of the value with the largest magnitude in
// values[lo:hi+1]. The first index wins on ties.
func MaxAbs(values []float64, lo, hi int) int {
	best := lo
	for i := lo + 1; i <= hi; i++ {
		if math.Abs(values[i]) > math.Abs(values[best]) {
			best = i
		}
	}
	return best
}

// cumTrapz integrates y over x with the trapezoid rule into dst,
// starting from initial at x[0].
func cumTrapz(dst, x, y []float64, initial float64) {
	if len(dst) == 0 {
		return
	}
	inc := make([]float64, len(dst))
	inc[0] = initial
	for i := 1; i < len(inc); i++ {
		inc[i] = (y[i-1] + y[i]) / 2 * (x[i] - x[i-1])
	}
	floats.CumSum(dst, inc)
}

// addRamp adds a linear ramp from 0 at dst[0] to c at the last element.
func addRamp(dst []float64, c float64) {
	if len(dst) < 2 {
		return
	}
	ramp := floats.Span(make([]float64, len(dst)), 0, c)
	ramp[len(ramp)-1] = c
	floats.Add(dst, ramp)
}
