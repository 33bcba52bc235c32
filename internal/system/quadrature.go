package system

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	quadPoints   = 8
	quadRelTol   = 1e-10
	quadMaxDepth = 16
)

// integrate is an adaptive Gauss-Legendre rule: an interval is bisected until
// its two halves agree with the whole to within quadRelTol of the first estimate.
func integrate(f func(float64) float64, a, b float64) float64 {
	if !(b > a) {
		return 0
	}
	whole := quad.Fixed(f, a, b, quadPoints, quad.Legendre{}, 0)
	tol := quadRelTol * math.Abs(whole)
	return refine(f, a, b, whole, tol, quadMaxDepth)
}

func refine(f func(float64) float64, a, b, whole, tol float64, depth int) float64 {
	mid := a + (b-a)/2
	left := quad.Fixed(f, a, mid, quadPoints, quad.Legendre{}, 0)
	right := quad.Fixed(f, mid, b, quadPoints, quad.Legendre{}, 0)
	sum := left + right

	if depth == 0 || math.Abs(sum-whole) <= tol {
		return sum
	}
	return refine(f, a, mid, left, tol/2, depth-1) + refine(f, mid, b, right, tol/2, depth-1)
}
