package field

import "gonum.org/v1/gonum/floats"

// Deflection holds the slope and deflection curves sampled on the moment grid.
// Downward deflection is negative.
type Deflection struct {
	Slope      []float64
	Deflection []float64
}

// Deflect double-integrates M/EI span by span. Every span starts from zero
// slope and zero deflection at its left support, then a linear ramp forces
// the deflection back to zero at its right support. The slope is shifted by
// the ramp's gradient, -end over the sampled span length, so it stays the derivative of the deflection.
func Deflect(x, moment, supports []float64, ei float64) *Deflection {
	n := len(x)
	d := &Deflection{
		Slope:      make([]float64, n),
		Deflection: make([]float64, n),
	}

	curvature := make([]float64, n)
	for i, m := range moment {
		curvature[i] = m / ei
	}

	for j := 0; j+1 < len(supports); j++ {
		lo, hi, ok := SpanRange(x, supports[j], supports[j+1])
		if !ok || hi-lo < 1 {
			continue
		}

		xs := x[lo : hi+1]
		slope := d.Slope[lo : hi+1]
		defl := d.Deflection[lo : hi+1]

		cumTrapz(slope, xs, curvature[lo:hi+1], 0)
		cumTrapz(defl, xs, slope, 0)

		end := defl[len(defl)-1]
		addRamp(defl, -end)
		floats.AddConst(-end/(xs[len(xs)-1]-xs[0]), slope)
	}

	return d
}
