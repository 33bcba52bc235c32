package field

import (
	"github.com/alexiusacademia/cbeam/internal/load"
)

// Fields are the sampled load, shear and moment curves of a beam
type Fields struct {
	X      []float64 // grid positions
	Load   []float64 // total intensity, down positive
	Shear  []float64 // up positive on the left face
	Moment []float64 // sagging positive
}

// Supports carries the solved support values the reconstruction is anchored to.
// All slices follow the order of Positions.
type Supports struct {
	Positions []float64
	Moments   []float64
	Reactions []float64
}

// Reconstruct samples the load, integrates it into shear with the reaction
// steps added, then integrates shear into moment one span at a time. Each span
// starts at the solved moment of its left support and is corrected by a
// linear ramp so that it ends exactly at the solved moment of its right support.
func Reconstruct(x []float64, loads []load.Load, s Supports) *Fields {
	n := len(x)
	f := &Fields{
		X:      x,
		Load:   make([]float64, n),
		Shear:  make([]float64, n),
		Moment: make([]float64, n),
	}

	for i, xi := range x {
		for _, l := range loads {
			f.Load[i] += l.Intensity(xi)
		}
	}

	negated := make([]float64, n)
	for i, w := range f.Load {
		negated[i] = -w
	}
	cumTrapz(f.Shear, x, negated, 0)
	for j, pos := range s.Positions {
		r := s.Reactions[j]
		for i := n - 1; i >= 0 && x[i] >= pos; i-- {
			f.Shear[i] += r
		}
	}

	for j := 0; j+1 < len(s.Positions); j++ {
		lo, hi, ok := SpanRange(x, s.Positions[j], s.Positions[j+1])
		if !ok {
			continue
		}
		m := f.Moment[lo : hi+1]
		cumTrapz(m, x[lo:hi+1], f.Shear[lo:hi+1], s.Moments[j])
		addRamp(m, s.Moments[j+1]-m[len(m)-1])
	}

	return f
}
