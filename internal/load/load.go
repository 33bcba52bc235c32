package load

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLoad is returned for loads with an empty range or non-finite magnitudes.
var ErrInvalidLoad = errors.New("load: invalid load")

// Kind identifies the shape of a distributed load
type Kind string

const (
	KindUniform    Kind = "uniform"
	KindTriangular Kind = "triangular"
)

// Load is a distributed load acting downward over a range of the beam.
// Positive intensity points down.
type Load interface {
	// Kind reports the load shape
	Kind() Kind

	// Range returns the declared start and end of the load
	Range() (start, end float64)

	// Intensity returns the load per unit length at the absolute position x.
	// It is zero outside the declared range.
	Intensity(x float64) float64

	// Resultant returns the total force of the portion of the load lying in
	// [from, to] and the position of its centroid.
	Resultant(from, to float64) (force, centroid float64)

	// Scale returns a copy with every magnitude multiplied by k
	Scale(k float64) Load
}

// Uniform is a constant-intensity load
type Uniform struct {
	Magnitude float64 // force per length
	Start     float64 // position
	End       float64 // position
}

// NewUniform creates a validated uniform load
func NewUniform(magnitude, start, end float64) (Uniform, error) {
	u := Uniform{Magnitude: magnitude, Start: start, End: end}
	if err := Validate(u); err != nil {
		return Uniform{}, err
	}
	return u, nil
}

func (u Uniform) Kind() Kind { return KindUniform }

func (u Uniform) Range() (float64, float64) { return u.Start, u.End }

func (u Uniform) Intensity(x float64) float64 {
	if x < u.Start || x > u.End {
		return 0
	}
	return u.Magnitude
}

func (u Uniform) Resultant(from, to float64) (float64, float64) {
	lo, hi, ok := Overlap(u.Start, u.End, from, to)
	if !ok {
		return 0, (from + to) / 2
	}
	return u.Magnitude * (hi - lo), (lo + hi) / 2
}

func (u Uniform) Scale(k float64) Load {
	u.Magnitude *= k
	return u
}

func (u Uniform) String() string {
	return fmt.Sprintf("uniform %g on [%g, %g]", u.Magnitude, u.Start, u.End)
}

// Triangular is a ramp from zero to its peak magnitude. When MagnitudeEnd is
// the larger of the two in size the ramp rises from Start to MagnitudeEnd at
// End; otherwise it falls from MagnitudeStart at Start to zero at End. The
// smaller magnitude only orients the ramp. Magnitudes must not change sign.
type Triangular struct {
	MagnitudeStart float64 // force per length at Start
	MagnitudeEnd   float64 // force per length at End
	Start          float64 // position
	End            float64 // position
}

// NewTriangular creates a validated linearly varying load
func NewTriangular(magnitudeStart, magnitudeEnd, start, end float64) (Triangular, error) {
	t := Triangular{MagnitudeStart: magnitudeStart, MagnitudeEnd: magnitudeEnd, Start: start, End: end}
	if err := Validate(t); err != nil {
		return Triangular{}, err
	}
	return t, nil
}

func (t Triangular) Kind() Kind { return KindTriangular }

func (t Triangular) Range() (float64, float64) { return t.Start, t.End }

// Rising reports whether the ramp peaks at End
func (t Triangular) Rising() bool {
	return math.Abs(t.MagnitudeStart) < math.Abs(t.MagnitudeEnd)
}

// Peak returns the magnitude at the high end of the ramp
func (t Triangular) Peak() float64 {
	if t.Rising() {
		return t.MagnitudeEnd
	}
	return t.MagnitudeStart
}

func (t Triangular) Intensity(x float64) float64 {
	if x < t.Start || x > t.End {
		return 0
	}
	length := t.End - t.Start
	if t.Rising() {
		return t.MagnitudeEnd * (x - t.Start) / length
	}
	return t.MagnitudeStart * (t.End - x) / length
}

// Resultant treats the clipped portion as a trapezoid with the ramp's
// intensities at both overlap boundaries.
func (t Triangular) Resultant(from, to float64) (float64, float64) {
	lo, hi, ok := Overlap(t.Start, t.End, from, to)
	if !ok {
		return 0, (from + to) / 2
	}
	wa, wb := t.Intensity(lo), t.Intensity(hi)
	length := hi - lo
	force := (wa + wb) / 2 * length

	sum := wa + wb
	if math.Abs(sum) < 1e-12 || math.Abs(wa-wb) < 1e-12*math.Abs(sum) {
		return force, (lo + hi) / 2
	}
	return force, lo + length*(wa+2*wb)/(3*sum)
}

func (t Triangular) Scale(k float64) Load {
	t.MagnitudeStart *= k
	t.MagnitudeEnd *= k
	return t
}

func (t Triangular) String() string {
	return fmt.Sprintf("triangular %g→%g on [%g, %g]", t.MagnitudeStart, t.MagnitudeEnd, t.Start, t.End)
}

// Validate checks the invariants shared by every load shape
func Validate(l Load) error {
	if l == nil {
		return fmt.Errorf("%w: nil load", ErrInvalidLoad)
	}
	start, end := l.Range()
	if !finite(start) || !finite(end) {
		return fmt.Errorf("%w: range [%g, %g] is not finite", ErrInvalidLoad, start, end)
	}
	if start >= end {
		return fmt.Errorf("%w: start %g must be less than end %g", ErrInvalidLoad, start, end)
	}

	switch v := l.(type) {
	case Uniform:
		if !finite(v.Magnitude) {
			return fmt.Errorf("%w: magnitude %g is not finite", ErrInvalidLoad, v.Magnitude)
		}
	case Triangular:
		if !finite(v.MagnitudeStart) || !finite(v.MagnitudeEnd) {
			return fmt.Errorf("%w: magnitudes %g, %g are not finite", ErrInvalidLoad, v.MagnitudeStart, v.MagnitudeEnd)
		}
		if v.MagnitudeStart*v.MagnitudeEnd < 0 {
			return fmt.Errorf("%w: magnitudes %g and %g change sign", ErrInvalidLoad, v.MagnitudeStart, v.MagnitudeEnd)
		}
	}
	return nil
}

// Overlap returns the intersection of [a1, b1] and [a2, b2].
// Ranges that only touch at a point do not overlap.
func Overlap(a1, b1, a2, b2 float64) (lo, hi float64, ok bool) {
	lo = math.Max(math.Min(a1, b1), math.Min(a2, b2))
	hi = math.Min(math.Max(a1, b1), math.Max(a2, b2))
	if lo < hi {
		return lo, hi, true
	}
	return 0, 0, false
}

// Total returns the full resultant of a load over its declared range
func Total(l Load) float64 {
	start, end := l.Range()
	force, _ := l.Resultant(start, end)
	return force
}

// ScaleAll returns a copy of loads with every magnitude multiplied by k
func ScaleAll(loads []Load, k float64) []Load {
	out := make([]Load, len(loads))
	for i, l := range loads {
		out[i] = l.Scale(k)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
