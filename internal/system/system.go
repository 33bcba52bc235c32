package system

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexiusacademia/cbeam/internal/load"
)

// ErrTooFewSupports is returned when a beam has fewer than two supports.
var ErrTooFewSupports = errors.New("system: at least two supports are required")

// Span is the stretch of beam between two consecutive supports
type Span struct {
	Start float64 // position
	End   float64 // position
}

// Length returns End - Start
func (s Span) Length() float64 {
	return s.End - s.Start
}

// Side tells which half of a subsystem an overlap belongs to
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Overlap records the part of one load lying on one span of a subsystem
// and the load component it produces.
type Overlap struct {
	Load      int     // index into the analysed load list
	Side      Side    // span of the subsystem
	Start     float64 // absolute position
	End       float64 // absolute position
	Component float64 // weighted integral against the span influence function
}

// Components holds the summed load components of one subsystem
type Components struct {
	Left     float64
	Right    float64
	Overlaps []Overlap
}

// Total returns Left + Right
func (c Components) Total() float64 {
	return c.Left + c.Right
}

// Subsystem is a pair of adjacent spans sharing one interior support
type Subsystem struct {
	Index      int
	Left       Span
	Right      Span
	Components Components
}

// Support returns the position of the interior support the subsystem is built around
func (s Subsystem) Support() float64 {
	return s.Left.End
}

// System is the decomposed beam: sorted supports, spans and subsystems with
// their load components.
type System struct {
	Supports   []float64
	Spans      []Span
	Subsystems []Subsystem
}

// SingleSpan reports whether the beam has exactly two supports
func (s *System) SingleSpan() bool {
	return len(s.Supports) == 2
}

// Build sorts the supports, derives spans and pairs them into subsystems,
// then integrates every load against the influence functions of the spans it
// overlaps. A single-span beam has no subsystems.
func Build(loads []load.Load, supports []float64) (*System, error) {
	if len(supports) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSupports, len(supports))
	}

	sorted := make([]float64, len(supports))
	copy(sorted, supports)
	sort.Float64s(sorted)

	sys := &System{
		Supports: sorted,
		Spans:    make([]Span, len(sorted)-1),
	}
	for i := range sys.Spans {
		sys.Spans[i] = Span{Start: sorted[i], End: sorted[i+1]}
	}

	if sys.SingleSpan() {
		return sys, nil
	}

	sys.Subsystems = make([]Subsystem, len(sys.Spans)-1)
	for i := range sys.Subsystems {
		sub := Subsystem{Index: i, Left: sys.Spans[i], Right: sys.Spans[i+1]}
		sub.Components = components(loads, sub.Left, sub.Right)
		sys.Subsystems[i] = sub
	}

	return sys, nil
}

func components(loads []load.Load, left, right Span) Components {
	var c Components
	for i, l := range loads {
		start, end := l.Range()

		if lo, hi, ok := load.Overlap(left.Start, left.End, start, end); ok {
			v := LeftComponent(l, left, lo, hi)
			c.Left += v
			c.Overlaps = append(c.Overlaps, Overlap{Load: i, Side: Left, Start: lo, End: hi, Component: v})
		}
		if lo, hi, ok := load.Overlap(right.Start, right.End, start, end); ok {
			v := RightComponent(l, right, lo, hi)
			c.Right += v
			c.Overlaps = append(c.Overlaps, Overlap{Load: i, Side: Right, Start: lo, End: hi, Component: v})
		}
	}
	return c
}

// LeftComponent integrates w(ξ+s)·ξ/L·(L²−ξ²) over the span-relative bounds
// of [from, to], where s is the span start.
func LeftComponent(l load.Load, span Span, from, to float64) float64 {
	length := span.Length()
	if length <= 0 {
		return 0
	}
	f := func(xi float64) float64 {
		return l.Intensity(xi+span.Start) * xi / length * (length*length - xi*xi)
	}
	return integrate(f, from-span.Start, to-span.Start)
}

// RightComponent integrates w(ξ+s)·(L−ξ)/L·(L²−(L−ξ)²) over the
// span-relative bounds of [from, to].
func RightComponent(l load.Load, span Span, from, to float64) float64 {
	length := span.Length()
	if length <= 0 {
		return 0
	}
	f := func(xi float64) float64 {
		r := length - xi
		return l.Intensity(xi+span.Start) * r / length * (length*length - r*r)
	}
	return integrate(f, from-span.Start, to-span.Start)
}
