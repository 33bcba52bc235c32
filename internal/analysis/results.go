package analysis

import (
	"math"

	"github.com/alexiusacademia/cbeam/internal/field"
)

// SpanExtreme is the largest-magnitude value of a field within one span
type SpanExtreme struct {
	Index    int     // span number, from 0
	Start    float64 // span start position
	End      float64 // span end position
	Value    float64 // signed value with the largest magnitude
	Position float64 // where it occurs
}

// Point is every field evaluated at one position
type Point struct {
	Position      float64
	Load          float64
	Shear         float64
	Moment        float64
	Slope         float64 // zero unless HasDeflection
	Deflection    float64 // zero unless HasDeflection
	HasDeflection bool
}

// MaxMoments scans each span of the moment field for its largest magnitude
func (a *Analysis) MaxMoments() []SpanExtreme {
	f := a.ensureFields()
	return a.extremes(f.X, f.Moment)
}

// MaxShears scans each span of the shear field for its largest magnitude
func (a *Analysis) MaxShears() []SpanExtreme {
	f := a.ensureFields()
	return a.extremes(f.X, f.Shear)
}

// MaxDeflections scans each span of the deflection field for its largest magnitude
func (a *Analysis) MaxDeflections() ([]SpanExtreme, error) {
	d, err := a.ensureDeflection()
	if err != nil {
		return nil, err
	}
	return a.extremes(a.fields.X, d.Deflection), nil
}

func (a *Analysis) extremes(x, values []float64) []SpanExtreme {
	out := make([]SpanExtreme, 0, len(a.sys.Spans))
	for i, span := range a.sys.Spans {
		lo, hi, ok := field.SpanRange(x, span.Start, span.End)
		if !ok {
			continue
		}
		j := field.MaxAbs(values, lo, hi)
		out = append(out, SpanExtreme{
			Index:    i,
			Start:    span.Start,
			End:      span.End,
			Value:    values[j],
			Position: x[j],
		})
	}
	return out
}

// ValueAt interpolates every field at x. Positions beyond the beam ends are
// clamped to the end values.
func (a *Analysis) ValueAt(x float64) Point {
	f := a.ensureFields()
	p := Point{
		Position: x,
		Load:     field.Interpolate(f.X, f.Load, x),
		Shear:    field.Interpolate(f.X, f.Shear, x),
		Moment:   field.Interpolate(f.X, f.Moment, x),
	}
	if d, err := a.ensureDeflection(); err == nil {
		p.Slope = field.Interpolate(f.X, d.Slope, x)
		p.Deflection = field.Interpolate(f.X, d.Deflection, x)
		p.HasDeflection = true
	}
	return p
}

// Result is a snapshot of everything an analysis produces apart from the
// sampled fields.
type Result struct {
	Supports       []Support
	TotalLoad      float64
	MaxMoments     []SpanExtreme
	MaxShears      []SpanExtreme
	MaxDeflections []SpanExtreme // nil without stiffness
}

// Results collects the support values and span maxima
func (a *Analysis) Results() *Result {
	r := &Result{
		Supports:   a.SupportResults(),
		TotalLoad:  a.TotalLoad(),
		MaxMoments: a.MaxMoments(),
		MaxShears:  a.MaxShears(),
	}
	if d, err := a.MaxDeflections(); err == nil {
		r.MaxDeflections = d
	}
	return r
}

// Governing returns the extreme with the largest magnitude, or false when empty
func Governing(extremes []SpanExtreme) (SpanExtreme, bool) {
	if len(extremes) == 0 {
		return SpanExtreme{}, false
	}
	best := extremes[0]
	for _, e := range extremes[1:] {
		if math.Abs(e.Value) > math.Abs(best.Value) {
			best = e
		}
	}
	return best, true
}
