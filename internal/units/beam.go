package units

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/cbeam/internal/analysis"
	"github.com/alexiusacademia/cbeam/internal/load"
)

// Beam runs an analysis in N-mm and reports results in SI:
// positions in m, loads in N/m, shear and reactions in N, moments in N·m,
// deflection in mm and slope in rad.
type Beam struct {
	in       Input
	supports []float64 // sorted, m
	a        *analysis.Analysis
}

// NewBeam converts in to internal units and solves it
func NewBeam(in Input, opts ...analysis.Option) (*Beam, error) {
	loads := make([]load.Load, len(in.Loads))
	for i, l := range in.Loads {
		c, err := ToInternal(l)
		if err != nil {
			return nil, fmt.Errorf("load %d: %w", i+1, err)
		}
		loads[i] = c
	}

	supports := make([]float64, len(in.Supports))
	for i, s := range in.Supports {
		supports[i] = s * MillimetresPerMetre
	}

	a, err := analysis.New(loads, supports, in.Config(), opts...)
	if err != nil {
		return nil, err
	}

	sorted := append([]float64(nil), in.Supports...)
	sort.Float64s(sorted)

	return &Beam{in: in, supports: sorted, a: a}, nil
}

// Analysis returns the underlying analysis in internal units
func (b *Beam) Analysis() *analysis.Analysis {
	return b.a
}

// Input returns the beam definition as given
func (b *Beam) Input() Input {
	return b.in
}

// Supports returns the sorted support positions in m
func (b *Beam) Supports() []float64 {
	return append([]float64(nil), b.supports...)
}

// SupportMoments maps support position (m) to moment (N·m)
func (b *Beam) SupportMoments() map[float64]float64 {
	out := make(map[float64]float64, len(b.supports))
	for i, s := range b.a.SupportResults() {
		out[b.supports[i]] = s.Moment / NmmPerNm
	}
	return out
}

// Reactions maps support position (m) to reaction (N)
func (b *Beam) Reactions() map[float64]float64 {
	out := make(map[float64]float64, len(b.supports))
	for i, s := range b.a.SupportResults() {
		out[b.supports[i]] = s.Reaction
	}
	return out
}

// SupportResults returns moment (N·m) and reaction (N) per support in order
func (b *Beam) SupportResults() []analysis.Support {
	res := b.a.SupportResults()
	for i := range res {
		res[i].Position = b.supports[i]
		res[i].Moment /= NmmPerNm
	}
	return res
}

// TotalLoad returns the applied load in N
func (b *Beam) TotalLoad() float64 {
	return b.a.TotalLoad()
}

// Positions returns the sample grid in m
func (b *Beam) Positions() []float64 {
	return scale(b.a.Positions(), 1/MillimetresPerMetre)
}

// LoadIntensity returns the total load intensity on the grid in N/m
func (b *Beam) LoadIntensity() []float64 {
	return scale(b.a.LoadIntensity(), MillimetresPerMetre)
}

// Shear returns the shear on the grid in N
func (b *Beam) Shear() []float64 {
	return b.a.Shear()
}

// Moment returns the bending moment on the grid in N·m
func (b *Beam) Moment() []float64 {
	return scale(b.a.Moment(), 1/NmmPerNm)
}

// Deflection returns the deflection on the grid in mm
func (b *Beam) Deflection() ([]float64, error) {
	return b.a.Deflection()
}

// Slope returns the rotation on the grid in rad
func (b *Beam) Slope() ([]float64, error) {
	return b.a.Slope()
}

// HasStiffness reports whether deflection results are available
func (b *Beam) HasStiffness() bool {
	return b.a.HasStiffness()
}

// MaxMoments returns the per-span moment extremes in N·m at positions in m
func (b *Beam) MaxMoments() []analysis.SpanExtreme {
	return b.extremes(b.a.MaxMoments(), 1/NmmPerNm)
}

// MaxShears returns the per-span shear extremes in N
func (b *Beam) MaxShears() []analysis.SpanExtreme {
	return b.extremes(b.a.MaxShears(), 1)
}

// MaxDeflections returns the per-span deflection extremes in mm
func (b *Beam) MaxDeflections() ([]analysis.SpanExtreme, error) {
	d, err := b.a.MaxDeflections()
	if err != nil {
		return nil, err
	}
	return b.extremes(d, 1), nil
}

// ValueAt evaluates every field at x metres
func (b *Beam) ValueAt(x float64) analysis.Point {
	p := b.a.ValueAt(x * MillimetresPerMetre)
	p.Position = x
	p.Load *= MillimetresPerMetre
	p.Moment /= NmmPerNm
	return p
}

// Results collects the support values and span maxima in SI
func (b *Beam) Results() *analysis.Result {
	r := &analysis.Result{
		Supports:   b.SupportResults(),
		TotalLoad:  b.TotalLoad(),
		MaxMoments: b.MaxMoments(),
		MaxShears:  b.MaxShears(),
	}
	if d, err := b.MaxDeflections(); err == nil {
		r.MaxDeflections = d
	}
	return r
}

func (b *Beam) extremes(in []analysis.SpanExtreme, k float64) []analysis.SpanExtreme {
	out := make([]analysis.SpanExtreme, len(in))
	for i, e := range in {
		out[i] = analysis.SpanExtreme{
			Index:    e.Index,
			Start:    b.supports[e.Index],
			End:      b.supports[e.Index+1],
			Value:    e.Value * k,
			Position: e.Position / MillimetresPerMetre,
		}
	}
	return out
}

func scale(v []float64, k float64) []float64 {
	floats.Scale(k, v)
	return v
}
