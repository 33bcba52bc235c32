// Package report writes analysis results to spreadsheets and PDF
// calculation sheets.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexiusacademia/cbeam/internal/analysis"
	"github.com/alexiusacademia/cbeam/internal/load"
	"github.com/alexiusacademia/cbeam/internal/units"
)

// Report is a solved beam with the metadata printed on every output
type Report struct {
	RunID       string
	Title       string
	Description string
	Created     time.Time
	Beam        *units.Beam
}

// New creates a report stamped with a fresh run id
func New(title, description string, b *units.Beam) *Report {
	return &Report{
		RunID:       uuid.New().String(),
		Title:       title,
		Description: description,
		Created:     time.Now(),
		Beam:        b,
	}
}

// SpanRow is one line of the span table, in SI units
type SpanRow struct {
	Index     int
	Start     float64 // m
	End       float64 // m
	Load      float64 // N
	MaxMoment analysis.SpanExtreme
	MaxShear  analysis.SpanExtreme
	MaxDefl   analysis.SpanExtreme
	HasDefl   bool
}

// Spans joins the per-span maxima of the beam
func (r *Report) Spans() []SpanRow {
	details := r.Beam.Analysis().SpanReactions()
	moments := r.Beam.MaxMoments()
	shears := r.Beam.MaxShears()
	defl, derr := r.Beam.MaxDeflections()

	rows := make([]SpanRow, len(moments))
	for i, m := range moments {
		rows[i] = SpanRow{
			Index:     m.Index,
			Start:     m.Start,
			End:       m.End,
			MaxMoment: m,
		}
		if m.Index < len(details) {
			rows[i].Load = details[m.Index].TotalLoad
		}
		if i < len(shears) {
			rows[i].MaxShear = shears[i]
		}
		if derr == nil && i < len(defl) {
			rows[i].MaxDefl = defl[i]
			rows[i].HasDefl = true
		}
	}
	return rows
}

// Inputs lists the beam input as label/value pairs
func (r *Report) Inputs() [][2]string {
	in := r.Beam.Input()
	cfg := r.Beam.Analysis().Config()

	out := [][2]string{
		{"Supports (m)", joinFloats(r.Beam.Supports())},
	}
	for i, l := range in.Loads {
		out = append(out, [2]string{fmt.Sprintf("Load %d", i+1), describeLoad(l)})
	}
	out = append(out,
		[2]string{"Elastic modulus (N/mm2)", fmt.Sprintf("%.0f", cfg.ElasticModulus)},
		[2]string{"Inertia (cm4)", fmt.Sprintf("%g", in.Inertia)},
		[2]string{"Sample points", fmt.Sprintf("%d", cfg.SamplePoints)},
		[2]string{"Total load (N)", fmt.Sprintf("%.2f", r.Beam.TotalLoad())},
	)
	return out
}

func describeLoad(l load.Load) string {
	switch v := l.(type) {
	case load.Uniform:
		return fmt.Sprintf("uniform %g N/m from %g m to %g m", v.Magnitude, v.Start, v.End)
	case load.Triangular:
		if v.Rising() {
			return fmt.Sprintf("triangular 0 to %g N/m from %g m to %g m", v.Peak(), v.Start, v.End)
		}
		return fmt.Sprintf("triangular %g to 0 N/m from %g m to %g m", v.Peak(), v.Start, v.End)
	default:
		return fmt.Sprint(l)
	}
}

func joinFloats(v []float64) string {
	s := ""
	for i, x := range v {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%g", x)
	}
	return s
}
