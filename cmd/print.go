package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/cbeam/internal/analysis"
	"github.com/alexiusacademia/cbeam/internal/diagram"
	"github.com/alexiusacademia/cbeam/internal/report"
)

const (
	heavyRule = "═══════════════════════════════════════════════════════════════"
	lightRule = "───────────────────────────────────────────────────────────────"
)

func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintf(w, "          %s\n", title)
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w)
}

func printSection(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, lightRule)
}

// printAnalysis writes the input, support results and span maxima of r
func printAnalysis(w io.Writer, r *report.Report) {
	printHeader(w, "CONTINUOUS BEAM ANALYSIS (THREE-MOMENT)")
	fmt.Fprintf(w, "BEAM: %s\n", r.Title)
	if r.Description != "" {
		fmt.Fprintf(w, "  %s\n", r.Description)
	}
	fmt.Fprintf(w, "RUN:  %s\n\n", r.RunID)

	printSection(w, "INPUT:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, kv := range r.Inputs() {
		fmt.Fprintf(tw, "  %s:\t%s\n", kv[0], kv[1])
	}
	tw.Flush()
	fmt.Fprintln(w)

	printSupports(w, r.Beam.SupportResults())
	printSpans(w, r.Spans())

	var sum float64
	for _, s := range r.Beam.SupportResults() {
		sum += s.Reaction
	}
	printSection(w, "EQUILIBRIUM:")
	fmt.Fprintf(w, "  Sum of reactions:  %.2f N\n", sum)
	fmt.Fprintf(w, "  Total load:        %.2f N\n\n", r.Beam.TotalLoad())

	res := r.Beam.Results()
	var lines []string
	if m, ok := analysis.Governing(res.MaxMoments); ok {
		lines = append(lines, fmt.Sprintf("Max moment     = %.2f N·m at x = %.3f m", m.Value, m.Position))
	}
	if v, ok := analysis.Governing(res.MaxShears); ok {
		lines = append(lines, fmt.Sprintf("Max shear      = %.2f N at x = %.3f m", v.Value, v.Position))
	}
	if d, ok := analysis.Governing(res.MaxDeflections); ok {
		lines = append(lines, fmt.Sprintf("Max deflection = %.3f mm at x = %.3f m", d.Value, d.Position))
	}
	fmt.Fprint(w, diagram.DrawSummaryBox("GOVERNING VALUES", lines))
	fmt.Fprintln(w)
}

func printSupports(w io.Writer, supports []analysis.Support) {
	printSection(w, "SUPPORT MOMENTS AND REACTIONS:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  #\tx (m)\tMoment (N·m)\tReaction (N)\n")
	fmt.Fprintf(tw, "  ─\t─────\t────────────\t────────────\n")
	for i, s := range supports {
		fmt.Fprintf(tw, "  %d\t%.3f\t%.2f\t%.2f\n", i+1, s.Position, s.Moment, s.Reaction)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printSpans(w io.Writer, spans []report.SpanRow) {
	printSection(w, "SPAN MAXIMA:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Span\tRange (m)\tMoment (N·m)\tShear (N)\tDeflection (mm)\n")
	fmt.Fprintf(tw, "  ────\t─────────\t────────────\t─────────\t───────────────\n")
	for _, s := range spans {
		defl := "-"
		if s.HasDefl {
			defl = fmt.Sprintf("%.3f @ %.3f", s.MaxDefl.Value, s.MaxDefl.Position)
		}
		fmt.Fprintf(tw, "  %d\t%.2f - %.2f\t%.2f @ %.3f\t%.2f @ %.3f\t%s\n",
			s.Index+1, s.Start, s.End,
			s.MaxMoment.Value, s.MaxMoment.Position,
			s.MaxShear.Value, s.MaxShear.Position,
			defl)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printPoint(w io.Writer, p analysis.Point) {
	printSection(w, fmt.Sprintf("VALUES AT x = %.3f m:", p.Position))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Load:\t%.2f N/m\n", p.Load)
	fmt.Fprintf(tw, "  Shear:\t%.2f N\n", p.Shear)
	fmt.Fprintf(tw, "  Moment:\t%.2f N·m\n", p.Moment)
	if p.HasDeflection {
		fmt.Fprintf(tw, "  Slope:\t%.6f rad\n", p.Slope)
		fmt.Fprintf(tw, "  Deflection:\t%.3f mm\n", p.Deflection)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// printSystem writes the three-moment equations in the internal N-mm units
func printSystem(w io.Writer, a *analysis.Analysis) {
	e := a.Equations()
	printSection(w, "THREE-MOMENT SYSTEM (N, mm):")
	if e.Coefficients == nil {
		fmt.Fprintln(w, "  single span, no unknown support moments")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "  Interior supports: %v\n\n", e.Interior)
	fmt.Fprintf(w, "  A = %v\n\n", mat.Formatted(e.Coefficients, mat.Prefix("      "), mat.Squeeze()))
	fmt.Fprintf(w, "  b = %v\n\n", mat.Formatted(e.Loads, mat.Prefix("      "), mat.Squeeze()))
}
