package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/cbeam/internal/field"
	"github.com/alexiusacademia/cbeam/internal/units"
)

// Series is one sampled field along the beam
type Series struct {
	Name string    // e.g. "Shear"
	Unit string    // unit of Y
	X    []float64 // positions
	Y    []float64
}

// Data holds everything a beam diagram shows
type Data struct {
	Title    string
	Unit     string // unit of the positions
	Supports []float64
	Fields   []Series
}

// FromBeam collects the shear, moment and, when available, deflection of b
func FromBeam(title string, b *units.Beam) Data {
	x := b.Positions()
	d := Data{
		Title:    title,
		Unit:     "m",
		Supports: b.Supports(),
		Fields: []Series{
			{Name: "Shear", Unit: "N", X: x, Y: b.Shear()},
			{Name: "Moment", Unit: "N·m", X: x, Y: b.Moment()},
		},
	}
	if defl, err := b.Deflection(); err == nil {
		d.Fields = append(d.Fields, Series{Name: "Deflection", Unit: "mm", X: x, Y: defl})
	}
	return d
}

// Default ASCII chart size in characters
const (
	ChartWidth  = 60
	ChartHeight = 11
)

// DrawASCIIField renders s as a line chart resampled to width columns, with
// zero always on the axis and the supports marked under the chart.
func DrawASCIIField(s Series, supports []float64, width, height int) string {
	if width < 10 {
		width = ChartWidth
	}
	if height < 3 {
		height = ChartHeight
	}
	if len(s.X) == 0 {
		return ""
	}

	x0, x1 := s.X[0], s.X[len(s.X)-1]
	column := func(x float64) int {
		if x1 <= x0 {
			return 0
		}
		return int(math.Round((x - x0) / (x1 - x0) * float64(width-1)))
	}

	values := make([]float64, width)
	for c := range values {
		values[c] = field.Interpolate(s.X, s.Y, x0+(x1-x0)*float64(c)/float64(width-1))
	}

	// Resampling can step over the extremes, so they are placed on their
	// nearest column and pinned as the axis bounds.
	lo, hi := extremes(s.X, s.Y)
	values[column(s.X[lo])] = s.Y[lo]
	values[column(s.X[hi])] = s.Y[hi]

	lower, upper := math.Min(s.Y[lo], 0), math.Max(s.Y[hi], 0)
	if lower == upper {
		lower, upper = -1, 1
	}
	chart := asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Precision(chartPrecision(math.Max(-lower, upper))),
		asciigraph.LowerBound(lower),
		asciigraph.UpperBound(upper),
	)

	var sb strings.Builder
	title := strings.ToUpper(s.Name)
	if s.Unit != "" {
		title += " (" + s.Unit + ")"
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", title))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", utf8.RuneCountInString(title))))

	lines := strings.Split(chart, "\n")
	for _, line := range lines {
		sb.WriteString("  " + line + "\n")
	}

	// The first sample sits on the axis column
	axis := strings.IndexFunc(lines[0], func(r rune) bool { return r == '┤' || r == '┼' })
	if axis >= 0 {
		axis = utf8.RuneCountInString(lines[0][:axis])
	}
	sb.WriteString(strings.Repeat(" ", 2+max(axis, 0)))
	sb.WriteString(strings.TrimRight(supportMarkers(supports, column, width), " "))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  max %+.4g at %.3f, min %+.4g at %.3f\n", s.Y[hi], s.X[hi], s.Y[lo], s.X[lo]))
	return sb.String()
}

// chartPrecision keeps axis labels short for large values
func chartPrecision(peak float64) uint {
	switch {
	case peak >= 1000:
		return 0
	case peak >= 10:
		return 1
	default:
		return 2
	}
}

func supportMarkers(supports []float64, column func(float64) int, width int) string {
	row := []rune(strings.Repeat(" ", width))
	for _, s := range supports {
		if c := column(s); c >= 0 && c < width {
			row[c] = '▲'
		}
	}
	return string(row)
}

func extremes(x, y []float64) (lo, hi int) {
	for i := range y {
		if y[i] < y[lo] {
			lo = i
		}
		if y[i] > y[hi] {
			hi = i
		}
	}
	return lo, hi
}

// DrawASCIIBeam draws every field of d one under the other
func DrawASCIIBeam(d Data) string {
	var sb strings.Builder
	if d.Title != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", d.Title))
	}
	for _, s := range d.Fields {
		sb.WriteString(DrawASCIIField(s, d.Supports, ChartWidth, ChartHeight))
	}
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	pad := func(s string) string {
		return s + strings.Repeat(" ", maxLen-2-utf8.RuneCountInString(s))
	}

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s║\n", pad(title)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s║\n", pad(line)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
