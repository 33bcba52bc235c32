package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	// canvas formats for NewFormattedCanvas
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

var (
	spanShade   = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	supportLine = color.Gray{Y: 128}

	palette = []color.RGBA{
		{R: 0, G: 0, B: 139, A: 255},   // shear
		{R: 178, G: 34, B: 34, A: 255}, // moment
		{R: 0, G: 100, B: 0, A: 255},   // deflection
	}
)

// Export writes the fields of d stacked in one figure. The format follows the
// extension (.png, .svg, .pdf, .jpg, .tif, .eps); anything else is saved as
// PNG with ".png" appended. It returns the path written.
func Export(d Data, filename string) (string, error) {
	if len(d.Fields) == 0 {
		return "", errors.New("diagram: nothing to draw")
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "png", "svg", "pdf", "jpg", "jpeg", "tif", "tiff", "eps":
	default:
		filename += ".png"
		ext = "png"
	}

	plots := make([][]*plot.Plot, len(d.Fields))
	for i, s := range d.Fields {
		p, err := fieldPlot(s, d.Supports, d.Unit, palette[i%len(palette)])
		if err != nil {
			return "", fmt.Errorf("diagram: %s: %w", s.Name, err)
		}
		if i == 0 && d.Title != "" {
			p.Title.Text = d.Title
		}
		plots[i] = []*plot.Plot{p}
	}

	width := 8 * vg.Inch
	height := vg.Length(len(d.Fields)) * 3 * vg.Inch

	c, err := draw.NewFormattedCanvas(width, height, ext)
	if err != nil {
		return "", err
	}
	canvases := plot.Align(plots, draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadY:      vg.Points(12),
		PadTop:    vg.Points(6),
		PadBottom: vg.Points(6),
		PadLeft:   vg.Points(6),
		PadRight:  vg.Points(12),
	}, draw.New(c))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return "", err
	}
	return filename, f.Close()
}

func fieldPlot(s Series, supports []float64, unit string, lineColor color.Color) (*plot.Plot, error) {
	if len(s.X) == 0 || len(s.X) != len(s.Y) {
		return nil, errors.New("empty or mismatched series")
	}

	p := plot.New()
	p.Y.Label.Text = s.Name
	if s.Unit != "" {
		p.Y.Label.Text += " (" + s.Unit + ")"
	}
	p.X.Label.Text = "Position"
	if unit != "" {
		p.X.Label.Text += " (" + unit + ")"
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range s.Y {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	if pad := (hi - lo) * 0.1; pad > 0 {
		lo -= pad
		hi += pad
	} else {
		lo, hi = -1, 1
	}

	// Alternate span shading
	for i := 0; i+1 < len(supports); i += 2 {
		shade, err := plotter.NewPolygon(plotter.XYs{
			{X: supports[i], Y: lo},
			{X: supports[i+1], Y: lo},
			{X: supports[i+1], Y: hi},
			{X: supports[i], Y: hi},
		})
		if err != nil {
			return nil, err
		}
		shade.Color = spanShade
		shade.LineStyle.Width = 0
		p.Add(shade)
	}

	curve := make(plotter.XYs, len(s.X))
	for i := range s.X {
		curve[i] = plotter.XY{X: s.X[i], Y: s.Y[i]}
	}

	area := make(plotter.XYs, 0, len(curve)+2)
	area = append(area, curve...)
	area = append(area, plotter.XY{X: s.X[len(s.X)-1], Y: 0}, plotter.XY{X: s.X[0], Y: 0})
	fill, err := plotter.NewPolygon(area)
	if err != nil {
		return nil, err
	}
	r, g, b, _ := lineColor.RGBA()
	fill.Color = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 60}
	fill.LineStyle.Width = 0
	p.Add(fill)

	zero, err := plotter.NewLine(plotter.XYs{{X: s.X[0], Y: 0}, {X: s.X[len(s.X)-1], Y: 0}})
	if err != nil {
		return nil, err
	}
	zero.LineStyle.Width = vg.Points(1)
	zero.LineStyle.Color = color.Black
	p.Add(zero)

	for _, x := range supports {
		l, err := plotter.NewLine(plotter.XYs{{X: x, Y: lo}, {X: x, Y: hi}})
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = supportLine
		l.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(l)
	}

	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = lineColor
	p.Add(line)

	// Mark the extremes
	mn, mx := extremes(s.X, s.Y)
	marks, err := plotter.NewScatter(plotter.XYs{
		{X: s.X[mx], Y: s.Y[mx]},
		{X: s.X[mn], Y: s.Y[mn]},
	})
	if err != nil {
		return nil, err
	}
	marks.GlyphStyle.Color = lineColor
	marks.GlyphStyle.Radius = vg.Points(3)
	marks.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(marks)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: []plotter.XY{
			{X: s.X[mx], Y: s.Y[mx]},
			{X: s.X[mn], Y: s.Y[mn]},
		},
		Labels: []string{
			fmt.Sprintf("%.4g", s.Y[mx]),
			fmt.Sprintf("%.4g", s.Y[mn]),
		},
	})
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	p.X.Min, p.X.Max = s.X[0], s.X[len(s.X)-1]
	p.Y.Min, p.Y.Max = lo, hi
	return p, nil
}
