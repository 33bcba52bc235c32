package report

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
)

// SavePDF writes the calculation sheet to path
func (r *Report) SavePDF(path string) error {
	return r.pdf().OutputFileAndClose(path)
}

// WritePDF writes the calculation sheet to w
func (r *Report) WritePDF(w io.Writer) error {
	return r.pdf().Output(w)
}

func (r *Report) pdf() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.Title, false)
	pdf.SetCreator("cbeam", false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(120, 6, fmt.Sprintf("Run %s", r.RunID), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	title := r.Title
	if title == "" {
		title = "Continuous Beam Analysis"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", r.Created.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	if r.Description != "" {
		pdf.MultiCell(0, 5, r.Description, "", "L", false)
	}
	pdf.Ln(4)

	section(pdf, "Input")
	for _, kv := range r.Inputs() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(55, 6, kv[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, kv[1], "", "L", false)
	}
	pdf.Ln(4)

	section(pdf, "Support moments and reactions")
	table(pdf, []string{"Support", "x (m)", "Moment (N-m)", "Reaction (N)"}, []float64{25, 40, 55, 55})
	for i, s := range r.Beam.SupportResults() {
		row(pdf, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.3f", s.Position),
			fmt.Sprintf("%.2f", s.Moment),
			fmt.Sprintf("%.2f", s.Reaction),
		}, []float64{25, 40, 55, 55})
	}
	pdf.Ln(4)

	section(pdf, "Span maxima")
	widths := []float64{15, 30, 40, 40, 45}
	table(pdf, []string{"Span", "Range (m)", "Moment (N-m)", "Shear (N)", "Deflection (mm)"}, widths)
	for _, s := range r.Spans() {
		defl := "-"
		if s.HasDefl {
			defl = fmt.Sprintf("%.3f @ %.3f", s.MaxDefl.Value, s.MaxDefl.Position)
		}
		row(pdf, []string{
			fmt.Sprintf("%d", s.Index+1),
			fmt.Sprintf("%.2f - %.2f", s.Start, s.End),
			fmt.Sprintf("%.1f @ %.3f", s.MaxMoment.Value, s.MaxMoment.Position),
			fmt.Sprintf("%.1f @ %.3f", s.MaxShear.Value, s.MaxShear.Position),
			defl,
		}, widths)
	}

	return pdf
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func table(pdf *gofpdf.Fpdf, header []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func row(pdf *gofpdf.Fpdf, cells []string, widths []float64) {
	pdf.SetFont("Helvetica", "", 9)
	for i, c := range cells {
		pdf.CellFormat(widths[i], 6, c, "1", 0, "R", false, 0, "")
	}
	pdf.Ln(-1)
}
