package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	SheetSummary   = "Summary"
	SheetReactions = "Reactions"
	SheetSpans     = "Spans"
	SheetFields    = "Fields"
)

// SaveXLSX writes the workbook to path
func (r *Report) SaveXLSX(path string) error {
	f, err := r.workbook()
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteXLSX writes the workbook to w
func (r *Report) WriteXLSX(w io.Writer) error {
	f, err := r.workbook()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func (r *Report) workbook() (*excelize.File, error) {
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetReactions, SheetSpans, SheetFields} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	steps := []func(*excelize.File, int) error{
		r.summarySheet,
		r.reactionsSheet,
		r.spansSheet,
		r.fieldsSheet,
	}
	for _, step := range steps {
		if err := step(f, bold); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) summarySheet(f *excelize.File, bold int) error {
	rows := [][]interface{}{
		{"Title", r.Title},
		{"Description", r.Description},
		{"Run ID", r.RunID},
		{"Created", r.Created.Format("2006-01-02 15:04:05")},
	}
	for _, kv := range r.Inputs() {
		rows = append(rows, []interface{}{kv[0], kv[1]})
	}
	if err := setRows(f, SheetSummary, rows); err != nil {
		return err
	}
	if err := f.SetColStyle(SheetSummary, "A", bold); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "A", "B", 28)
}

func (r *Report) reactionsSheet(f *excelize.File, bold int) error {
	rows := [][]interface{}{{"Position (m)", "Moment (N·m)", "Reaction (N)"}}
	for _, s := range r.Beam.SupportResults() {
		rows = append(rows, []interface{}{s.Position, s.Moment, s.Reaction})
	}
	if err := setRows(f, SheetReactions, rows); err != nil {
		return err
	}
	return f.SetRowStyle(SheetReactions, 1, 1, bold)
}

func (r *Report) spansSheet(f *excelize.File, bold int) error {
	rows := [][]interface{}{{
		"Span", "Start (m)", "End (m)", "Load (N)",
		"Max moment (N·m)", "at (m)",
		"Max shear (N)", "at (m)",
		"Max deflection (mm)", "at (m)",
	}}
	for _, s := range r.Spans() {
		row := []interface{}{
			s.Index + 1, s.Start, s.End, s.Load,
			s.MaxMoment.Value, s.MaxMoment.Position,
			s.MaxShear.Value, s.MaxShear.Position,
		}
		if s.HasDefl {
			row = append(row, s.MaxDefl.Value, s.MaxDefl.Position)
		}
		rows = append(rows, row)
	}
	if err := setRows(f, SheetSpans, rows); err != nil {
		return err
	}
	return f.SetRowStyle(SheetSpans, 1, 1, bold)
}

// fieldsSheet streams the sampled fields, one row per grid point
func (r *Report) fieldsSheet(f *excelize.File, bold int) error {
	sw, err := f.NewStreamWriter(SheetFields)
	if err != nil {
		return err
	}

	b := r.Beam
	x := b.Positions()
	w := b.LoadIntensity()
	v := b.Shear()
	m := b.Moment()
	slope, serr := b.Slope()
	defl, _ := b.Deflection()

	header := []interface{}{
		excelize.Cell{StyleID: bold, Value: "x (m)"},
		excelize.Cell{StyleID: bold, Value: "Load (N/m)"},
		excelize.Cell{StyleID: bold, Value: "Shear (N)"},
		excelize.Cell{StyleID: bold, Value: "Moment (N·m)"},
	}
	if serr == nil {
		header = append(header,
			excelize.Cell{StyleID: bold, Value: "Slope (rad)"},
			excelize.Cell{StyleID: bold, Value: "Deflection (mm)"},
		)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i := range x {
		row := []interface{}{x[i], w[i], v[i], m[i]}
		if serr == nil {
			row = append(row, slope[i], defl[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}
