package beamfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load table column headers, matched case-insensitively
const (
	ColKind           = "kind"
	ColMagnitudeStart = "magnitude_start"
	ColMagnitudeEnd   = "magnitude_end"
	ColStart          = "start"
	ColEnd            = "end"
	ColCase           = "case"
)

// TableHeader is the header row WriteLoadTable produces
var TableHeader = []string{ColKind, ColMagnitudeStart, ColMagnitudeEnd, ColStart, ColEnd, ColCase}

// ReadLoadTable reads loads from the first sheet of an .xlsx workbook. The
// first row names the columns; blank rows are skipped. Uniform loads take
// their magnitude from magnitude_start.
func ReadLoadTable(path string) ([]LoadDef, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open load table: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read load table: %w", err)
	}
	if len(rows) < 2 {
		return nil, &ValidationError{msg: fmt.Sprintf("load table %s has no rows", path)}
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range []string{ColKind, ColMagnitudeStart, ColStart, ColEnd} {
		if _, ok := cols[want]; !ok {
			return nil, &ValidationError{msg: fmt.Sprintf("load table %s: missing column %q", path, want)}
		}
	}

	var out []LoadDef
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		l, err := parseLoadRow(row, cols)
		if err != nil {
			return nil, &ValidationError{msg: fmt.Sprintf("load table %s row %d: %v", path, i+2, err)}
		}
		out = append(out, l)
	}
	return out, nil
}

func parseLoadRow(row []string, cols map[string]int) (LoadDef, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(name string) (float64, error) {
		s := cell(name)
		if s == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: %q is not a number", name, s)
		}
		return v, nil
	}

	l := LoadDef{Kind: cell(ColKind), Case: cell(ColCase)}
	var err error
	if l.MagnitudeStart, err = num(ColMagnitudeStart); err != nil {
		return LoadDef{}, err
	}
	if l.MagnitudeEnd, err = num(ColMagnitudeEnd); err != nil {
		return LoadDef{}, err
	}
	if l.Start, err = num(ColStart); err != nil {
		return LoadDef{}, err
	}
	if l.End, err = num(ColEnd); err != nil {
		return LoadDef{}, err
	}
	if strings.EqualFold(l.Kind, "uniform") {
		l.Magnitude = l.MagnitudeStart
	}
	return l, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteLoadTable writes loads to a new workbook in the layout ReadLoadTable expects
func WriteLoadTable(path string, loads []LoadDef) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &TableHeader); err != nil {
		return err
	}
	for i, l := range loads {
		ms, me := l.MagnitudeStart, l.MagnitudeEnd
		if strings.EqualFold(l.Kind, "uniform") {
			ms, me = l.Magnitude, l.Magnitude
		}
		row := []interface{}{l.Kind, ms, me, l.Start, l.End, l.Case}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save load table: %w", err)
	}
	return nil
}
