// Package beamfile reads continuous beam definitions from YAML or JSON files
// and load tables from spreadsheets.
package beamfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/cbeam/internal/load"
	"github.com/alexiusacademia/cbeam/internal/nscp"
	"github.com/alexiusacademia/cbeam/internal/section"
	"github.com/alexiusacademia/cbeam/internal/units"
)

// Definition is a beam as written in a definition file. Positions are in m,
// intensities in N/m, inertia in cm⁴. The inertia may instead be derived
// from a cross-section polygon in mm.
type Definition struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Supports    []float64        `yaml:"supports"`
	Loads       []LoadDef        `yaml:"loads,omitempty"`
	LoadTable   string           `yaml:"load_table,omitempty"` // .xlsx, relative to the file
	Inertia     float64          `yaml:"inertia,omitempty"`
	Section     *section.Section `yaml:"section,omitempty"`
	Material    *MaterialDef     `yaml:"material,omitempty"`
	Points      int              `yaml:"points,omitempty"`
}

// LoadDef is one distributed load. Uniform loads use Magnitude, triangular
// loads use MagnitudeStart and MagnitudeEnd.
type LoadDef struct {
	Kind           string  `yaml:"kind"`
	Magnitude      float64 `yaml:"magnitude,omitempty"`
	MagnitudeStart float64 `yaml:"magnitude_start,omitempty"`
	MagnitudeEnd   float64 `yaml:"magnitude_end,omitempty"`
	Start          float64 `yaml:"start"`
	End            float64 `yaml:"end"`
	Case           string  `yaml:"case,omitempty"`
}

// MaterialDef selects the elastic modulus: steel, concrete with f'c, or an explicit E
type MaterialDef struct {
	Name string  `yaml:"name"`
	Fc   float64 `yaml:"fc,omitempty"` // MPa
	E    float64 `yaml:"e,omitempty"`  // N/mm²
}

// ValidationError represents a malformed beam definition
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Parse decodes a definition. JSON is accepted as a subset of YAML.
func Parse(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Definition
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{"definition is empty"}
		}
		return nil, fmt.Errorf("failed to parse beam definition: %w", err)
	}
	return &d, nil
}

// LoadFromFile reads and validates a definition file. A referenced load table
// is read and its rows are appended to the loads.
func LoadFromFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read beam definition: %w", err)
	}

	d, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if d.LoadTable != "" {
		table := d.LoadTable
		if !filepath.IsAbs(table) {
			table = filepath.Join(filepath.Dir(path), table)
		}
		rows, err := ReadLoadTable(table)
		if err != nil {
			return nil, err
		}
		d.Loads = append(d.Loads, rows...)
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Validate checks if the definition is complete
func (d *Definition) Validate() error {
	if len(d.Supports) < 2 {
		return &ValidationError{"beam must have at least 2 supports"}
	}
	if len(d.Loads) == 0 {
		return &ValidationError{"beam must have at least one load"}
	}
	for i, l := range d.Loads {
		if _, err := l.CaseLoad(); err != nil {
			return &ValidationError{msg: fmt.Sprintf("load %d: %v", i+1, err)}
		}
	}
	if d.Inertia < 0 {
		return &ValidationError{"inertia must not be negative"}
	}
	if d.Section != nil {
		if d.Inertia != 0 {
			return &ValidationError{"give either inertia or section, not both"}
		}
		if err := d.Section.Validate(); err != nil {
			return &ValidationError{msg: "section: " + err.Error()}
		}
	}
	if d.Points < 0 {
		return &ValidationError{"points must not be negative"}
	}
	if d.Material != nil {
		if _, err := d.Material.Resolve(); err != nil {
			return &ValidationError{msg: err.Error()}
		}
	}
	return nil
}

// CaseLoad converts the definition into a load tagged with its case
func (l LoadDef) CaseLoad() (nscp.CaseLoad, error) {
	c, err := nscp.ParseCase(l.Case)
	if err != nil {
		return nscp.CaseLoad{}, err
	}

	var ld load.Load
	switch load.Kind(strings.ToLower(strings.TrimSpace(l.Kind))) {
	case load.KindUniform, "udl":
		ld, err = load.NewUniform(l.Magnitude, l.Start, l.End)
	case load.KindTriangular, "linear":
		ld, err = load.NewTriangular(l.MagnitudeStart, l.MagnitudeEnd, l.Start, l.End)
	default:
		return nscp.CaseLoad{}, fmt.Errorf("unknown load kind %q (want uniform or triangular)", l.Kind)
	}
	if err != nil {
		return nscp.CaseLoad{}, err
	}
	return nscp.CaseLoad{Case: c, Load: ld}, nil
}

// CaseLoads converts every load of the definition
func (d *Definition) CaseLoads() ([]nscp.CaseLoad, error) {
	out := make([]nscp.CaseLoad, len(d.Loads))
	for i, l := range d.Loads {
		cl, err := l.CaseLoad()
		if err != nil {
			return nil, &ValidationError{msg: fmt.Sprintf("load %d: %v", i+1, err)}
		}
		out[i] = cl
	}
	return out, nil
}

// Resolve returns the material the definition names
func (m *MaterialDef) Resolve() (nscp.Material, error) {
	return nscp.ParseMaterial(m.Name, m.Fc, m.E)
}

// Input builds the unfactored SI input. Values missing from the file fall
// back to env.
func (d *Definition) Input(env Defaults) (units.Input, error) {
	cls, err := d.CaseLoads()
	if err != nil {
		return units.Input{}, err
	}
	loads := make([]load.Load, len(cls))
	for i, cl := range cls {
		loads[i] = cl.Load
	}

	in := units.Input{
		Loads:          loads,
		Supports:       append([]float64(nil), d.Supports...),
		ElasticModulus: env.ElasticModulus,
		Inertia:        d.Inertia,
		SamplePoints:   env.SamplePoints,
	}
	if d.Material != nil {
		m, err := d.Material.Resolve()
		if err != nil {
			return units.Input{}, &ValidationError{msg: err.Error()}
		}
		in.ElasticModulus = m.Modulus
	}
	if d.Section != nil && in.Inertia == 0 {
		in.Inertia = d.Section.CalculateProperties().InertiaCm4()
	}
	if d.Points > 0 {
		in.SamplePoints = d.Points
	}
	return in, nil
}
