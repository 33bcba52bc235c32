package units

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/cbeam/internal/analysis"
	"github.com/alexiusacademia/cbeam/internal/load"
)

// ErrUnsupportedLoad is returned for load types the converter does not know.
var ErrUnsupportedLoad = errors.New("units: unsupported load type")

// Conversion factors between the SI input units and the internal N-mm system
const (
	MillimetresPerMetre = 1000.0 // m -> mm
	Mm4PerCm4           = 1e4    // cm⁴ -> mm⁴
	NmmPerNm            = 1000.0 // N·m -> N·mm

	// DefaultElasticModulus is used when no modulus is given (structural steel)
	DefaultElasticModulus = 210000.0 // N/mm²
)

// Input describes a beam in user units
type Input struct {
	Loads          []load.Load // intensities in N/m, positions in m
	Supports       []float64   // m
	ElasticModulus float64     // N/mm², zero selects DefaultElasticModulus
	Inertia        float64     // cm⁴, zero disables deflection
	SamplePoints   int
}

// ToInternal converts a load from N/m over metres into N/mm over millimetres
func ToInternal(l load.Load) (load.Load, error) {
	switch v := l.(type) {
	case load.Uniform:
		return load.Uniform{
			Magnitude: v.Magnitude / MillimetresPerMetre,
			Start:     v.Start * MillimetresPerMetre,
			End:       v.End * MillimetresPerMetre,
		}, nil
	case load.Triangular:
		return load.Triangular{
			MagnitudeStart: v.MagnitudeStart / MillimetresPerMetre,
			MagnitudeEnd:   v.MagnitudeEnd / MillimetresPerMetre,
			Start:          v.Start * MillimetresPerMetre,
			End:            v.End * MillimetresPerMetre,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedLoad, l)
	}
}

// Config converts the stiffness settings of in to internal units
func (in Input) Config() analysis.Config {
	e := in.ElasticModulus
	if e == 0 {
		e = DefaultElasticModulus
	}
	return analysis.Config{
		ElasticModulus: e,
		Inertia:        in.Inertia * Mm4PerCm4,
		SamplePoints:   in.SamplePoints,
	}
}
