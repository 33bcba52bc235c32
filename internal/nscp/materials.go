package nscp

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// NSCP 2015 Material Constants

const (
	// Modulus of elasticity for steel (Section 420.2.2)
	Es = 200000.0 // MPa

	// Ec = 4700√f'c for normal-weight concrete (Section 419.2.2.1)
	ConcreteModulusFactor = 4700.0

	// Practical range of specified compressive strength
	MinConcreteStrength = 17.0 // MPa
	MaxConcreteStrength = 70.0 // MPa
)

// ErrMaterial is returned for unknown materials or strengths out of range
var ErrMaterial = errors.New("nscp: invalid material")

// Material is a named elastic modulus
type Material struct {
	Name     string
	Strength float64 // f'c in MPa, concrete only
	Modulus  float64 // E in MPa (N/mm²)
}

// Steel returns structural steel with Es
func Steel() Material {
	return Material{Name: "steel", Modulus: Es}
}

// Ec calculates the modulus of elasticity of normal-weight concrete
// NSCP 2015 Section 419.2.2.1
func Ec(fc float64) float64 {
	return ConcreteModulusFactor * math.Sqrt(fc)
}

// Concrete returns normal-weight concrete of strength fc (MPa)
func Concrete(fc float64) (Material, error) {
	if fc < MinConcreteStrength || fc > MaxConcreteStrength {
		return Material{}, fmt.Errorf("%w: f'c = %.1f MPa outside %.0f to %.0f MPa",
			ErrMaterial, fc, MinConcreteStrength, MaxConcreteStrength)
	}
	return Material{Name: "concrete", Strength: fc, Modulus: Ec(fc)}, nil
}

// Custom returns a material with an explicit modulus
func Custom(e float64) (Material, error) {
	if e <= 0 || math.IsNaN(e) || math.IsInf(e, 0) {
		return Material{}, fmt.Errorf("%w: elastic modulus must be positive, got %g", ErrMaterial, e)
	}
	return Material{Name: "custom", Modulus: e}, nil
}

// ParseMaterial resolves a material name. fc is used for concrete and e for
// anything else that is not steel.
func ParseMaterial(name string, fc, e float64) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "steel":
		return Steel(), nil
	case "concrete":
		return Concrete(fc)
	case "", "custom":
		return Custom(e)
	default:
		return Material{}, fmt.Errorf("%w: unknown material %q", ErrMaterial, name)
	}
}

func (m Material) String() string {
	if m.Name == "concrete" {
		return fmt.Sprintf("concrete f'c = %.1f MPa, Ec = %.0f MPa", m.Strength, m.Modulus)
	}
	return fmt.Sprintf("%s E = %.0f MPa", m.Name, m.Modulus)
}
