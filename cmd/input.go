package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexiusacademia/cbeam/internal/beamfile"
	"github.com/alexiusacademia/cbeam/internal/load"
	"github.com/alexiusacademia/cbeam/internal/nscp"
	"github.com/alexiusacademia/cbeam/internal/units"
	"github.com/spf13/cobra"
)

// beamInput is a beam assembled from a definition file and command-line flags
type beamInput struct {
	Name        string
	Description string
	Input       units.Input
	Cases       []nscp.CaseLoad
}

// inputFlags are the beam flags shared by analyze and combo
type inputFlags struct {
	file       string
	supports   []float64
	uniform    []string
	triangular []string
	inertia    float64
	modulus    float64
	points     int
	material   string
	fc         float64
	loadCase   string
}

func (f *inputFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.file, "file", "f", "", "Beam definition file (.yaml, .yml or .json)")
	c.Flags().Float64SliceVarP(&f.supports, "support", "s", nil, "Support position (m), repeat for each support")
	c.Flags().StringArrayVarP(&f.uniform, "uniform", "u", nil, `Uniform load "w,start,end" (N/m, m), repeatable`)
	c.Flags().StringArrayVarP(&f.triangular, "triangular", "t", nil, `Triangular load "w1,w2,start,end" (N/m, m), a ramp from zero up to the larger of w1 and w2, repeatable`)
	c.Flags().Float64VarP(&f.inertia, "inertia", "i", 0, "Moment of inertia I (cm⁴), enables deflection")
	c.Flags().Float64VarP(&f.modulus, "e", "e", 0, "Elastic modulus E (N/mm²)")
	c.Flags().IntVarP(&f.points, "points", "n", 0, "Sample points along the beam")
	c.Flags().StringVar(&f.material, "material", "", "Material preset: steel or concrete (with --fc)")
	c.Flags().Float64Var(&f.fc, "fc", 28, "Concrete compressive strength f'c (MPa) for --material concrete")
	c.Flags().StringVar(&f.loadCase, "case", "D", "Load case of loads given by flags (D, L, Lr, W, E, R)")
}

// resolve builds the beam. Flags override the file, the file overrides the
// environment and the environment overrides the built-in defaults.
func (f *inputFlags) resolve(c *cobra.Command) (*beamInput, error) {
	env, err := beamfile.LoadEnv()
	if err != nil {
		return nil, err
	}

	def := &beamfile.Definition{}
	if f.file != "" {
		def, err = beamfile.LoadFromFile(f.file)
		if err != nil {
			return nil, err
		}
	}

	if c.Flags().Changed("support") {
		def.Supports = f.supports
	}
	for _, s := range f.uniform {
		l, err := parseUniform(s)
		if err != nil {
			return nil, err
		}
		l.Case = f.loadCase
		def.Loads = append(def.Loads, l)
	}
	for _, s := range f.triangular {
		l, err := parseTriangular(s)
		if err != nil {
			return nil, err
		}
		l.Case = f.loadCase
		def.Loads = append(def.Loads, l)
	}
	if c.Flags().Changed("inertia") {
		def.Inertia = f.inertia
		def.Section = nil
	}
	if c.Flags().Changed("points") {
		def.Points = f.points
	}
	if c.Flags().Changed("material") {
		def.Material = &beamfile.MaterialDef{Name: f.material, Fc: f.fc}
	}
	if c.Flags().Changed("e") {
		def.Material = &beamfile.MaterialDef{Name: "custom", E: f.modulus}
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	in, err := def.Input(env)
	if err != nil {
		return nil, err
	}
	cases, err := def.CaseLoads()
	if err != nil {
		return nil, err
	}

	name := def.Name
	if name == "" {
		name = "Beam"
	}
	return &beamInput{Name: name, Description: def.Description, Input: in, Cases: cases}, nil
}

func parseValues(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: expected %d comma-separated values, got %d", s, n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %q is not a number", s, p)
		}
		out[i] = v
	}
	return out, nil
}

func parseUniform(s string) (beamfile.LoadDef, error) {
	v, err := parseValues(s, 3)
	if err != nil {
		return beamfile.LoadDef{}, err
	}
	return beamfile.LoadDef{Kind: string(load.KindUniform), Magnitude: v[0], Start: v[1], End: v[2]}, nil
}

func parseTriangular(s string) (beamfile.LoadDef, error) {
	v, err := parseValues(s, 4)
	if err != nil {
		return beamfile.LoadDef{}, err
	}
	return beamfile.LoadDef{
		Kind:           string(load.KindTriangular),
		MagnitudeStart: v[0],
		MagnitudeEnd:   v[1],
		Start:          v[2],
		End:            v[3],
	}, nil
}
