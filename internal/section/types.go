package section

import "fmt"

// Section is a beam cross-section defined by the vertices of a simple polygon.
// Coordinates are in mm in a local system where:
// - Y-axis points upward
// - X-axis points to the right
// - Origin can be at any convenient location
type Section struct {
	Name string `yaml:"name,omitempty"`

	// Vertices of the outer boundary, either orientation, no holes
	Vertices []Point `yaml:"vertices"`
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `yaml:"x"` // mm
	Y float64 `yaml:"y"` // mm
}

// Properties holds calculated geometric properties
type Properties struct {
	// Overall dimensions
	Width  float64 // Maximum width (mm)
	Height float64 // Total height (mm)
	Area   float64 // Gross area (mm²)

	// Centroid location
	CentroidX float64 // mm
	CentroidY float64 // mm

	// Bounding box
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64

	// Second moments of area about the centroidal axes
	Ixx float64 // mm⁴, horizontal axis, governs vertical bending
	Iyy float64 // mm⁴

	// Elastic section moduli for bending about the horizontal axis
	SectionModulusTop    float64 // Ixx / (MaxY - CentroidY), mm³
	SectionModulusBottom float64 // Ixx / (CentroidY - MinY), mm³
}

// InertiaCm4 returns Ixx in cm⁴
func (p *Properties) InertiaCm4() float64 {
	return p.Ixx / 1e4
}

// Rectangle returns a solid b × h section with its bottom-left corner at the origin
func Rectangle(b, h float64) *Section {
	return &Section{
		Name: fmt.Sprintf("%gx%g", b, h),
		Vertices: []Point{
			{X: 0, Y: 0},
			{X: b, Y: 0},
			{X: b, Y: h},
			{X: 0, Y: h},
		},
	}
}

// Tee returns a T-section: a flange bf × tf on top of a web bw × (h - tf),
// with the web centred under the flange.
func Tee(bf, tf, bw, h float64) *Section {
	x0 := (bf - bw) / 2
	return &Section{
		Name: fmt.Sprintf("T%gx%g", bf, h),
		Vertices: []Point{
			{X: x0, Y: 0},
			{X: x0 + bw, Y: 0},
			{X: x0 + bw, Y: h - tf},
			{X: bf, Y: h - tf},
			{X: bf, Y: h},
			{X: 0, Y: h},
			{X: 0, Y: h - tf},
			{X: x0, Y: h - tf},
		},
	}
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if len(s.Vertices) < 3 {
		return &ValidationError{"section must have at least 3 vertices"}
	}
	if a, _, _ := s.areaAndCentroid(); a == 0 {
		return &ValidationError{"section must enclose a positive area"}
	}
	for i, v := range s.Vertices {
		if v == s.Vertices[(i+1)%len(s.Vertices)] {
			return &ValidationError{msg: fmt.Sprintf("vertex %d repeats the next vertex", i+1)}
		}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
