package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/cbeam/internal/system"
)

// ErrSingularSystem is returned when the three-moment equations cannot be
// solved, typically because two supports share a position.
var ErrSingularSystem = errors.New("solver: singular three-moment system")

// Equations is the assembled three-moment system A·M = b.
// Row i belongs to subsystem i, column j to interior support j.
type Equations struct {
	Coefficients *mat.Dense    // nil for a single span
	Loads        *mat.VecDense // nil for a single span
	Interior     []float64     // interior support positions, in column order
}

// MomentSolver solves the three-moment equations of a decomposed beam
type MomentSolver struct {
	sys *system.System
	eq  *Equations
}

// NewMomentSolver assembles the equation system for sys
func NewMomentSolver(sys *system.System) (*MomentSolver, error) {
	eq, err := Assemble(sys)
	if err != nil {
		return nil, err
	}
	return &MomentSolver{sys: sys, eq: eq}, nil
}

// System returns the assembled equations
func (s *MomentSolver) System() *Equations {
	return s.eq
}

// Solve returns the bending moment at every support, in the order of
// sys.Supports. End supports are always zero.
func (s *MomentSolver) Solve() ([]float64, error) {
	moments := make([]float64, len(s.sys.Supports))
	if s.sys.SingleSpan() {
		return moments, nil
	}

	var m mat.VecDense
	if err := m.SolveVec(s.eq.Coefficients, s.eq.Loads); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}
	for j := range s.eq.Interior {
		v := m.AtVec(j)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite moment at support %g", ErrSingularSystem, s.eq.Interior[j])
		}
		moments[j+1] = v
	}
	return moments, nil
}

// Assemble builds the coefficient matrix and load vector. Subsystem i
// surrounds interior support i, so its diagonal coefficient is 2(L1+L2) and
// its neighbours, when they are interior too, get L1 and L2.
func Assemble(sys *system.System) (*Equations, error) {
	for i, span := range sys.Spans {
		if !(span.Length() > 0) {
			return nil, fmt.Errorf("%w: span %d [%g, %g] has no length", ErrSingularSystem, i+1, span.Start, span.End)
		}
	}

	if sys.SingleSpan() {
		return &Equations{}, nil
	}

	n := len(sys.Subsystems)
	interior := make([]float64, n)
	copy(interior, sys.Supports[1:len(sys.Supports)-1])

	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	for i, sub := range sys.Subsystems {
		l1, l2 := sub.Left.Length(), sub.Right.Length()

		a.Set(i, i, 2*(l1+l2))
		if i > 0 {
			a.Set(i, i-1, l1)
		}
		if i+1 < n {
			a.Set(i, i+1, l2)
		}
		b.SetVec(i, -sub.Components.Total())
	}

	return &Equations{Coefficients: a, Loads: b, Interior: interior}, nil
}
