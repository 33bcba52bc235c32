package solver

import (
	"fmt"

	"github.com/alexiusacademia/cbeam/internal/load"
	"github.com/alexiusacademia/cbeam/internal/system"
)

// SpanReaction is the equilibrium breakdown of one span
type SpanReaction struct {
	Index         int
	Start         float64 // position
	End           float64 // position
	Length        float64
	TotalLoad     float64 // resultant of all loads on the span, down positive
	MomentAbout   float64 // Σ F·(centroid − End)
	MomentStart   float64 // support moment at Start
	MomentEnd     float64 // support moment at End
	ReactionStart float64 // contribution to the support at Start
	ReactionEnd   float64 // contribution to the support at End
}

// ReactionSolver computes support reactions from solved support moments
// using the static equilibrium of each span.
type ReactionSolver struct {
	loads   []load.Load
	sys     *system.System
	moments []float64
	details []SpanReaction
}

// NewReactionSolver prepares a solver. moments must follow the order of sys.Supports.
func NewReactionSolver(loads []load.Load, sys *system.System, moments []float64) (*ReactionSolver, error) {
	if len(moments) != len(sys.Supports) {
		return nil, fmt.Errorf("solver: %d moments for %d supports", len(moments), len(sys.Supports))
	}
	return &ReactionSolver{loads: loads, sys: sys, moments: moments}, nil
}

// Solve returns the reaction at every support, in the order of sys.Supports.
// Upward reactions are positive. Interior supports sum the contributions of
// both adjacent spans.
func (s *ReactionSolver) Solve() []float64 {
	reactions := make([]float64, len(s.sys.Supports))
	details := make([]SpanReaction, len(s.sys.Spans))

	for i, span := range s.sys.Spans {
		d := s.span(i, span)
		reactions[i] += d.ReactionStart
		reactions[i+1] += d.ReactionEnd
		details[i] = d
	}

	s.details = details
	return reactions
}

// Details returns the per-span breakdown of the last Solve
func (s *ReactionSolver) Details() []SpanReaction {
	if s.details == nil {
		s.Solve()
	}
	return s.details
}

func (s *ReactionSolver) span(i int, span system.Span) SpanReaction {
	d := SpanReaction{
		Index:       i,
		Start:       span.Start,
		End:         span.End,
		Length:      span.Length(),
		MomentStart: s.moments[i],
		MomentEnd:   s.moments[i+1],
	}

	for _, l := range s.loads {
		force, centroid := l.Resultant(span.Start, span.End)
		if force == 0 {
			continue
		}
		d.TotalLoad += force
		d.MomentAbout += force * (centroid - span.End)
	}

	if d.Length > 0 {
		d.ReactionStart = (-d.MomentAbout - d.MomentStart + d.MomentEnd) / d.Length
	}
	d.ReactionEnd = d.TotalLoad - d.ReactionStart
	return d
}
