package nscp

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/cbeam/internal/analysis"
	"github.com/alexiusacademia/cbeam/internal/units"
)

// Outcome is one factored combination analysed in SI units
type Outcome struct {
	Combination LoadCombination
	Beam        *units.Beam
	MaxMoment   analysis.SpanExtreme // N·m, largest magnitude over all spans
}

// Evaluate analyses every combination that includes at least one of the
// given loads. base supplies supports and stiffness; its Loads are ignored.
// Combinations run concurrently and the outcomes keep the order of combos.
func Evaluate(ctx context.Context, base units.Input, loads []CaseLoad, combos []LoadCombination, opts ...analysis.Option) ([]Outcome, error) {
	results := make([]*Outcome, len(combos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, combo := range combos {
		i, combo := i, combo
		factored := combo.Apply(loads)
		if len(factored) == 0 {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			in := base
			in.Loads = factored
			b, err := units.NewBeam(in, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", combo, err)
			}
			gov, _ := analysis.Governing(b.MaxMoments())
			results[i] = &Outcome{Combination: combo, Beam: b, MaxMoment: gov}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Outcome, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// Governing returns the outcome with the largest absolute moment
func Governing(outcomes []Outcome) (Outcome, bool) {
	if len(outcomes) == 0 {
		return Outcome{}, false
	}
	best := outcomes[0]
	for _, o := range outcomes[1:] {
		if math.Abs(o.MaxMoment.Value) > math.Abs(best.MaxMoment.Value) {
			best = o
		}
	}
	return best, true
}

// Bound is an extreme value and the combination that produced it
type Bound struct {
	Value       float64
	Combination string // combination ID
}

// SupportEnvelope holds the range of moment and reaction at one support
type SupportEnvelope struct {
	Position    float64 // m
	MinMoment   Bound   // N·m
	MaxMoment   Bound   // N·m
	MinReaction Bound   // N
	MaxReaction Bound   // N
}

// Envelope collects the extreme support moments and reactions over all outcomes
func Envelope(outcomes []Outcome) []SupportEnvelope {
	if len(outcomes) == 0 {
		return nil
	}

	var env []SupportEnvelope
	for k, o := range outcomes {
		id := o.Combination.ID
		for i, s := range o.Beam.SupportResults() {
			m := Bound{Value: s.Moment, Combination: id}
			r := Bound{Value: s.Reaction, Combination: id}
			if k == 0 {
				env = append(env, SupportEnvelope{
					Position:    s.Position,
					MinMoment:   m,
					MaxMoment:   m,
					MinReaction: r,
					MaxReaction: r,
				})
				continue
			}

			e := &env[i]
			if s.Moment < e.MinMoment.Value {
				e.MinMoment = m
			}
			if s.Moment > e.MaxMoment.Value {
				e.MaxMoment = m
			}
			if s.Reaction < e.MinReaction.Value {
				e.MinReaction = r
			}
			if s.Reaction > e.MaxReaction.Value {
				e.MaxReaction = r
			}
		}
	}
	return env
}
