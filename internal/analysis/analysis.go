package analysis

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/cbeam/internal/field"
	"github.com/alexiusacademia/cbeam/internal/load"
	"github.com/alexiusacademia/cbeam/internal/solver"
	"github.com/alexiusacademia/cbeam/internal/system"
)

var (
	// ErrConfig is returned for input that can never be analysed: too few
	// supports, no loads, invalid loads or out-of-range settings.
	ErrConfig = errors.New("analysis: invalid configuration")

	// ErrNoStiffness is returned by deflection queries when the elastic
	// modulus or the second moment of area was not given.
	ErrNoStiffness = errors.New("analysis: deflection needs elastic modulus and inertia")
)

// Config holds the engine settings. All values use the same unit system as
// the loads and support positions.
type Config struct {
	ElasticModulus float64 // E, force per area
	Inertia        float64 // I, length⁴
	SamplePoints   int     // grid size for the sampled fields
}

// DefaultConfig returns a config with the default sample count and no stiffness
func DefaultConfig() Config {
	return Config{SamplePoints: field.DefaultPoints}
}

// Rigidity returns E·I
func (c Config) Rigidity() float64 {
	return c.ElasticModulus * c.Inertia
}

// Option customises an Analysis
type Option func(*Analysis)

// WithLogger sets the logger stage information is written to
func WithLogger(l *zap.Logger) Option {
	return func(a *Analysis) {
		if l != nil {
			a.log = l
		}
	}
}

// Analysis is a solved continuous beam. Support moments and reactions are
// solved by New; the sampled fields are computed on first access and cached.
// An Analysis is safe for concurrent use.
type Analysis struct {
	cfg   Config
	loads []load.Load
	log   *zap.Logger

	sys       *system.System
	equations *solver.Equations
	moments   []float64
	reactions []float64
	spans     []solver.SpanReaction

	fieldsOnce sync.Once
	fields     *field.Fields

	deflOnce sync.Once
	defl     *field.Deflection
}

// New validates the input, decomposes the beam and solves the support
// moments and reactions.
func New(loads []load.Load, supports []float64, cfg Config, opts ...Option) (*Analysis, error) {
	if err := validate(loads, supports, &cfg); err != nil {
		return nil, err
	}

	a := &Analysis{
		cfg:   cfg,
		loads: append([]load.Load(nil), loads...),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	sys, err := system.Build(a.loads, supports)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	a.sys = sys
	a.log.Debug("beam decomposed",
		zap.Int("supports", len(sys.Supports)),
		zap.Int("spans", len(sys.Spans)),
		zap.Int("subsystems", len(sys.Subsystems)),
		zap.Bool("single_span", sys.SingleSpan()),
	)

	ms, err := solver.NewMomentSolver(sys)
	if err != nil {
		return nil, err
	}
	a.equations = ms.System()
	if a.equations.Coefficients != nil {
		r, c := a.equations.Coefficients.Dims()
		a.log.Debug("three-moment system assembled", zap.Int("rows", r), zap.Int("cols", c))
	}

	a.moments, err = ms.Solve()
	if err != nil {
		return nil, err
	}
	a.log.Debug("support moments solved", zap.Float64s("moments", a.moments))

	rs, err := solver.NewReactionSolver(a.loads, sys, a.moments)
	if err != nil {
		return nil, err
	}
	a.reactions = rs.Solve()
	a.spans = rs.Details()
	a.log.Debug("reactions solved",
		zap.Float64s("reactions", a.reactions),
		zap.Float64("sum", floats.Sum(a.reactions)),
		zap.Float64("applied", a.TotalLoad()),
	)

	return a, nil
}

func validate(loads []load.Load, supports []float64, cfg *Config) error {
	if len(supports) < 2 {
		return fmt.Errorf("%w: %w", ErrConfig, fmt.Errorf("%w: got %d", system.ErrTooFewSupports, len(supports)))
	}
	for _, s := range supports {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: support position %g is not finite", ErrConfig, s)
		}
	}
	if len(loads) == 0 {
		return fmt.Errorf("%w: at least one load is required", ErrConfig)
	}
	for i, l := range loads {
		if err := load.Validate(l); err != nil {
			return fmt.Errorf("%w: load %d: %w", ErrConfig, i+1, err)
		}
	}

	if cfg.SamplePoints < 0 {
		return fmt.Errorf("%w: sample points must not be negative, got %d", ErrConfig, cfg.SamplePoints)
	}
	if cfg.SamplePoints == 0 {
		cfg.SamplePoints = field.DefaultPoints
	}
	if cfg.SamplePoints < field.MinPoints {
		cfg.SamplePoints = field.MinPoints
	}
	if cfg.ElasticModulus < 0 || math.IsNaN(cfg.ElasticModulus) {
		return fmt.Errorf("%w: elastic modulus must not be negative, got %g", ErrConfig, cfg.ElasticModulus)
	}
	if cfg.Inertia < 0 || math.IsNaN(cfg.Inertia) {
		return fmt.Errorf("%w: inertia must not be negative, got %g", ErrConfig, cfg.Inertia)
	}
	return nil
}

// Config returns the effective configuration
func (a *Analysis) Config() Config {
	return a.cfg
}

// Loads returns the analysed loads
func (a *Analysis) Loads() []load.Load {
	return append([]load.Load(nil), a.loads...)
}

// Supports returns the sorted support positions
func (a *Analysis) Supports() []float64 {
	return append([]float64(nil), a.sys.Supports...)
}

// Spans returns the spans between consecutive supports
func (a *Analysis) Spans() []system.Span {
	return append([]system.Span(nil), a.sys.Spans...)
}

// Subsystems returns the two-span subsystems with their load components
func (a *Analysis) Subsystems() []system.Subsystem {
	return append([]system.Subsystem(nil), a.sys.Subsystems...)
}

// Equations returns the assembled three-moment system. Coefficients is nil for a single span.
func (a *Analysis) Equations() *solver.Equations {
	return a.equations
}

// SpanReactions returns the per-span equilibrium breakdown
func (a *Analysis) SpanReactions() []solver.SpanReaction {
	return append([]solver.SpanReaction(nil), a.spans...)
}

// SupportMoments maps each support position to its bending moment
func (a *Analysis) SupportMoments() map[float64]float64 {
	return byPosition(a.sys.Supports, a.moments)
}

// Reactions maps each support position to its vertical reaction, up positive
func (a *Analysis) Reactions() map[float64]float64 {
	return byPosition(a.sys.Supports, a.reactions)
}

// Support is the solved state of one support
type Support struct {
	Position float64
	Moment   float64
	Reaction float64
}

// SupportResults returns moment and reaction per support in position order
func (a *Analysis) SupportResults() []Support {
	out := make([]Support, len(a.sys.Supports))
	for i, pos := range a.sys.Supports {
		out[i] = Support{Position: pos, Moment: a.moments[i], Reaction: a.reactions[i]}
	}
	return out
}

// TotalLoad returns the resultant of every load over its full range
func (a *Analysis) TotalLoad() float64 {
	var total float64
	for _, l := range a.loads {
		total += load.Total(l)
	}
	return total
}

// HasStiffness reports whether deflection can be computed
func (a *Analysis) HasStiffness() bool {
	return a.cfg.Rigidity() > 0
}

func (a *Analysis) ensureFields() *field.Fields {
	a.fieldsOnce.Do(func() {
		x := field.Grid(a.sys.Supports[0], a.sys.Supports[len(a.sys.Supports)-1], a.cfg.SamplePoints)
		a.fields = field.Reconstruct(x, a.loads, field.Supports{
			Positions: a.sys.Supports,
			Moments:   a.moments,
			Reactions: a.reactions,
		})
		a.log.Debug("fields reconstructed", zap.Int("points", len(x)))
	})
	return a.fields
}

func (a *Analysis) ensureDeflection() (*field.Deflection, error) {
	if !a.HasStiffness() {
		return nil, ErrNoStiffness
	}
	a.deflOnce.Do(func() {
		f := a.ensureFields()
		a.defl = field.Deflect(f.X, f.Moment, a.sys.Supports, a.cfg.Rigidity())
		a.log.Debug("deflection integrated", zap.Float64("ei", a.cfg.Rigidity()))
	})
	return a.defl, nil
}

// Positions returns the sample grid
func (a *Analysis) Positions() []float64 {
	return clone(a.ensureFields().X)
}

// LoadIntensity returns the total load intensity on the grid
func (a *Analysis) LoadIntensity() []float64 {
	return clone(a.ensureFields().Load)
}

// Shear returns the shear force on the grid
func (a *Analysis) Shear() []float64 {
	return clone(a.ensureFields().Shear)
}

// Moment returns the bending moment on the grid
func (a *Analysis) Moment() []float64 {
	return clone(a.ensureFields().Moment)
}

// Slope returns the rotation on the grid
func (a *Analysis) Slope() ([]float64, error) {
	d, err := a.ensureDeflection()
	if err != nil {
		return nil, err
	}
	return clone(d.Slope), nil
}

// Deflection returns the deflection on the grid, downward negative
func (a *Analysis) Deflection() ([]float64, error) {
	d, err := a.ensureDeflection()
	if err != nil {
		return nil, err
	}
	return clone(d.Deflection), nil
}

func byPosition(positions, values []float64) map[float64]float64 {
	m := make(map[float64]float64, len(positions))
	for i, pos := range positions {
		m[pos] = values[i]
	}
	return m
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
