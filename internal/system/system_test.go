package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/cbeam/internal/load"
)

func TestBuildRejectsTooFewSupports(t *testing.T) {
	_, err := Build(nil, []float64{0})
	assert.ErrorIs(t, err, ErrTooFewSupports)

	_, err = Build(nil, nil)
	assert.ErrorIs(t, err, ErrTooFewSupports)
}

func TestBuildSingleSpan(t *testing.T) {
	sys, err := Build([]load.Load{load.Uniform{Magnitude: 1, Start: 0, End: 5}}, []float64{5, 0})
	require.NoError(t, err)

	assert.True(t, sys.SingleSpan())
	assert.Equal(t, []float64{0, 5}, sys.Supports)
	assert.Equal(t, []Span{{0, 5}}, sys.Spans)
	assert.Empty(t, sys.Subsystems)
}

func TestBuildSubsystems(t *testing.T) {
	sys, err := Build(nil, []float64{8, 0, 12, 4})
	require.NoError(t, err)

	assert.False(t, sys.SingleSpan())
	assert.Equal(t, []float64{0, 4, 8, 12}, sys.Supports)
	require.Len(t, sys.Subsystems, 2)

	assert.Equal(t, Span{0, 4}, sys.Subsystems[0].Left)
	assert.Equal(t, Span{4, 8}, sys.Subsystems[0].Right)
	assert.Equal(t, 4.0, sys.Subsystems[0].Support())

	assert.Equal(t, Span{4, 8}, sys.Subsystems[1].Left)
	assert.Equal(t, Span{8, 12}, sys.Subsystems[1].Right)
	assert.Equal(t, 8.0, sys.Subsystems[1].Support())

	for _, sub := range sys.Subsystems {
		assert.Zero(t, sub.Components.Total(), "no loads, no components")
		assert.Empty(t, sub.Components.Overlaps)
	}
}

func TestComponentValues(t *testing.T) {
	span := Span{0, 4}
	tests := []struct {
		name      string
		load      load.Load
		wantLeft  float64
		wantRight float64
	}{
		{"uniform", load.Uniform{Magnitude: 10, Start: 0, End: 4}, 160, 160},
		{"rising triangle", load.Triangular{MagnitudeStart: 0, MagnitudeEnd: 10, Start: 0, End: 4}, 85.3333333, 74.6666667},
		{"falling triangle", load.Triangular{MagnitudeStart: 10, MagnitudeEnd: 0, Start: 0, End: 4}, 74.6666667, 85.3333333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantLeft, LeftComponent(tt.load, span, 0, 4), 1e-6)
			assert.InDelta(t, tt.wantRight, RightComponent(tt.load, span, 0, 4), 1e-6)
		})
	}
}

func TestComponentsUseAbsoluteIntensity(t *testing.T) {
	// The same triangle shifted by 10 must give the same components on the shifted span.
	shifted := load.Triangular{MagnitudeStart: 0, MagnitudeEnd: 10, Start: 10, End: 14}
	span := Span{10, 14}

	assert.InDelta(t, 85.3333333, LeftComponent(shifted, span, 10, 14), 1e-6)
	assert.InDelta(t, 74.6666667, RightComponent(shifted, span, 10, 14), 1e-6)
}

func TestBuildComponents(t *testing.T) {
	tri := load.Triangular{MagnitudeStart: 0, MagnitudeEnd: 1400, Start: 0, End: 4}
	sys, err := Build([]load.Load{tri}, []float64{0, 4, 8})
	require.NoError(t, err)
	require.Len(t, sys.Subsystems, 1)

	c := sys.Subsystems[0].Components
	assert.InDelta(t, 11946.6667, c.Left, 1e-3)
	assert.Zero(t, c.Right)
	require.Len(t, c.Overlaps, 1)
	assert.Equal(t, Overlap{Load: 0, Side: Left, Start: 0, End: 4, Component: c.Left}, c.Overlaps[0])
}

func TestBuildLoadAcrossInteriorSupport(t *testing.T) {
	u := load.Uniform{Magnitude: 1000, Start: 2, End: 6}
	sys, err := Build([]load.Load{u}, []float64{0, 4, 8})
	require.NoError(t, err)

	c := sys.Subsystems[0].Components
	require.Len(t, c.Overlaps, 2)
	assert.Equal(t, Left, c.Overlaps[0].Side)
	assert.Equal(t, 2.0, c.Overlaps[0].Start)
	assert.Equal(t, 4.0, c.Overlaps[0].End)
	assert.Equal(t, Right, c.Overlaps[1].Side)
	assert.Equal(t, 4.0, c.Overlaps[1].Start)
	assert.Equal(t, 6.0, c.Overlaps[1].End)

	// Symmetric about the interior support.
	assert.InDelta(t, c.Left, c.Right, 1e-6)
	assert.InDelta(t, c.Left+c.Right, c.Total(), 1e-9)
}

func TestLoadOutsideSubsystemContributesNothing(t *testing.T) {
	u := load.Uniform{Magnitude: 1000, Start: 8, End: 12}
	sys, err := Build([]load.Load{u}, []float64{0, 4, 8, 12})
	require.NoError(t, err)

	assert.Zero(t, sys.Subsystems[0].Components.Total())
	assert.Empty(t, sys.Subsystems[0].Components.Overlaps)
	assert.NotZero(t, sys.Subsystems[1].Components.Right)
}

func TestIntegrateAdaptive(t *testing.T) {
	assert.InDelta(t, 2.0, integrate(math.Sin, 0, math.Pi), 1e-9)
	assert.InDelta(t, math.E-1, integrate(math.Exp, 0, 1), 1e-9)
	assert.Zero(t, integrate(math.Exp, 1, 1))
	assert.Zero(t, integrate(math.Exp, 2, 1))
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
}
