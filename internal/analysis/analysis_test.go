package analysis

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexiusacademia/cbeam/internal/load"
	"github.com/alexiusacademia/cbeam/internal/solver"
	"github.com/alexiusacademia/cbeam/internal/system"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func tri(ms, me, s, e float64) load.Load {
	return load.Triangular{MagnitudeStart: ms, MagnitudeEnd: me, Start: s, End: e}
}

func uniform(w, s, e float64) load.Load {
	return load.Uniform{Magnitude: w, Start: s, End: e}
}

func TestSymmetricSimplySupported(t *testing.T) {
	a, err := New([]load.Load{uniform(1, 0, 5)}, []float64{0, 5}, DefaultConfig())
	require.NoError(t, err)

	moments := a.SupportMoments()
	assert.Equal(t, 0.0, moments[0])
	assert.Equal(t, 0.0, moments[5])

	reactions := a.Reactions()
	assert.InDelta(t, 2.5, reactions[0], 1e-12)
	assert.InDelta(t, 2.5, reactions[5], 1e-12)
}

func TestTwoSpanTriangle(t *testing.T) {
	a, err := New([]load.Load{tri(0, 1400, 0, 4)}, []float64{0, 4, 8}, DefaultConfig())
	require.NoError(t, err)

	want := map[float64]float64{0: 0, 4: -746.666, 8: 0}
	if diff := cmp.Diff(want, a.SupportMoments(), cmpopts.EquateApprox(0, 0.1)); diff != "" {
		t.Errorf("support moments mismatch (-want +got):\n%s", diff)
	}

	wantReactions := map[float64]float64{0: 746.667, 4: 2240, 8: -186.667}
	if diff := cmp.Diff(wantReactions, a.Reactions(), cmpopts.EquateApprox(0, 0.1)); diff != "" {
		t.Errorf("reactions mismatch (-want +got):\n%s", diff)
	}

	maxMoments := a.MaxMoments()
	require.Len(t, maxMoments, 2)
	assert.InDelta(t, -746.666, maxMoments[1].Value, 0.1)
	assert.InDelta(t, 4.0, maxMoments[1].Position, 0.01)
	assert.Equal(t, 1, maxMoments[1].Index)
	assert.Equal(t, 4.0, maxMoments[1].Start)
	assert.Equal(t, 8.0, maxMoments[1].End)
}

func TestTriangleOrientation(t *testing.T) {
	tests := []struct {
		name      string
		load      load.Load
		wantTotal float64
		wantM4    float64
		wantW0    float64
	}{
		// the smaller magnitude only orients the ramp
		{"non-zero start rises", tri(200, 1400, 0, 4), 2800, -746.666, 0},
		{"equal magnitudes fall", tri(500, 500, 0, 4), 1000, -233.333, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New([]load.Load{tt.load}, []float64{0, 4, 8}, DefaultConfig())
			require.NoError(t, err)

			assert.InDelta(t, tt.wantTotal, a.TotalLoad(), 1e-9)
			assert.InDelta(t, tt.wantM4, a.SupportMoments()[4], 0.1)
			assert.InDelta(t, tt.wantW0, a.LoadIntensity()[0], 1e-9)
		})
	}
}

func TestGlobalEquilibrium(t *testing.T) {
	tests := []struct {
		name     string
		loads    []load.Load
		supports []float64
	}{
		{"single span", []load.Load{uniform(1000, 1, 2)}, []float64{0, 4}},
		{"two spans", []load.Load{tri(0, 1400, 0, 8)}, []float64{0, 4, 8}},
		{"three spans", []load.Load{tri(0, 1400, 1, 10), uniform(500, 0, 12)}, []float64{0, 3, 4, 12}},
		{"five supports", []load.Load{uniform(19575, 0, 12)}, []float64{0, 3, 6, 9, 12}},
		{"load beyond ends", []load.Load{uniform(100, -2, 14)}, []float64{0, 6, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.loads, tt.supports, DefaultConfig())
			require.NoError(t, err)

			var sum, onBeam float64
			for _, r := range a.Reactions() {
				sum += r
			}
			for _, s := range a.SpanReactions() {
				onBeam += s.TotalLoad
			}
			assert.InEpsilon(t, onBeam, sum, 1e-9)
		})
	}
}

func TestMomentFieldMatchesSupports(t *testing.T) {
	loads := []load.Load{tri(0, 1000, 1, 11), uniform(300, 0, 12)}
	a, err := New(loads, []float64{0, 3, 10, 12}, DefaultConfig())
	require.NoError(t, err)

	for _, s := range a.SupportResults() {
		got := a.ValueAt(s.Position).Moment
		if s.Moment == 0 {
			assert.InDelta(t, 0, got, 1e-6, "support %g", s.Position)
			continue
		}
		assert.InEpsilon(t, s.Moment, got, 1e-3, "support %g", s.Position)
	}
}

func TestDeflectionZeroAtSupports(t *testing.T) {
	cfg := Config{ElasticModulus: 210000, Inertia: 3265e4, SamplePoints: 2000}
	supports := []float64{0, 3000, 6000, 9000, 12000}
	a, err := New([]load.Load{uniform(19.575, 0, 12000)}, supports, cfg)
	require.NoError(t, err)

	for _, pos := range supports {
		p := a.ValueAt(pos)
		require.True(t, p.HasDeflection)
		assert.InDelta(t, 0, p.Deflection, 1e-9, "support %g", pos)
	}
}

func TestFiveSupportDeflection(t *testing.T) {
	cfg := Config{ElasticModulus: 210000, Inertia: 3265e4, SamplePoints: 2000}
	a, err := New([]load.Load{uniform(19.575, 0, 12000)}, []float64{0, 3000, 6000, 9000, 12000}, cfg)
	require.NoError(t, err)

	maxima, err := a.MaxDeflections()
	require.NoError(t, err)
	require.Len(t, maxima, 4)

	wantValues := []float64{-1.48, -0.427, -0.427, -1.48}
	wantPositions := []float64{1310, 4620, 7380, 10690}
	for i, m := range maxima {
		assert.InDelta(t, wantValues[i], m.Value, 0.02, "span %d", i)
		assert.InDelta(t, wantPositions[i], m.Position, 10, "span %d", i)
	}
}

func TestLinearity(t *testing.T) {
	const k = 2.5
	loads := []load.Load{tri(0, 1400, 1, 10), uniform(500, 0, 6)}
	supports := []float64{0, 3, 4, 12}
	cfg := Config{ElasticModulus: 200, Inertia: 1000, SamplePoints: 500}

	base, err := New(loads, supports, cfg)
	require.NoError(t, err)
	scaled, err := New(load.ScaleAll(loads, k), supports, cfg)
	require.NoError(t, err)

	for i, s := range base.SupportResults() {
		got := scaled.SupportResults()[i]
		assert.InDelta(t, k*s.Moment, got.Moment, 1e-6*max(1, abs(s.Moment)))
		assert.InDelta(t, k*s.Reaction, got.Reaction, 1e-6*max(1, abs(s.Reaction)))
	}

	bd, err := base.Deflection()
	require.NoError(t, err)
	sd, err := scaled.Deflection()
	require.NoError(t, err)
	for i := range bd {
		assert.InDelta(t, k*bd[i], sd[i], 1e-9*max(1, abs(bd[i])))
	}
}

func TestConfigErrors(t *testing.T) {
	valid := []load.Load{uniform(1, 0, 4)}
	tests := []struct {
		name     string
		loads    []load.Load
		supports []float64
		cfg      Config
		target   error
	}{
		{"one support", valid, []float64{0}, DefaultConfig(), system.ErrTooFewSupports},
		{"no supports", valid, nil, DefaultConfig(), ErrConfig},
		{"no loads", nil, []float64{0, 4}, DefaultConfig(), ErrConfig},
		{"invalid load", []load.Load{uniform(1, 4, 0)}, []float64{0, 4}, DefaultConfig(), load.ErrInvalidLoad},
		{"negative points", valid, []float64{0, 4}, Config{SamplePoints: -1}, ErrConfig},
		{"negative modulus", valid, []float64{0, 4}, Config{ElasticModulus: -1}, ErrConfig},
		{"negative inertia", valid, []float64{0, 4}, Config{Inertia: -1}, ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.loads, tt.supports, tt.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestDuplicateSupports(t *testing.T) {
	_, err := New([]load.Load{uniform(1, 0, 8)}, []float64{0, 4, 4, 8}, DefaultConfig())
	assert.ErrorIs(t, err, solver.ErrSingularSystem)
}

func TestNoStiffness(t *testing.T) {
	a, err := New([]load.Load{uniform(1, 0, 4)}, []float64{0, 4}, DefaultConfig())
	require.NoError(t, err)

	assert.False(t, a.HasStiffness())
	_, err = a.Deflection()
	assert.ErrorIs(t, err, ErrNoStiffness)
	_, err = a.Slope()
	assert.ErrorIs(t, err, ErrNoStiffness)
	_, err = a.MaxDeflections()
	assert.ErrorIs(t, err, ErrNoStiffness)

	p := a.ValueAt(2)
	assert.False(t, p.HasDeflection)
	assert.Nil(t, a.Results().MaxDeflections)
}

func TestValueAtClampsOutsideBeam(t *testing.T) {
	a, err := New([]load.Load{uniform(1, 0, 5)}, []float64{0, 5}, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, a.ValueAt(0).Shear, a.ValueAt(-10).Shear)
	assert.Equal(t, a.ValueAt(5).Moment, a.ValueAt(50).Moment)
	assert.Equal(t, -10.0, a.ValueAt(-10).Position)
	assert.InDelta(t, 3.125, a.ValueAt(2.5).Moment, 5e-3)
}

func TestSamplePoints(t *testing.T) {
	a, err := New([]load.Load{uniform(1, 0, 5)}, []float64{0, 5}, Config{SamplePoints: 10})
	require.NoError(t, err)
	assert.Len(t, a.Positions(), 100)
	assert.Equal(t, 100, a.Config().SamplePoints)

	a, err = New([]load.Load{uniform(1, 0, 5)}, []float64{0, 5}, Config{})
	require.NoError(t, err)
	assert.Len(t, a.Shear(), 2000)
}

func TestAccessorsReturnCopies(t *testing.T) {
	a, err := New([]load.Load{uniform(1, 0, 5)}, []float64{5, 0}, DefaultConfig())
	require.NoError(t, err)

	m := a.Moment()
	m[10] = 1e9
	assert.NotEqual(t, 1e9, a.Moment()[10])

	s := a.Supports()
	s[0] = 99
	assert.Equal(t, []float64{0, 5}, a.Supports())
}

func TestConcurrentAccess(t *testing.T) {
	cfg := Config{ElasticModulus: 210000, Inertia: 3265e4}
	a, err := New([]load.Load{uniform(19.575, 0, 12000)}, []float64{0, 3000, 6000, 9000, 12000}, cfg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]float64, 8)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := a.Deflection()
			if err == nil {
				results[i] = d
			}
		}()
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}

func TestEquationsAndSubsystems(t *testing.T) {
	a, err := New([]load.Load{uniform(1000, 4, 8)}, []float64{0, 4, 8, 12}, DefaultConfig())
	require.NoError(t, err)

	eq := a.Equations()
	require.NotNil(t, eq.Coefficients)
	assert.Equal(t, []float64{4, 8}, eq.Interior)
	assert.Len(t, a.Subsystems(), 2)
	assert.Len(t, a.Spans(), 3)
	assert.InDelta(t, 4000, a.TotalLoad(), 1e-9)
}

func TestLoggerReceivesStages(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	a, err := New([]load.Load{uniform(1, 0, 8)}, []float64{0, 4, 8}, DefaultConfig(), WithLogger(zap.New(core)))
	require.NoError(t, err)
	a.Moment()

	var messages []string
	for _, e := range logs.All() {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "beam decomposed")
	assert.Contains(t, messages, "support moments solved")
	assert.Contains(t, messages, "reactions solved")
	assert.Contains(t, messages, "fields reconstructed")
}

func TestGoverning(t *testing.T) {
	_, ok := Governing(nil)
	assert.False(t, ok)

	g, ok := Governing([]SpanExtreme{{Index: 0, Value: 3}, {Index: 1, Value: -7}, {Index: 2, Value: 7}})
	require.True(t, ok)
	assert.Equal(t, 1, g.Index)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
