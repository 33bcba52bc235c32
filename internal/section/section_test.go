package section

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectangleProperties(t *testing.T) {
	props := Rectangle(300, 500).CalculateProperties()

	assert.InDelta(t, 150000.0, props.Area, 1e-9)
	assert.InDelta(t, 150.0, props.CentroidX, 1e-9)
	assert.InDelta(t, 250.0, props.CentroidY, 1e-9)
	assert.InDelta(t, 300.0, props.Width, 1e-9)
	assert.InDelta(t, 500.0, props.Height, 1e-9)

	// bh³/12 and hb³/12
	assert.InDelta(t, 3.125e9, props.Ixx, 1)
	assert.InDelta(t, 1.125e9, props.Iyy, 1)
	assert.InDelta(t, 312500.0, props.InertiaCm4(), 1e-4)
	assert.InDelta(t, 1.25e7, props.SectionModulusTop, 1e-3)
	assert.InDelta(t, 1.25e7, props.SectionModulusBottom, 1e-3)
}

func TestOrientationDoesNotMatter(t *testing.T) {
	ccw := Rectangle(200, 400)
	cw := &Section{Vertices: []Point{{0, 0}, {0, 400}, {200, 400}, {200, 0}}}

	a, b := ccw.CalculateProperties(), cw.CalculateProperties()
	assert.InDelta(t, a.Area, b.Area, 1e-9)
	assert.InDelta(t, a.CentroidY, b.CentroidY, 1e-9)
	assert.InDelta(t, a.Ixx, b.Ixx, 1)
}

func TestOffsetOrigin(t *testing.T) {
	s := &Section{Vertices: []Point{{1000, -200}, {1300, -200}, {1300, 300}, {1000, 300}}}
	props := s.CalculateProperties()
	assert.InDelta(t, 50.0, props.CentroidY, 1e-9)
	assert.InDelta(t, 3.125e9, props.Ixx, 10)
}

func TestTeeProperties(t *testing.T) {
	// Flange 600x100 over a 300x400 web
	props := Tee(600, 100, 300, 500).CalculateProperties()

	assert.InDelta(t, 180000.0, props.Area, 1e-6)
	// (60000*450 + 120000*200) / 180000
	assert.InDelta(t, 283.333, props.CentroidY, 1e-3)

	flange := 600*100.0*100*100/12 + 60000*(450-283.3333333)*(450-283.3333333)
	web := 300*400.0*400*400/12 + 120000*(283.3333333-200)*(283.3333333-200)
	assert.InDelta(t, flange+web, props.Ixx, 1e3)
	assert.Greater(t, props.SectionModulusTop, props.SectionModulusBottom)
}

func TestWidthAtDepth(t *testing.T) {
	s := Tee(600, 100, 300, 500)
	assert.InDelta(t, 600.0, s.WidthAtDepth(50), 1e-9)
	assert.InDelta(t, 300.0, s.WidthAtDepth(300), 1e-9)
	assert.Zero(t, s.WidthAtDepth(600))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Rectangle(300, 500).Validate())

	tests := []struct {
		name string
		s    Section
		msg  string
	}{
		{"too few", Section{Vertices: []Point{{0, 0}, {1, 1}}}, "at least 3"},
		{"collinear", Section{Vertices: []Point{{0, 0}, {1, 0}, {2, 0}}}, "positive area"},
		{"repeated", Section{Vertices: []Point{{0, 0}, {1, 0}, {1, 0}, {1, 1}}}, "repeats"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rect.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: R-1
vertices:
  - {x: 0, y: 0}
  - {x: 300, y: 0}
  - {x: 300, y: 500}
  - {x: 0, y: 500}
`), 0644))

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "R-1", s.Name)
	assert.Len(t, s.Vertices, 4)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("vertices: [{x: 0, y: 0}]\n"), 0644))
	_, err = LoadFromFile(bad)
	assert.ErrorContains(t, err, "invalid section")

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
