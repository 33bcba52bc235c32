package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/cbeam/internal/beamfile"
)

const twoSpanYAML = `name: C-1
supports: [0, 4, 8]
inertia: 5000
loads:
  - kind: triangular
    magnitude_start: 0
    magnitude_end: 1400
    start: 0
    end: 4
`

const casesYAML = `name: G-2
supports: [0, 4, 8]
loads:
  - {kind: uniform, magnitude: 1000, start: 0, end: 8, case: D}
  - {kind: uniform, magnitude: 500, start: 4, end: 8, case: L}
`

func writeBeam(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseLoads(t *testing.T) {
	u, err := parseUniform("19575, 0, 12")
	require.NoError(t, err)
	assert.Equal(t, beamfile.LoadDef{Kind: "uniform", Magnitude: 19575, Start: 0, End: 12}, u)

	tri, err := parseTriangular("0,1400,0,4")
	require.NoError(t, err)
	assert.Equal(t, beamfile.LoadDef{Kind: "triangular", MagnitudeStart: 0, MagnitudeEnd: 1400, Start: 0, End: 4}, tri)

	_, err = parseUniform("1,2")
	assert.ErrorContains(t, err, "expected 3")
	_, err = parseTriangular("1,2,x,4")
	assert.ErrorContains(t, err, "not a number")
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	file := writeBeam(t, dir, "c1.yaml", twoSpanYAML)

	out, err := execute(t, "analyze",
		"-f", file,
		"--at", "4",
		"--show-system",
		"--diagram",
		"--output", filepath.Join(dir, "c1.png"),
		"--xlsx", filepath.Join(dir, "c1.xlsx"),
		"--pdf", filepath.Join(dir, "c1.pdf"),
	)
	require.NoError(t, err)

	assert.Contains(t, out, "BEAM: C-1")
	assert.Contains(t, out, "SUPPORT MOMENTS AND REACTIONS")
	assert.Contains(t, out, "-746.67")
	assert.Contains(t, out, "2240.00")
	assert.Contains(t, out, "THREE-MOMENT SYSTEM")
	assert.Contains(t, out, "VALUES AT x = 4.000 m")
	assert.Contains(t, out, "MOMENT (N·m)")
	assert.Contains(t, out, "GOVERNING VALUES")

	for _, name := range []string{"c1.png", "c1.xlsx", "c1.pdf"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestComboCommand(t *testing.T) {
	file := writeBeam(t, t.TempDir(), "g2.yaml", casesYAML)

	out, err := execute(t, "combo", "-f", file, "--simplified", "--all")
	require.NoError(t, err)

	assert.Contains(t, out, "LOAD COMBINATIONS")
	assert.Contains(t, out, "← GOVERNS")
	assert.Contains(t, out, "Governing Combination: 2 (1.2D + 1.6L)")
	assert.Contains(t, out, "SUPPORT ENVELOPE")
	assert.Contains(t, out, "-3200.00")
}

func TestAnalyzeFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeBeam(t, dir, "c1.yaml", twoSpanYAML)
	bad := writeBeam(t, dir, "bad.yaml", "supports: [0]\n")
	other := writeBeam(t, dir, "g2.yaml", casesYAML)

	results, err := analyzeFiles(context.Background(), []string{good, bad, other}, beamfile.Defaults{}, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, good, results[0].File)
	assert.Equal(t, "C-1", results[0].Name)
	require.NoError(t, results[0].Err)
	assert.Len(t, results[0].Result.MaxDeflections, 2)

	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Result)

	require.NoError(t, results[2].Err)
	assert.Equal(t, "G-2", results[2].Name)
	assert.Nil(t, results[2].Result.MaxDeflections)

	var buf bytes.Buffer
	printBatch(&buf, results)
	assert.Contains(t, buf.String(), "ERROR:")
	assert.Contains(t, buf.String(), "C-1")
}

func TestAnalyzeFilesCancelled(t *testing.T) {
	file := writeBeam(t, t.TempDir(), "c1.yaml", twoSpanYAML)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzeFiles(ctx, []string{file}, beamfile.Defaults{}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSectionCommand(t *testing.T) {
	out, err := execute(t, "section", "--tee", "600,100,300,500")
	require.NoError(t, err)

	assert.Contains(t, out, "CROSS-SECTION PROPERTIES")
	assert.Contains(t, out, "180000 mm²")
	assert.Contains(t, out, "I = 415000.00 cm⁴")
	// the centroid lies in the web
	assert.Regexp(t, `Width at centroid:\s+300 mm`, out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cbeam v")
}
