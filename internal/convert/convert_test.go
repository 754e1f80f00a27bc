package convert

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gds2fast/internal/freq"
	"gds2fast/internal/layout"
	"gds2fast/internal/process"
	"gds2fast/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two Metal1 pins at the ends of an L that climbs to Metal2 through two
// Via1 cuts.
const inductor = `
cell: ind_l
polygons:
  - {layer: 68, purpose: 16, points: [[-1, -1], [1, -1], [1, 1], [-1, 1]]}
  - {layer: 69, purpose: 16, points: [[99, 79], [101, 79], [101, 81], [99, 81]]}
  - {layer: 68, purpose: 44, points: [[99.5, -0.5], [99.7, -0.5], [99.7, -0.3], [99.5, -0.3]]}
  - {layer: 68, purpose: 44, points: [[100.3, 0.3], [100.5, 0.3], [100.5, 0.5], [100.3, 0.5]]}
paths:
  - {layer: 68, points: [[0, 0], [100, 0]], widths: [4]}
  - {layer: 69, points: [[100, 0], [100, 80]], widths: [2]}
labels:
  - {text: P, layer: 68, purpose: 5, position: [0, 0.5]}
  - {text: M, layer: 69, purpose: 5, position: [100, 80.5]}
`

func parse(t *testing.T, doc string) *layout.Flat {
	t.Helper()
	f, err := layout.Parse([]byte(doc))
	require.NoError(t, err)
	return f
}

func TestAnalyze(t *testing.T) {
	a := Analyze(parse(t, inductor), process.SKY130())

	assert.Empty(t, a.Warnings)
	require.Len(t, a.Ports, 2)
	assert.Equal(t, "P", a.Ports[0].Name)
	assert.Equal(t, "M", a.Ports[1].Name)
	require.Len(t, a.Clusters, 1)
	assert.Len(t, a.Clusters[0].Members, 2)
}

func TestFasterCapEndToEnd(t *testing.T) {
	res, err := FasterCap(parse(t, inductor), process.SKY130())
	require.NoError(t, err)
	assert.Equal(t, []string{"P", "M"}, res.Mesh.PortNames())
	require.Len(t, res.Mesh.Vias, 1)
	assert.Len(t, res.Mesh.Vias[0].Panels, 8)

	out := filepath.Join(t.TempDir(), OutputName("ind_l.gds", CapSuffix))
	require.NoError(t, WriteFile(out, res.Mesh))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "* ind_l\n"))
	assert.Contains(t, text, "\n* VIAS Via1\n")
	assert.Contains(t, text, "\nQ P ")
	assert.Contains(t, text, "\nQ M ")
	assert.True(t, strings.HasSuffix(text, "END\n"))
}

func TestFastHenryEndToEnd(t *testing.T) {
	res, err := FastHenry(parse(t, inductor), process.SKY130())
	require.NoError(t, err)
	require.Len(t, res.Graph.Externals, 1)
	assert.Equal(t, "N0", res.Graph.Externals[0].Plus)
	assert.Equal(t, "N3", res.Graph.Externals[0].Minus)
	require.Len(t, res.Graph.Vias, 1)
	assert.InDelta(t, 0.375/2, res.Graph.Vias[0].Edge.Rho, 1e-12)

	out := filepath.Join(t.TempDir(), OutputName("ind_l.gds", IndSuffix))
	require.NoError(t, WriteFile(out, res.Graph))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), ".external N0 N3 1\n")
	assert.True(t, strings.HasSuffix(string(data), ".end\n"))
}

func TestFatalErrorsWriteNothing(t *testing.T) {
	selfCrossing := `
paths:
  - {layer: 68, points: [[0, 0], [20, 0], [20, 10], [10, -10]], widths: [1, 1, 1]}
`
	_, err := FasterCap(parse(t, selfCrossing), process.SKY130())
	assert.ErrorIs(t, err, geometry.ErrNotSimple)

	repeated := &layout.Flat{Name: "dup", PathList: []layout.Path{{
		Layer:  68,
		Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 100, Y: 0}},
		Widths: []float64{10, 10},
	}}}
	_, err = FasterCap(repeated, process.SKY130())
	assert.ErrorIs(t, err, layout.ErrInvalidLayout)
	_, err = FastHenry(repeated, process.SKY130())
	assert.ErrorIs(t, err, layout.ErrInvalidLayout)

	_, err = FasterCap(parse(t, "cell: empty"), process.SKY130())
	assert.ErrorIs(t, err, freq.ErrNoConductor)
	_, err = FastHenry(parse(t, "cell: empty"), process.SKY130())
	assert.ErrorIs(t, err, freq.ErrNoConductor)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "ind_out_fastercap.qui", OutputName("/data/gds/ind.gds", CapSuffix))
	assert.Equal(t, "ind.v2_out_fasthenry.inp", OutputName("ind.v2.yaml", IndSuffix))
	assert.Equal(t, "ind_out_fasthenry.inp", OutputName("ind", IndSuffix))
}

type failingWriterTo struct{}

func (failingWriterTo) WriteTo(w io.Writer) (int64, error) {
	n, _ := io.WriteString(w, "partial")
	return int64(n), errors.New("boom")
}

func TestWriteFileReportsWriteErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.qui")
	err := WriteFile(out, failingWriterTo{})
	assert.ErrorContains(t, err, "boom")

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "x.qui"), failingWriterTo{})
	assert.ErrorContains(t, err, "create")
}

func TestReportRoundTrip(t *testing.T) {
	stack := process.SKY130()
	a := Analyze(parse(t, inductor), stack)
	a.Warnings = append(a.Warnings, errors.New("example warning"))

	dir := t.TempDir()
	path := filepath.Join(dir, "ind_l.report.json")
	r := NewReport("gds2fasthenry", "ind_l", stack, a)
	r.SetPaths(path, filepath.Join(dir, "ind_l.yaml"), filepath.Join(dir, "ind_l"+IndSuffix))
	require.NoError(t, r.Save(path))

	got, err := LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, ReportVersion, got.Version)
	assert.Equal(t, "sky130", got.Stack)
	assert.Equal(t, "ind_l.yaml", got.InputPath)
	assert.Equal(t, "ind_l"+IndSuffix, got.OutputPath)
	assert.Len(t, got.Ports, 2)
	require.Len(t, got.Clusters, 1)
	assert.Equal(t, "0_1", got.Clusters[0].Name)
	assert.Equal(t, 2, got.Clusters[0].Members)
	assert.Equal(t, []string{"example warning"}, got.Warnings)
}
