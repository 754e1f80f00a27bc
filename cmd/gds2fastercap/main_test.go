package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gds2fast/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A Metal1 pin with no label: extraction skips the layer with one warning.
const unlabelled = `
cell: line
polygons:
  - {layer: 68, purpose: 16, points: [[-1, -1], [1, -1], [1, 1], [-1, 1]]}
paths:
  - {layer: 68, points: [[0, 0], [100, 0]], widths: [10]}
`

func TestNoArgumentsPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout.String(), "Usage: gds2fastercap"))
	assert.Contains(t, stdout.String(), "-stack")
	assert.Empty(t, stderr.String())
}

func TestWarningsAreLoggedOnce(t *testing.T) {
	t.Cleanup(func() { logging.SetLogger(nil) })
	dir := t.TempDir()
	input := filepath.Join(dir, "line.yaml")
	require.NoError(t, os.WriteFile(input, []byte(unlabelled), 0644))
	out := filepath.Join(dir, "line.qui")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-o", out, input}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Equal(t, 1, strings.Count(stderr.String(), "level=WARN"))
	assert.Contains(t, stderr.String(), "skipping ports on layer")
	assert.NotContains(t, stdout.String(), "port extraction on Metal1")
	assert.Contains(t, stdout.String(), "1 warnings logged\n")
	assert.FileExists(t, out)
}
