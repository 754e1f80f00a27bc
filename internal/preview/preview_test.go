package preview

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gds2fast/internal/layout"
	"gds2fast/internal/process"
	"gds2fast/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wire = `
cell: wire
paths:
  - {layer: 68, points: [[0, 0], [100, 0]], widths: [20]}
  - {layer: 69, points: [[100, 0], [100, 100]], widths: [20]}
polygons:
  - {layer: 68, purpose: 44, points: [[95, -5], [105, -5], [105, 5], [95, 5]]}
`

func TestRenderSize(t *testing.T) {
	f, err := layout.Parse([]byte(wire))
	require.NoError(t, err)

	img, err := Render(f, process.SKY130(), 200)
	require.NoError(t, err)

	// The 110 x 110 bounding box fills the longer side exactly.
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRenderColoursConductors(t *testing.T) {
	f, err := layout.Parse([]byte(wire))
	require.NoError(t, err)

	img, err := Render(f, process.SKY130(), 200)
	require.NoError(t, err)

	back := colorutil.Background
	assert.Equal(t, back, img.RGBAAt(0, 0), "margin stays background")

	// Bounds are (0,-10)..(110,100) at 184/110 pixels per unit. Metal1 runs
	// along y=0, near the bottom of the image once y is flipped.
	scale := 184.0 / 110
	x := int(margin + 40*scale)
	y := int(200 - margin - 10*scale)
	metal1 := blend(back, colorutil.Spectrum(1, 6), BlendNormal, conductorOpacity)
	assert.Equal(t, metal1, img.RGBAAt(x, y))

	// Metal2 runs up the right edge.
	x = int(margin + 100*scale)
	y = int(200 - margin - 90*scale)
	metal2 := blend(back, colorutil.Spectrum(2, 6), BlendNormal, conductorOpacity)
	assert.Equal(t, metal2, img.RGBAAt(x, y))
	assert.NotEqual(t, metal1, metal2)

	// Top left corner of the bounding box is empty.
	assert.Equal(t, back, img.RGBAAt(margin+10, margin+10))
}

func TestRenderEmptyLayout(t *testing.T) {
	f, err := layout.Parse([]byte("cell: empty"))
	require.NoError(t, err)

	_, err = Render(f, process.SKY130(), 200)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestBlendScreenNeverDarkens(t *testing.T) {
	dst := color.RGBA{100, 50, 200, 255}
	got := blend(dst, color.RGBA{80, 80, 80, 255}, BlendScreen, 1)
	assert.GreaterOrEqual(t, got.R, dst.R)
	assert.GreaterOrEqual(t, got.G, dst.G)
	assert.GreaterOrEqual(t, got.B, dst.B)

	assert.Equal(t, dst, blend(dst, color.RGBA{255, 0, 0, 255}, BlendNormal, 0))
}

func TestWritePNG(t *testing.T) {
	f, err := layout.Parse([]byte(wire))
	require.NoError(t, err)
	img, err := Render(f, process.SKY130(), 64)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "wire.png")
	require.NoError(t, WritePNG(path, img))

	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()
	decoded, err := png.Decode(r)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
