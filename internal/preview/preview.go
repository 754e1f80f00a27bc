// Package preview rasterizes a flattened layout to a PNG so a conversion can
// be checked by eye: one colour per conductor layer, vias on top.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"gds2fast/internal/layout"
	"gds2fast/internal/process"
	"gds2fast/pkg/colorutil"
	"gds2fast/pkg/geometry"

	"golang.org/x/image/vector"
)

// margin is the blank border around the drawing, in pixels.
const margin = 8

// ErrEmpty is returned for a layout with nothing to draw.
var ErrEmpty = errors.New("nothing to draw")

// Conductor layers are drawn translucent so crossings stay visible.
const conductorOpacity = 0.7

// transform maps layout coordinates to pixels with y pointing down.
type transform struct {
	bounds geometry.Rect
	scale  float64
	height int
}

func (t transform) apply(p geometry.Point2D) (float32, float32) {
	x := margin + (p.X-t.bounds.X)*t.scale
	y := float64(t.height) - margin - (p.Y-t.bounds.Y)*t.scale
	return float32(x), float32(y)
}

// Render draws src into an image whose longer side is size pixels.
func Render(src layout.Source, stack *process.Stack, size int) (*image.RGBA, error) {
	var all []geometry.Point2D
	outlines := make([][]geometry.Point2D, 0, len(src.Paths()))
	for _, p := range src.Paths() {
		o := p.Outline()
		outlines = append(outlines, o)
		all = append(all, o...)
	}
	for _, p := range src.AllPolygons() {
		all = append(all, p.Points...)
	}
	if len(all) == 0 {
		return nil, ErrEmpty
	}
	if size <= 2*margin {
		return nil, fmt.Errorf("preview size %d too small", size)
	}

	bounds := geometry.BoundingBox(all)
	extent := math.Max(bounds.Width, bounds.Height)
	if extent == 0 {
		extent = 1
	}
	t := transform{bounds: bounds, scale: float64(size-2*margin) / extent}
	w := pixels(bounds.Width * t.scale)
	h := pixels(bounds.Height * t.scale)
	t.height = h

	purposes := stack.Purposes()
	comp := NewComposite(w, h)
	layers := stack.ConductorLayers()
	for i, layer := range layers {
		var shapes [][]geometry.Point2D
		for k, p := range src.Paths() {
			if p.Layer == layer {
				shapes = append(shapes, outlines[k])
			}
		}
		for _, purpose := range []int{purposes.Drawing, purposes.Pin} {
			for _, p := range src.Polygons(layer, purpose) {
				shapes = append(shapes, p.Points)
			}
		}
		if len(shapes) == 0 {
			continue
		}
		comp.AddLayer(&Layer{
			Name:    stack.MaterialName(layer, purposes.Drawing),
			Color:   colorutil.Spectrum(i, len(layers)),
			Opacity: conductorOpacity,
			Mode:    BlendNormal,
			Mask:    rasterize(w, h, t, shapes),
		})
	}

	var cuts [][]geometry.Point2D
	for _, layer := range layers {
		for _, p := range src.Polygons(layer, purposes.Via) {
			cuts = append(cuts, p.Points)
		}
	}
	if len(cuts) > 0 {
		comp.AddLayer(&Layer{Name: "vias", Color: colorutil.White, Opacity: 1, Mode: BlendScreen, Mask: rasterize(w, h, t, cuts)})
	}
	return comp.Render(), nil
}

// pixels rounds a scaled extent up to whole pixels, ignoring float noise,
// and adds the margins.
func pixels(v float64) int {
	return int(math.Ceil(v-1e-6)) + 2*margin
}

// rasterize fills the closed shapes into a coverage mask.
func rasterize(w, h int, t transform, shapes [][]geometry.Point2D) *image.Alpha {
	r := vector.NewRasterizer(w, h)
	for _, s := range shapes {
		if len(s) < 3 {
			continue
		}
		r.MoveTo(t.apply(s[0]))
		for _, p := range s[1:] {
			r.LineTo(t.apply(p))
		}
		r.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
