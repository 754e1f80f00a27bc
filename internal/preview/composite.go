package preview

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"gds2fast/pkg/colorutil"
)

// BlendMode specifies how a layer mask is composited onto the layers below.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendScreen
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "Normal"
	case BlendScreen:
		return "Screen"
	default:
		return "Unknown"
	}
}

// Layer is one rasterized layer: a coverage mask drawn in a flat colour.
type Layer struct {
	Name    string
	Color   color.RGBA
	Opacity float64
	Mode    BlendMode
	Mask    *image.Alpha
}

// Composite stacks layer masks into a single image, bottom layer first.
type Composite struct {
	Width     int
	Height    int
	Layers    []*Layer
	BackColor color.Color
}

// NewComposite creates a new Composite with the specified dimensions.
func NewComposite(width, height int) *Composite {
	return &Composite{
		Width:     width,
		Height:    height,
		BackColor: colorutil.Background,
	}
}

// AddLayer adds a layer on top of the existing ones.
func (c *Composite) AddLayer(l *Layer) {
	c.Layers = append(c.Layers, l)
}

// Render produces the final composited image.
func (c *Composite) Render() *image.RGBA {
	result := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	draw.Draw(result, result.Bounds(), &image.Uniform{c.BackColor}, image.Point{}, draw.Src)

	for _, l := range c.Layers {
		if l == nil || l.Mask == nil {
			continue
		}
		c.compositeLayer(result, l)
	}
	return result
}

func (c *Composite) compositeLayer(dst *image.RGBA, l *Layer) {
	b := l.Mask.Bounds().Intersect(dst.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cover := float64(l.Mask.AlphaAt(x, y).A) / 255
			if cover == 0 {
				continue
			}
			dst.SetRGBA(x, y, blend(dst.RGBAAt(x, y), l.Color, l.Mode, cover*l.Opacity))
		}
	}
}

// blend mixes src over dst with the given coverage.
func blend(dst, src color.RGBA, mode BlendMode, alpha float64) color.RGBA {
	sf := [3]float64{float64(src.R) / 255, float64(src.G) / 255, float64(src.B) / 255}
	df := [3]float64{float64(dst.R) / 255, float64(dst.G) / 255, float64(dst.B) / 255}

	var rf [3]float64
	for i := range rf {
		switch mode {
		case BlendScreen:
			rf[i] = 1 - (1-sf[i])*(1-df[i])
		default:
			rf[i] = sf[i]
		}
		rf[i] = rf[i]*alpha + df[i]*(1-alpha)
	}
	return color.RGBA{
		R: uint8(math.Round(clamp(rf[0], 0, 1) * 255)),
		G: uint8(math.Round(clamp(rf[1], 0, 1) * 255)),
		B: uint8(math.Round(clamp(rf[2], 0, 1) * 255)),
		A: 255,
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
