package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		h, s, v float64
		want    color.RGBA
	}{
		{0, 1, 1, color.RGBA{255, 0, 0, 255}},
		{120, 1, 1, color.RGBA{0, 255, 0, 255}},
		{240, 1, 1, color.RGBA{0, 0, 255, 255}},
		{360, 1, 1, color.RGBA{255, 0, 0, 255}},
		{-120, 1, 1, color.RGBA{0, 0, 255, 255}},
		{42, 0, 1, White},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HSVToRGB(tt.h, tt.s, tt.v), "h=%v s=%v v=%v", tt.h, tt.s, tt.v)
	}
}

func TestRGBToHSVInvertsSpectrum(t *testing.T) {
	for i := 0; i < 6; i++ {
		h, s, v := RGBToHSV(Spectrum(i, 6))
		assert.InDelta(t, float64(i)*60, h, 1, "layer %d", i)
		assert.InDelta(t, 0.65, s, 0.01)
		assert.InDelta(t, 0.9, v, 0.01)
	}
}

func TestSpectrumWraps(t *testing.T) {
	assert.Equal(t, Spectrum(1, 4), Spectrum(5, 4))
	assert.Equal(t, Spectrum(0, 1), Spectrum(0, 0))
}
