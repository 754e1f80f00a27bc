package freq

import (
	"testing"

	"gds2fast/internal/layout"
	"gds2fast/pkg/geometry"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func straight(length float64) layout.Path {
	return layout.Path{Points: []geometry.Point2D{{X: 0, Y: 0}, {X: length, Y: 0}}, Widths: []float64{1}}
}

func TestEstimate(t *testing.T) {
	b, err := Estimate([]layout.Path{straight(100)}, 3.9)
	require.NoError(t, err)

	assert.Equal(t, 100.0, b.TotalLength)
	assert.Equal(t, 1.5e11, b.FMax)
	assert.InEpsilon(t, 7.9753e11, b.Resonance, 1e-4)
	assert.Equal(t, 5, b.Segments)
}

func TestTotalLengthSumsAllPaths(t *testing.T) {
	paths := []layout.Path{
		straight(30),
		{Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 14}}, Widths: []float64{1, 1}},
	}
	assert.InDelta(t, 45, TotalLength(paths), 1e-12)

	b, err := Estimate(paths, 3.9)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Segments)
}

func TestEstimateWithoutConductor(t *testing.T) {
	_, err := Estimate(nil, 3.9)
	assert.ErrorIs(t, err, ErrNoConductor)

	_, err = Estimate([]layout.Path{{Points: []geometry.Point2D{{X: 1, Y: 1}, {X: 1, Y: 1}}, Widths: []float64{1}}}, 3.9)
	assert.ErrorIs(t, err, ErrNoConductor)
}

func TestRoundSignificant(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{151906, 150000},
		{7.649e9, 7.6e9},
		{0.012345, 0.012},
		{9.96e10, 1e11},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundSignificant(tt.in, 2), "round %g", tt.in)
	}
}

func TestFMaxScalesInverselyWithLength(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("doubling the length halves fmax", prop.ForAll(
		func(length float64) bool {
			one, err := Estimate([]layout.Path{straight(length)}, 3.9)
			if err != nil {
				return false
			}
			two, err := Estimate([]layout.Path{straight(length), straight(length)}, 3.9)
			if err != nil {
				return false
			}
			// Two-digit rounding moves each value by at most 5%.
			ratio := one.FMax / two.FMax
			return ratio > 2*0.95/1.05 && ratio < 2*1.05/0.95 &&
				two.Resonance*2 > one.Resonance*0.999999 && two.Resonance*2 < one.Resonance*1.000001
		},
		gen.Float64Range(1, 1e5),
	))

	properties.TestingRun(t)
}
