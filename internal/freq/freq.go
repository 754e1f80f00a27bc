// Package freq estimates solver frequency limits from the total conductor
// length of a layout.
package freq

import (
	"errors"
	"math"
	"strconv"

	"gds2fast/internal/layout"

	"gonum.org/v1/gonum/floats"
)

const (
	// SpeedOfLight in m/s.
	SpeedOfLight = 3e8

	// SegmentLength is the ground-plane mesh pitch in um.
	SegmentLength = 20.0

	// FMin is the start of the frequency sweep in Hz.
	FMin = 1e6
)

// ErrNoConductor is returned for a layout without any path length.
var ErrNoConductor = errors.New("layout has no conductor length")

// Budget holds the frequency figures derived from the conductor length.
// They configure the solver and are not enforced.
type Budget struct {
	TotalLength float64 `json:"total_length"` // um
	FMax        float64 `json:"fmax"`         // Hz, two significant digits
	Resonance   float64 `json:"resonance"`    // Hz
	Segments    int     `json:"segments"`     // ground-plane segments per side
}

// TotalLength returns the summed centerline length of paths in um.
func TotalLength(paths []layout.Path) float64 {
	lengths := make([]float64, len(paths))
	for i, p := range paths {
		lengths[i] = p.Length()
	}
	return floats.Sum(lengths)
}

// Estimate derives the budget for paths embedded in a dielectric of relative
// permittivity er.
//
// FMax keeps the electrical length of all conductors under a tenth of a
// wavelength. Resonance is the rule-of-thumb self resonance: 70% of the
// frequency at which the length is three quarters of a wavelength.
func Estimate(paths []layout.Path, er float64) (Budget, error) {
	total := TotalLength(paths)
	if total <= 0 {
		return Budget{}, ErrNoConductor
	}
	meters := total * 1e-6
	n := math.Sqrt(er)

	return Budget{
		TotalLength: total,
		FMax:        RoundSignificant(SpeedOfLight/(10*meters*n), 2),
		Resonance:   0.7 * 0.75 * SpeedOfLight / (meters * n),
		Segments:    int(math.Ceil(total / SegmentLength)),
	}, nil
}

// RoundSignificant rounds x to digits significant decimal digits.
func RoundSignificant(x float64, digits int) float64 {
	if x == 0 || math.IsInf(x, 0) || math.IsNaN(x) || digits < 1 {
		return x
	}
	// The decimal round trip avoids the representation error of scaling by
	// a power of ten.
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'e', digits-1, 64), 64)
	return r
}
