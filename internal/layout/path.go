package layout

import (
	"fmt"
	"math"

	"gds2fast/pkg/geometry"

	"gonum.org/v1/gonum/floats"
)

// parallelTolerance is the |sin| below which consecutive segments are
// treated as parallel when joining offset edges.
const parallelTolerance = 1e-9

// MiterLimit caps how far an outer mitered corner may reach from its
// centerline point, in half-widths. Sharper turns get a bevel.
const MiterLimit = 2.0

// Path is a trace: a centerline with one width per segment on a single
// conductor layer.
type Path struct {
	Layer  int                `json:"layer"`
	Points []geometry.Point2D `json:"points"`
	Widths []float64          `json:"widths"`
}

// Validate reports a path that cannot be meshed: fewer than two points, a
// width count that does not match the segments, a non-positive width or a
// zero-length segment. Errors wrap ErrInvalidLayout.
func (p Path) Validate() error {
	if len(p.Points) < 2 {
		return fmt.Errorf("%w: %d points, need at least 2", ErrInvalidLayout, len(p.Points))
	}
	if len(p.Widths) != p.Segments() {
		return fmt.Errorf("%w: %d widths for %d segments", ErrInvalidLayout, len(p.Widths), p.Segments())
	}
	for i, w := range p.Widths {
		if w <= 0 {
			return fmt.Errorf("%w: segment %d width %g is not positive", ErrInvalidLayout, i, w)
		}
	}
	for i := 0; i < p.Segments(); i++ {
		if p.SegmentLength(i) == 0 {
			return fmt.Errorf("%w: segment %d has zero length at (%g, %g)", ErrInvalidLayout, i, p.Points[i].X, p.Points[i].Y)
		}
	}
	return nil
}

// Segments returns the number of centerline segments.
func (p Path) Segments() int {
	return len(p.Points) - 1
}

// SegmentLength returns the length of segment i.
func (p Path) SegmentLength(i int) float64 {
	return p.Points[i].Distance(p.Points[i+1])
}

// Length returns the total centerline length.
func (p Path) Length() float64 {
	lengths := make([]float64, 0, p.Segments())
	for i := 0; i < p.Segments(); i++ {
		lengths = append(lengths, p.SegmentLength(i))
	}
	return floats.Sum(lengths)
}

// End identifies one end of a path.
type End int

const (
	Start End = iota
	Finish
)

func (e End) String() string {
	if e == Start {
		return "start"
	}
	return "end"
}

// Endpoint returns the centerline point at end e.
func (p Path) Endpoint(e End) geometry.Point2D {
	if e == Start {
		return p.Points[0]
	}
	return p.Points[len(p.Points)-1]
}

// EndpointIndex returns the index of the centerline point at end e.
func (p Path) EndpointIndex(e End) int {
	if e == Start {
		return 0
	}
	return len(p.Points) - 1
}

// EndWidth returns the width of the segment touching end e.
func (p Path) EndWidth(e End) float64 {
	if e == Start {
		return p.Widths[0]
	}
	return p.Widths[len(p.Widths)-1]
}

// Outline returns the closed polygon covered by the path: the centerline
// offset by half the segment width on both sides, with mitered joins (bevelled
// past MiterLimit on the outside of a turn) and flat ends. The result winds counter-clockwise for the usual case of a path
// that does not fold back on itself.
func (p Path) Outline() []geometry.Point2D {
	if len(p.Points) < 2 || len(p.Widths) < p.Segments() {
		return nil
	}
	right := p.offsetSide(-1)
	left := p.offsetSide(1)

	out := make([]geometry.Point2D, 0, len(right)+len(left))
	out = append(out, right...)
	for i := len(left) - 1; i >= 0; i-- {
		out = append(out, left[i])
	}
	return out
}

// offsetSide returns the offset edge on one side: sign 1 is left of the
// direction of travel, -1 is right.
func (p Path) offsetSide(sign float64) []geometry.Point2D {
	n := p.Segments()
	dirs := make([]geometry.Point2D, n)
	for i := 0; i < n; i++ {
		d := p.Points[i+1].Sub(p.Points[i])
		if l := d.Norm(); l > 0 {
			d = d.Scale(1 / l)
		}
		dirs[i] = d
	}
	normal := func(i int) geometry.Point2D {
		return geometry.Point2D{X: -dirs[i].Y, Y: dirs[i].X}.Scale(sign * p.Widths[i] / 2)
	}

	side := []geometry.Point2D{p.Points[0].Add(normal(0))}
	for k := 1; k < n; k++ {
		a := p.Points[k].Add(normal(k - 1))
		b := p.Points[k].Add(normal(k))

		denom := dirs[k-1].Cross(dirs[k])
		if math.Abs(denom) < parallelTolerance {
			side = append(side, a)
			if a != b {
				side = append(side, b)
			}
			continue
		}
		t := b.Sub(a).Cross(dirs[k]) / denom
		m := a.Add(dirs[k-1].Scale(t))
		limit := MiterLimit * math.Max(p.Widths[k-1], p.Widths[k]) / 2
		if sign*denom < 0 && m.Distance(p.Points[k]) > limit {
			side = append(side, a, b)
			continue
		}
		side = append(side, m)
	}
	return append(side, p.Points[n].Add(normal(n-1)))
}
