package via

import (
	"math"

	"gds2fast/internal/layout"
	"gds2fast/pkg/geometry"
)

// EndMatch is the closest pair of ends between two paths.
type EndMatch struct {
	EndA, EndB layout.End
	DistSq     float64 // squared distance between the two endpoints
}

// MatchEnds finds the pair of endpoints, one from each path, that lie
// closest together. Candidates are tried start-start, start-end, end-start,
// end-end and the first minimum wins.
func MatchEnds(a, b layout.Path) EndMatch {
	best := EndMatch{DistSq: math.Inf(1)}
	for _, ea := range []layout.End{layout.Start, layout.Finish} {
		for _, eb := range []layout.End{layout.Start, layout.Finish} {
			d := a.Endpoint(ea).DistanceSq(b.Endpoint(eb))
			if d < best.DistSq {
				best = EndMatch{EndA: ea, EndB: eb, DistSq: d}
			}
		}
	}
	return best
}

// SearchBounds returns the region in which via cuts join the matched ends:
// the box spanned by the two endpoints, grown on every side by half the wider
// of the two end segments.
func SearchBounds(a, b layout.Path, m EndMatch) geometry.Rect {
	pa, pb := a.Endpoint(m.EndA), b.Endpoint(m.EndB)
	half := math.Max(a.EndWidth(m.EndA), b.EndWidth(m.EndB)) / 2
	return geometry.RectFromBounds(
		math.Min(pa.X, pb.X)-half,
		math.Min(pa.Y, pb.Y)-half,
		math.Max(pa.X, pb.X)+half,
		math.Max(pa.Y, pb.Y)+half,
	)
}

// Members returns the indices of the centroids inside bounds, edges
// included, in input order.
func Members(bounds geometry.Rect, centroids []geometry.Point2D) []int {
	var in []int
	for i, c := range centroids {
		if bounds.Contains(c) {
			in = append(in, i)
		}
	}
	return in
}
