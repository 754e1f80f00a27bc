package geometry

import "math"

// collinearTolerance is the relative cross-product magnitude below which
// three points are treated as collinear.
const collinearTolerance = 1e-12

// SignedArea returns the shoelace area of a closed polygon. It is positive
// for counter-clockwise winding.
func SignedArea(polygon []Point2D) float64 {
	n := len(polygon)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += polygon[i].Cross(polygon[(i+1)%n])
	}
	return sum / 2
}

// Area returns the unsigned area of a closed polygon.
func Area(polygon []Point2D) float64 {
	return math.Abs(SignedArea(polygon))
}

// IsSimple reports whether no two non-adjacent edges of the closed polygon
// touch or cross.
func IsSimple(polygon []Point2D) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a1, a2 := polygon[i], polygon[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Adjacent edges share a vertex by construction.
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1, b2 := polygon[j], polygon[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

// Dedupe returns the polygon without consecutive repeated vertices,
// including a closing vertex equal to the first.
func Dedupe(polygon []Point2D) []Point2D {
	out := make([]Point2D, 0, len(polygon))
	for _, p := range polygon {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

// DropCollinear removes vertices lying on the straight line through their
// neighbours.
func DropCollinear(polygon []Point2D) []Point2D {
	out := make([]Point2D, len(polygon))
	copy(out, polygon)
	for changed := true; changed && len(out) > 3; {
		changed = false
		n := len(out)
		for i := 0; i < n; i++ {
			prev, cur, next := out[(i+n-1)%n], out[i], out[(i+1)%n]
			if isCollinear(prev, cur, next) {
				out = append(out[:i], out[i+1:]...)
				changed = true
				break
			}
		}
	}
	return out
}

func isCollinear(a, b, c Point2D) bool {
	scale := distSq(a, b) + distSq(b, c)
	return math.Abs(crossProduct(a, b, c)) <= collinearTolerance*scale
}

// segmentsIntersect reports whether closed segments p1-p2 and q1-q2 share
// at least one point.
func segmentsIntersect(p1, p2, q1, q2 Point2D) bool {
	d1 := crossProduct(q1, q2, p1)
	d2 := crossProduct(q1, q2, p2)
	d3 := crossProduct(p1, p2, q1)
	d4 := crossProduct(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	return (d1 == 0 && onSegment(q1, q2, p1)) ||
		(d2 == 0 && onSegment(q1, q2, p2)) ||
		(d3 == 0 && onSegment(p1, p2, q1)) ||
		(d4 == 0 && onSegment(p1, p2, q2))
}

// onSegment reports whether collinear point p lies within the box of a-b.
func onSegment(a, b, p Point2D) bool {
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}

// crossProduct computes the cross product of vectors OA and OB.
func crossProduct(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// distSq computes the squared distance between two points.
func distSq(a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}
