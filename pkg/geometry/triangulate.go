package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerate is returned for polygons with fewer than three distinct,
	// non-collinear vertices.
	ErrDegenerate = errors.New("degenerate polygon")
	// ErrNotSimple is returned for self-intersecting polygons.
	ErrNotSimple = errors.New("polygon is not simple")
	// ErrNoEar is returned when no valid ear exists; this only happens for
	// input that violates the simple, counter-clockwise precondition.
	ErrNoEar = errors.New("no valid ear found")
)

// TriangulateStep cuts one ear off a counter-clockwise simple polygon.
// It returns the ear and a new point slice with exactly one vertex removed;
// the input is not modified.
//
// The ear base is tried greedily first: A,B are the first two points and C is
// whichever of the third or last point is closer to both. If that ear is
// reflex or encloses another vertex, the base moves to (last, first) with C
// taken from the second or second-to-last point. If neither candidate is a
// valid ear, the first valid ear in vertex order is used.
func TriangulateStep(pts []Point2D) (Triangle, []Point2D, error) {
	n := len(pts)
	if n < 3 {
		return Triangle{}, nil, ErrDegenerate
	}
	end := n - 1

	// First pairing: base pts[0], pts[1].
	a, b := pts[0], pts[1]
	if sumDistSq(pts[2], a, b) < sumDistSq(pts[end], a, b) {
		if tri := (Triangle{a, b, pts[2]}); isEar(tri, pts) {
			return tri, without(pts, 1), nil
		}
	} else if tri := (Triangle{a, b, pts[end]}); isEar(tri, pts) {
		return tri, without(pts, 0), nil
	}

	// Second pairing: base pts[end], pts[0].
	a, b = pts[end], pts[0]
	if sumDistSq(pts[1], a, b) < sumDistSq(pts[end-1], a, b) {
		if tri := (Triangle{a, b, pts[1]}); isEar(tri, pts) {
			return tri, without(pts, 0), nil
		}
	} else if tri := (Triangle{a, b, pts[end-1]}); isEar(tri, pts) {
		return tri, without(pts, end), nil
	}

	for i := 0; i < n; i++ {
		tri := Triangle{pts[(i+n-1)%n], pts[i], pts[(i+1)%n]}
		if isEar(tri, pts) {
			return tri, without(pts, i), nil
		}
	}
	return Triangle{}, nil, ErrNoEar
}

// Triangulate decomposes a simple polygon into non-overlapping triangles
// covering its area. Winding is normalised to counter-clockwise, repeated
// and collinear vertices are dropped, and a polygon with n remaining
// vertices yields n-2 triangles. Self-intersecting input returns ErrNotSimple.
func Triangulate(polygon []Point2D) ([]Triangle, error) {
	pts := DropCollinear(Dedupe(polygon))
	if len(pts) < 3 || SignedArea(pts) == 0 {
		return nil, ErrDegenerate
	}
	if !IsSimple(pts) {
		return nil, ErrNotSimple
	}
	if SignedArea(pts) < 0 {
		pts = reversed(pts)
	}

	tris := make([]Triangle, 0, len(pts)-2)
	for len(pts) > 3 {
		tri, rest, err := TriangulateStep(pts)
		if errors.Is(err, ErrNoEar) {
			// Clipping can leave a straight vertex that blocks every ear.
			if pruned := DropCollinear(pts); len(pruned) < len(pts) {
				pts = pruned
				continue
			}
		}
		if err != nil {
			return nil, fmt.Errorf("triangulate %d-gon after %d triangles: %w", len(pts), len(tris), err)
		}
		tris = append(tris, tri)
		pts = rest
	}
	return append(tris, Triangle{pts[0], pts[1], pts[2]}), nil
}

// isEar reports whether tri winds counter-clockwise and no polygon vertex
// other than its corners lies inside it or on its boundary.
func isEar(tri Triangle, pts []Point2D) bool {
	if tri.SignedArea() <= 0 {
		return false
	}
	for _, p := range pts {
		if p == tri[0] || p == tri[1] || p == tri[2] {
			continue
		}
		if tri.Contains(p) {
			return false
		}
	}
	return true
}

func sumDistSq(p, a, b Point2D) float64 {
	return distSq(p, a) + distSq(p, b)
}

// without returns a copy of pts with index i removed.
func without(pts []Point2D, i int) []Point2D {
	out := make([]Point2D, 0, len(pts)-1)
	out = append(out, pts[:i]...)
	return append(out, pts[i+1:]...)
}

func reversed(pts []Point2D) []Point2D {
	out := make([]Point2D, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
