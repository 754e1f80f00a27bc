package geometry

import "sort"

// convexHull returns the hull of points counter-clockwise (monotone chain),
// without collinear boundary points.
func convexHull(points []Point2D) []Point2D {
	if len(points) < 3 {
		return points
	}
	sorted := append([]Point2D(nil), points...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	var hull []Point2D
	build := func(pts []Point2D) {
		base := len(hull)
		for _, p := range pts {
			for len(hull) >= base+2 && crossProduct(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		hull = hull[:len(hull)-1]
	}
	build(sorted)
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	build(sorted)
	return hull
}

// isConvex reports whether every turn of the closed polygon has the same
// sign.
func isConvex(polygon []Point2D) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	var pos, neg bool
	for i := 0; i < n; i++ {
		c := crossProduct(polygon[i], polygon[(i+1)%n], polygon[(i+2)%n])
		pos = pos || c > 0
		neg = neg || c < 0
	}
	return !(pos && neg)
}

// pointInPolygon is a winding-number test; points on the boundary may go
// either way.
func pointInPolygon(p Point2D, polygon []Point2D) bool {
	winding := 0
	n := len(polygon)
	for i := 0; i < n; i++ {
		a, b := polygon[i], polygon[(i+1)%n]
		switch {
		case a.Y <= p.Y && b.Y > p.Y && crossProduct(a, b, p) > 0:
			winding++
		case a.Y > p.Y && b.Y <= p.Y && crossProduct(a, b, p) < 0:
			winding--
		}
	}
	return winding != 0
}
