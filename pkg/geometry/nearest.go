package geometry

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// PointIndex answers nearest-point queries over a fixed point set. Results
// match a linear scan exactly: distances are squared Euclidean and ties
// resolve to the lowest index.
type PointIndex struct {
	points []Point2D
	tree   *kdtree.Tree
}

// Neighbor is a query result: the index of a point in the indexed slice and
// its squared distance from the query.
type Neighbor struct {
	Index  int
	DistSq float64
}

// NewPointIndex builds an index over points. The slice is copied.
func NewPointIndex(points []Point2D) *PointIndex {
	idx := &PointIndex{points: append([]Point2D(nil), points...)}
	if len(points) == 0 {
		return idx
	}
	entries := make(indexedPoints, len(points))
	for i, p := range points {
		entries[i] = indexedPoint{Point2D: p, index: i}
	}
	idx.tree = kdtree.New(entries, false)
	return idx
}

// Len returns the number of indexed points.
func (x *PointIndex) Len() int {
	return len(x.points)
}

// Point returns the i-th indexed point.
func (x *PointIndex) Point(i int) Point2D {
	return x.points[i]
}

// Nearest returns the point closest to q. ok is false for an empty index.
// tied reports whether another point lies at exactly the same distance.
func (x *PointIndex) Nearest(q Point2D) (n Neighbor, tied, ok bool) {
	if x.tree == nil {
		return Neighbor{}, false, false
	}
	_, d := x.tree.Nearest(indexedPoint{Point2D: q, index: -1})
	within := x.within(q, d)
	return within[0], len(within) > 1 && within[1].DistSq == within[0].DistSq, true
}

// NearestK returns up to k points closest to q in ascending distance order,
// ties broken by index.
func (x *PointIndex) NearestK(q Point2D, k int) []Neighbor {
	if x.tree == nil || k <= 0 {
		return nil
	}
	keep := kdtree.NewNKeeper(k)
	query := indexedPoint{Point2D: q, index: -1}
	x.tree.NearestSet(keep, query)

	// The k-th distance bounds the result; collect everything inside it so
	// ties at the boundary resolve by index.
	var radius float64
	for _, c := range keep.Heap {
		if c.Comparable != nil && c.Dist > radius {
			radius = c.Dist
		}
	}
	within := x.within(q, radius)
	if len(within) > k {
		within = within[:k]
	}
	return within
}

// within returns all points with squared distance <= d2 from q, sorted.
func (x *PointIndex) within(q Point2D, d2 float64) []Neighbor {
	keep := kdtree.NewDistKeeper(d2)
	x.tree.NearestSet(keep, indexedPoint{Point2D: q, index: -1})

	out := make([]Neighbor, 0, len(keep.Heap))
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		out = append(out, Neighbor{Index: c.Comparable.(indexedPoint).index, DistSq: c.Dist})
	}
	if len(out) == 0 {
		// The tree search bound is inclusive; an empty result only occurs
		// through rounding in the bound, so fall back to a scan.
		for i, p := range x.points {
			if d := distSq(p, q); d <= d2 {
				out = append(out, Neighbor{Index: i, DistSq: d})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistSq != out[j].DistSq {
			return out[i].DistSq < out[j].DistSq
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// indexedPoint is a kdtree.Comparable carrying its position in the source
// slice.
type indexedPoint struct {
	Point2D
	index int
}

func (p indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(indexedPoint)
	switch d {
	case 0:
		return p.X - q.X
	case 1:
		return p.Y - q.Y
	default:
		panic("geometry: illegal dimension")
	}
}

func (p indexedPoint) Dims() int { return 2 }

func (p indexedPoint) Distance(c kdtree.Comparable) float64 {
	return distSq(p.Point2D, c.(indexedPoint).Point2D)
}

type indexedPoints []indexedPoint

func (p indexedPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p indexedPoints) Len() int                      { return len(p) }
func (p indexedPoints) Pivot(d kdtree.Dim) int {
	return plane{Dim: d, indexedPoints: p}.Pivot()
}
func (p indexedPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts indexedPoints along one dimension for tree construction.
type plane struct {
	kdtree.Dim
	indexedPoints
}

func (p plane) Less(i, j int) bool {
	return p.indexedPoints[i].Compare(p.indexedPoints[j], p.Dim) < 0
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.indexedPoints = p.indexedPoints[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.indexedPoints[i], p.indexedPoints[j] = p.indexedPoints[j], p.indexedPoints[i]
}
