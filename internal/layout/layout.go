// Package layout provides the flattened layout model the converters read:
// polygons, paths and text labels tagged with GDS (layer, purpose).
package layout

import (
	"math"

	"gds2fast/pkg/geometry"
)

// Polygon is a closed shape; the last point implicitly connects to the first.
type Polygon struct {
	Layer   int                `json:"layer"`
	Purpose int                `json:"purpose"`
	Points  []geometry.Point2D `json:"points"`
}

// Centroid returns the mean of the polygon's vertices.
func (p Polygon) Centroid() geometry.Point2D {
	return geometry.Centroid(p.Points)
}

// Label is a text annotation at a point.
type Label struct {
	Text     string           `json:"text"`
	Layer    int              `json:"layer"`
	Purpose  int              `json:"purpose"`
	Position geometry.Point2D `json:"position"`
}

// Source is the query interface over a flattened top cell. The GDSII reader
// that produces it lives outside this repository.
type Source interface {
	// CellName returns the name of the flattened top-level cell.
	CellName() string
	// Polygons returns the polygons on (layer, purpose), in layout order.
	Polygons(layer, purpose int) []Polygon
	// AllPolygons returns every polygon regardless of layer.
	AllPolygons() []Polygon
	// Paths returns the conductor paths in layout order.
	Paths() []Path
	// Labels returns every text label in layout order.
	Labels() []Label
}

// Flat is an in-memory Source.
type Flat struct {
	Name        string
	PolygonList []Polygon
	PathList    []Path
	LabelList   []Label
}

// CellName implements Source.
func (f *Flat) CellName() string { return f.Name }

// Polygons implements Source.
func (f *Flat) Polygons(layer, purpose int) []Polygon {
	var out []Polygon
	for _, p := range f.PolygonList {
		if p.Layer == layer && p.Purpose == purpose {
			out = append(out, p)
		}
	}
	return out
}

// AllPolygons implements Source.
func (f *Flat) AllPolygons() []Polygon { return f.PolygonList }

// Paths implements Source.
func (f *Flat) Paths() []Path { return f.PathList }

// Labels implements Source.
func (f *Flat) Labels() []Label { return f.LabelList }

// LabelsOn returns the labels of src on layer with the given purpose.
func LabelsOn(src Source, layer, purpose int) []Label {
	var out []Label
	for _, l := range src.Labels() {
		if l.Layer == layer && l.Purpose == purpose {
			out = append(out, l)
		}
	}
	return out
}

// MaxRadius returns the largest distance from the origin of any polygon
// vertex or path outline vertex. It sizes the dielectric box and the ground
// plane.
func MaxRadius(src Source) float64 {
	var r float64
	for _, p := range src.AllPolygons() {
		for _, pt := range p.Points {
			r = math.Max(r, pt.Norm())
		}
	}
	for _, path := range src.Paths() {
		for _, pt := range path.Outline() {
			r = math.Max(r, pt.Norm())
		}
	}
	return r
}
