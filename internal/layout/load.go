package layout

import (
	"errors"
	"fmt"
	"os"

	"gds2fast/pkg/geometry"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLayout wraps structural problems found while loading.
var ErrInvalidLayout = errors.New("invalid layout")

// document is the on-disk form of a flattened layout. JSON is valid YAML, so
// both are accepted.
type document struct {
	Cell     string       `yaml:"cell"`
	Polygons []polygonDoc `yaml:"polygons"`
	Paths    []pathDoc    `yaml:"paths"`
	Labels   []labelDoc   `yaml:"labels"`
}

type polygonDoc struct {
	Layer   int          `yaml:"layer"`
	Purpose int          `yaml:"purpose"`
	Points  [][2]float64 `yaml:"points"`
}

type pathDoc struct {
	Layer  int          `yaml:"layer"`
	Points [][2]float64 `yaml:"points"`
	Widths []float64    `yaml:"widths"`
}

type labelDoc struct {
	Text     string     `yaml:"text"`
	Layer    int        `yaml:"layer"`
	Purpose  int        `yaml:"purpose"`
	Position [2]float64 `yaml:"position"`
}

// Load reads a flattened layout document from path.
func Load(path string) (*Flat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and checks a flattened layout document.
func Parse(data []byte) (*Flat, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	f := &Flat{Name: doc.Cell}
	for i, pd := range doc.Polygons {
		if len(pd.Points) < 3 {
			return nil, fmt.Errorf("%w: polygon %d has %d points, need at least 3", ErrInvalidLayout, i, len(pd.Points))
		}
		f.PolygonList = append(f.PolygonList, Polygon{Layer: pd.Layer, Purpose: pd.Purpose, Points: toPoints(pd.Points)})
	}
	for i, pd := range doc.Paths {
		p := Path{Layer: pd.Layer, Points: toPoints(pd.Points), Widths: pd.Widths}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		f.PathList = append(f.PathList, p)
	}
	for _, ld := range doc.Labels {
		f.LabelList = append(f.LabelList, Label{
			Text:     ld.Text,
			Layer:    ld.Layer,
			Purpose:  ld.Purpose,
			Position: geometry.Point2D{X: ld.Position[0], Y: ld.Position[1]},
		})
	}
	return f, nil
}

func toPoints(raw [][2]float64) []geometry.Point2D {
	pts := make([]geometry.Point2D, len(raw))
	for i, r := range raw {
		pts[i] = geometry.Point2D{X: r[0], Y: r[1]}
	}
	return pts
}
