// Package fastercap builds the boundary-element panel mesh a FasterCap run
// needs and writes it in FasterCap's list-file syntax.
package fastercap

import (
	"fmt"
	"math"

	"gds2fast/internal/layout"
	"gds2fast/internal/logging"
	"gds2fast/internal/port"
	"gds2fast/internal/process"
	"gds2fast/internal/via"
	"gds2fast/pkg/geometry"
)

// BulkTag marks panels that belong to no port.
const BulkTag = "B"

// Panel is a planar triangle or quadrilateral with the conductor name it
// belongs to.
type Panel struct {
	Tag      string             `json:"tag"`
	Vertices []geometry.Point3D `json:"vertices"`
}

// IsTriangle reports whether the panel has three vertices.
func (p Panel) IsTriangle() bool {
	return len(p.Vertices) == 3
}

// Conductor is the closed surface of one path.
type Conductor struct {
	Path     int     `json:"path"`
	Material string  `json:"material"`
	Top      []Panel `json:"top"`
	Bottom   []Panel `json:"bottom"`
	Sides    []Panel `json:"sides"`
}

// Pillars are the side walls of the via cuts above one conductor layer.
type Pillars struct {
	Material string  `json:"material"`
	Panels   []Panel `json:"panels"`
}

// Mesh is a complete capacitance model.
type Mesh struct {
	Cell       string             `json:"cell"`
	Conductors []Conductor        `json:"conductors"`
	Vias       []Pillars          `json:"vias"`
	Dielectric process.Dielectric `json:"dielectric"`
	HalfSize   float64            `json:"half_size"` // dielectric box extent around the origin
}

// PortNames returns the distinct port tags of the side walls in mesh order.
func (m *Mesh) PortNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, c := range m.Conductors {
		for _, p := range c.Sides {
			if p.Tag != BulkTag && !seen[p.Tag] {
				seen[p.Tag] = true
				names = append(names, p.Tag)
			}
		}
	}
	return names
}

// PanelCount returns the number of conductor and via panels.
func (m *Mesh) PanelCount() int {
	n := 0
	for _, c := range m.Conductors {
		n += len(c.Top) + len(c.Bottom) + len(c.Sides)
	}
	for _, v := range m.Vias {
		n += len(v.Panels)
	}
	return n
}

// Build meshes every path of src. Port names replace the bulk tag on the side
// wall nearest each port. Only vias that belong to a cluster are meshed, each
// cut once. Build fails if an outline cannot be triangulated.
func Build(src layout.Source, stack *process.Stack, ports []port.Port, clusters []via.Cluster) (*Mesh, error) {
	log := logging.Logger()
	m := &Mesh{
		Cell:       src.CellName(),
		Dielectric: stack.Dielectric(),
		HalfSize:   BoxHalfSize(layout.MaxRadius(src)),
	}

	paths := src.Paths()
	outlines := make([][]geometry.Point2D, len(paths))
	for i, p := range paths {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		outlines[i] = p.Outline()
	}
	edgeTags := assignPorts(paths, outlines, ports)

	for i, p := range paths {
		spec, ok := stack.Conductor(p.Layer)
		if !ok {
			return nil, fmt.Errorf("path %d: layer %d is not a conductor of stack %q", i, p.Layer, stack.Name())
		}
		c, err := meshPath(outlines[i], spec, edgeTags[i])
		if err != nil {
			return nil, fmt.Errorf("path %d on %s: %w", i, spec.Material, err)
		}
		c.Path = i
		m.Conductors = append(m.Conductors, c)
		log.Debug("path meshed", "path", i, "material", spec.Material,
			"triangles", len(c.Top), "sides", len(c.Sides))
	}
	m.Vias = pillars(stack, clusters)
	log.Info("panel mesh built", "cell", m.Cell, "conductors", len(m.Conductors),
		"panels", m.PanelCount(), "half_size", m.HalfSize)
	return m, nil
}

// BoxHalfSize returns the half width of the dielectric box for a layout whose
// farthest vertex lies r from the origin: twice r rounded to tens.
func BoxHalfSize(r float64) float64 {
	return 2 * math.RoundToEven(r/10) * 10
}

func meshPath(outline []geometry.Point2D, spec process.LayerSpec, tags map[int]string) (Conductor, error) {
	c := Conductor{Material: spec.Material}

	tris, err := geometry.Triangulate(outline)
	if err != nil {
		return c, err
	}
	for _, t := range tris {
		c.Top = append(c.Top, triangle(t, spec.Top))
		c.Bottom = append(c.Bottom, triangle(t, spec.Bottom))
	}

	for i := range outline {
		tag := BulkTag
		if name, ok := tags[i]; ok {
			tag = name
		}
		c.Sides = append(c.Sides, wall(tag, outline[i], outline[(i+1)%len(outline)], spec.Bottom, spec.Top))
	}
	return c, nil
}

func triangle(t geometry.Triangle, z float64) Panel {
	return Panel{Tag: BulkTag, Vertices: []geometry.Point3D{t[0].At(z), t[1].At(z), t[2].At(z)}}
}

// wall is the vertical quad over edge a-b between elevations zb and zt.
func wall(tag string, a, b geometry.Point2D, zb, zt float64) Panel {
	return Panel{Tag: tag, Vertices: []geometry.Point3D{a.At(zb), b.At(zb), b.At(zt), a.At(zt)}}
}

// assignPorts returns, per path, the outline edge index tagged by each port.
// A port belongs to the path on its layer with the nearest outline vertex.
// Within that outline the two nearest vertices pick the edge: the edge
// joining them when they are adjacent, else the edge leaving the nearest.
func assignPorts(paths []layout.Path, outlines [][]geometry.Point2D, ports []port.Port) []map[int]string {
	log := logging.Logger()
	tags := make([]map[int]string, len(paths))
	indexes := make([]*geometry.PointIndex, len(paths))
	for i := range paths {
		tags[i] = make(map[int]string)
		indexes[i] = geometry.NewPointIndex(outlines[i])
	}

	for _, pt := range ports {
		best, bestDist := -1, math.Inf(1)
		for i, p := range paths {
			if p.Layer != pt.Layer {
				continue
			}
			if n, _, ok := indexes[i].Nearest(pt.Position); ok && n.DistSq < bestDist {
				best, bestDist = i, n.DistSq
			}
		}
		if best < 0 {
			log.Warn("port has no path on its layer", "port", pt.Name, "layer", pt.Layer)
			continue
		}

		edge := PortEdge(indexes[best], pt.Position)
		if prev, taken := tags[best][edge]; taken {
			log.Warn("side wall already tagged, keeping first port",
				"path", best, "edge", edge, "kept", prev, "dropped", pt.Name)
			continue
		}
		tags[best][edge] = pt.Name
	}
	return tags
}

// PortEdge returns the index of the outline edge a port at q attaches to.
// Edge i joins vertex i to vertex i+1, wrapping at the end.
func PortEdge(outline *geometry.PointIndex, q geometry.Point2D) int {
	near := outline.NearestK(q, 2)
	if len(near) < 2 {
		return near[0].Index
	}
	r1, r2 := near[0].Index, near[1].Index
	if r1 == (r2+1)%outline.Len() {
		return r2
	}
	return r1
}

// pillars returns the side walls of every clustered via cut, grouped by the
// conductor layer below the cut in ascending order.
func pillars(stack *process.Stack, clusters []via.Cluster) []Pillars {
	type cutKey struct{ layer, ix int }
	seen := make(map[cutKey]bool)
	byLayer := make(map[int][]Panel)

	for _, c := range clusters {
		spec, ok := stack.Via(c.LowerLayer)
		if !ok {
			continue
		}
		for k, poly := range c.Members {
			key := cutKey{c.LowerLayer, c.MemberIx[k]}
			if seen[key] {
				continue
			}
			seen[key] = true
			pts := poly.Points
			for i := range pts {
				byLayer[c.LowerLayer] = append(byLayer[c.LowerLayer],
					wall(BulkTag, pts[i], pts[(i+1)%len(pts)], spec.Bottom, spec.Top))
			}
		}
	}

	var out []Pillars
	for _, layer := range stack.ConductorLayers() {
		panels, ok := byLayer[layer]
		if !ok {
			continue
		}
		spec, _ := stack.Via(layer)
		out = append(out, Pillars{Material: spec.Material, Panels: panels})
	}
	return out
}
