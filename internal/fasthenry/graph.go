// Package fasthenry builds the node and filament graph a FastHenry run needs
// and writes it in FastHenry's input syntax.
package fasthenry

import (
	"fmt"
	"math"

	"gds2fast/internal/freq"
	"gds2fast/internal/layout"
	"gds2fast/internal/logging"
	"gds2fast/internal/port"
	"gds2fast/internal/process"
	"gds2fast/internal/via"
	"gds2fast/pkg/geometry"
)

// FilamentsPerWidth is the width discretisation of every path segment.
const FilamentsPerWidth = 20

// Node is a named point in the graph.
type Node struct {
	Name string           `json:"name"`
	Pos  geometry.Point3D `json:"pos"`
}

// Edge is a straight conductor filament between two nodes.
type Edge struct {
	Name   string  `json:"name"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
	Rho    float64 `json:"rho"`
	NWInc  int     `json:"nwinc"`
	NHInc  int     `json:"nhinc,omitempty"` // 0 leaves the solver default
}

// External is one port pair: current enters at Plus and leaves at Minus.
type External struct {
	Plus, Minus         string
	PlusPort, MinusPort string
	Pair                int // 1-based
}

// ViaLink is the lumped connection a via cluster makes between two paths:
// two synthetic nodes joined by a short edge and aliased onto the path ends.
type ViaLink struct {
	Cluster via.Cluster
	// NodeA sits at path A's filament elevation, NodeB at path B's.
	NodeA, NodeB Node
	Edge         Edge
	// EquivA and EquivB are the path end nodes NodeA and NodeB alias.
	EquivA, EquivB string
}

// Substrate is the resistive ground plane under the layout.
type Substrate struct {
	HalfSize  float64
	Thickness float64
	Rho       float64
	Segments  int
}

// Graph is a complete inductance model.
type Graph struct {
	Cell      string
	Nodes     []Node
	PathEdges [][]Edge // one slice per path
	Externals []External
	Vias      []ViaLink
	Substrate Substrate
	Budget    freq.Budget
}

// nodeName is the name of the node at global index i.
func nodeName(i int) string {
	return fmt.Sprintf("N%d", i)
}

// Build converts the paths of src into a filament graph. Nodes are numbered
// across all paths in layout order; edge E<i> starts at node N<i>.
func Build(src layout.Source, stack *process.Stack, ports []port.Port, clusters []via.Cluster) (*Graph, error) {
	paths := src.Paths()
	budget, err := freq.Estimate(paths, stack.Dielectric().Permittivity)
	if err != nil {
		return nil, err
	}

	g := &Graph{
		Cell:      src.CellName(),
		PathEdges: make([][]Edge, len(paths)),
		Budget:    budget,
	}

	// first[i] is the global index of path i's first node.
	first := make([]int, len(paths))
	layers := make([]int, 0, len(paths))
	for i, p := range paths {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		spec, ok := stack.Conductor(p.Layer)
		if !ok {
			return nil, fmt.Errorf("path %d: layer %d is not a conductor of stack %q", i, p.Layer, stack.Name())
		}
		first[i] = len(g.Nodes)
		for _, pt := range p.Points {
			g.Nodes = append(g.Nodes, Node{Name: nodeName(len(g.Nodes)), Pos: pt.At(spec.Mid())})
			layers = append(layers, p.Layer)
		}
		for s := 0; s < p.Segments(); s++ {
			a := first[i] + s
			g.PathEdges[i] = append(g.PathEdges[i], Edge{
				Name:   fmt.Sprintf("E%d", a),
				From:   nodeName(a),
				To:     nodeName(a + 1),
				Width:  p.Widths[s],
				Height: spec.Thickness(),
				Rho:    spec.Resistivity,
				NWInc:  FilamentsPerWidth,
			})
		}
	}

	g.Externals = externals(g.Nodes, layers, ports)

	for _, c := range clusters {
		link, err := viaLink(c, paths, first, stack)
		if err != nil {
			return nil, err
		}
		g.Vias = append(g.Vias, link)
	}

	sub := stack.Substrate()
	g.Substrate = Substrate{
		HalfSize:  2 * math.RoundToEven(layout.MaxRadius(src)),
		Thickness: sub.Thickness,
		Rho:       sub.SheetResistivity,
		Segments:  budget.Segments,
	}

	log := logging.Logger()
	log.Debug("filament graph built", "nodes", len(g.Nodes), "externals", len(g.Externals), "via_links", len(g.Vias))
	log.Info("frequency budget", "length_um", budget.TotalLength, "fmax", budget.FMax,
		"resonance", budget.Resonance, "segments", budget.Segments)
	return g, nil
}

// externals pairs ports (0,1), (2,3), ... and maps each to its nearest node.
// Nodes on the port's own layer are preferred.
func externals(nodes []Node, layers []int, ports []port.Port) []External {
	log := logging.Logger()
	if len(nodes) == 0 {
		return nil
	}

	all := make([]geometry.Point2D, len(nodes))
	byLayer := make(map[int][]int)
	for i, n := range nodes {
		all[i] = geometry.Point2D{X: n.Pos.X, Y: n.Pos.Y}
		byLayer[layers[i]] = append(byLayer[layers[i]], i)
	}
	allIndex := geometry.NewPointIndex(all)
	layerIndex := make(map[int]*geometry.PointIndex)

	nearest := func(p port.Port) int {
		members, ok := byLayer[p.Layer]
		if !ok {
			log.Warn("port has no node on its layer, using nearest node on any layer",
				"port", p.Name, "layer", p.Layer)
			n, _, _ := allIndex.Nearest(p.Position)
			return n.Index
		}
		idx, ok := layerIndex[p.Layer]
		if !ok {
			pts := make([]geometry.Point2D, len(members))
			for k, m := range members {
				pts[k] = all[m]
			}
			idx = geometry.NewPointIndex(pts)
			layerIndex[p.Layer] = idx
		}
		n, _, _ := idx.Nearest(p.Position)
		return members[n.Index]
	}

	var out []External
	for k := 0; k+1 < len(ports); k += 2 {
		plus, minus := ports[k], ports[k+1]
		out = append(out, External{
			Plus:      nodes[nearest(plus)].Name,
			Minus:     nodes[nearest(minus)].Name,
			PlusPort:  plus.Name,
			MinusPort: minus.Name,
			Pair:      k/2 + 1,
		})
	}
	if len(ports)%2 == 1 {
		last := ports[len(ports)-1]
		log.Warn("port has no partner, left unconnected", "port", last.Name, "layer", last.Layer)
	}
	return out
}

func viaLink(c via.Cluster, paths []layout.Path, first []int, stack *process.Stack) (ViaLink, error) {
	a, b := paths[c.PathA], paths[c.PathB]
	specA, okA := stack.Conductor(a.Layer)
	specB, okB := stack.Conductor(b.Layer)
	if !okA || !okB {
		return ViaLink{}, fmt.Errorf("via cluster %s: paths are not on conductor layers", c.Name())
	}

	na := Node{Name: "N0_via" + c.Name(), Pos: c.Centroid.At(specA.Mid())}
	nb := Node{Name: "N1_via" + c.Name(), Pos: c.Centroid.At(specB.Mid())}
	return ViaLink{
		Cluster: c,
		NodeA:   na,
		NodeB:   nb,
		Edge: Edge{
			Name:   "E_via" + c.Name(),
			From:   na.Name,
			To:     nb.Name,
			Width:  1,
			Height: 1,
			Rho:    c.Resistance,
			NWInc:  1,
			NHInc:  1,
		},
		EquivA: nodeName(first[c.PathA] + a.EndpointIndex(c.EndA)),
		EquivB: nodeName(first[c.PathB] + b.EndpointIndex(c.EndB)),
	}, nil
}
