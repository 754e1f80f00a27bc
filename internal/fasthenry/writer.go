package fasthenry

import (
	"io"
	"strconv"

	"gds2fast/internal/deck"
	"gds2fast/internal/freq"
)

// Tool is the generator name written into the deck header.
const Tool = "gds2fasthenry"

// WriteTo writes the graph as a FastHenry input file.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	d := deck.NewWriter(w)

	d.Comment(g.Cell)
	d.Comment("   " + deck.Generator(Tool))
	d.Printf(".units uM")

	d.Section("POINTS")
	for _, n := range g.Nodes {
		writeNode(d, n)
	}

	d.Section("PORTS")
	for _, e := range g.Externals {
		d.Printf(".external %s %s %d", e.Plus, e.Minus, e.Pair)
	}

	for i, edges := range g.PathEdges {
		d.Section("EDGES PATH[" + strconv.Itoa(i) + "]")
		for _, e := range edges {
			writeEdge(d, e)
		}
	}

	d.Section("VIAS")
	for _, v := range g.Vias {
		writeNode(d, v.NodeA)
		writeNode(d, v.NodeB)
		writeEdge(d, v.Edge)
		d.Printf(".equiv %s %s", v.NodeA.Name, v.EquivA)
		d.Printf(".equiv %s %s", v.NodeB.Name, v.EquivB)
	}

	s := g.Substrate
	h, seg := deck.Coord(s.HalfSize), strconv.Itoa(s.Segments)
	d.Section("SUBSTRATE")
	d.Printf("G1")
	d.Printf("+ x1=-%s y1=-%s z1=0", h, h)
	d.Printf("+ x2=%s y2=-%s z2=0", h, h)
	d.Printf("+ x3=%s y3=%s z3=0", h, h)
	d.Printf("+ thick=%s", deck.Value(s.Thickness))
	d.Printf("+ seg1=%s seg2=%s", seg, seg)
	d.Printf("+ rho=%s", deck.Value(s.Rho))

	d.Section("SIMULATION SETTINGS")
	d.Printf(".freq fmin=%e fmax=%s ndec=1", freq.FMin, deck.Value(g.Budget.FMax))
	d.Printf(".end")

	return d.Result()
}

func writeNode(d *deck.Writer, n Node) {
	d.Printf("%s x=%s y=%s z=%s", n.Name, deck.Coord(n.Pos.X), deck.Coord(n.Pos.Y), deck.Value(n.Pos.Z))
}

func writeEdge(d *deck.Writer, e Edge) {
	line := e.Name + " " + e.From + " " + e.To +
		" w=" + deck.Coord(e.Width) +
		" h=" + deck.Value(e.Height) +
		" rho=" + deck.Value(e.Rho) +
		" nwinc=" + strconv.Itoa(e.NWInc)
	if e.NHInc > 0 {
		line += " nhinc=" + strconv.Itoa(e.NHInc)
	}
	d.Printf("%s", line)
}
