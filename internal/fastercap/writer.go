package fastercap

import (
	"io"

	"gds2fast/internal/deck"
	"gds2fast/pkg/geometry"
)

// Tool is the generator name written into the deck header.
const Tool = "gds2fastercap"

// WriteTo writes the mesh as a FasterCap list file: the conductor panels,
// the dielectric declaration, then the dielectric box as a separate FILE
// block.
func (m *Mesh) WriteTo(w io.Writer) (int64, error) {
	d := deck.NewWriter(w)

	d.Comment(m.Cell)
	d.Comment("   " + deck.Generator(Tool))
	d.Printf(".units uM")

	for _, c := range m.Conductors {
		d.Section("TOP " + c.Material)
		writePanels(d, c.Top)
		d.Section("BOTTOM " + c.Material)
		writePanels(d, c.Bottom)
		d.Section("SIDES " + c.Material + " (except for connections)")
		writePanels(d, c.Sides)
	}
	for _, v := range m.Vias {
		d.Section("VIAS " + v.Material)
		writePanels(d, v.Panels)
	}

	d.Blank()
	d.Printf("D %s 1 %s 0 0 0 0 0 100", m.Dielectric.Name, deck.Value(m.Dielectric.Permittivity))
	d.Blank()
	d.Printf("END")
	d.Blank()
	d.Comment("dielectric geometry")
	d.Printf("FILE %s", m.Dielectric.Name)
	for _, face := range BoxFaces(m.HalfSize, m.Dielectric.Top) {
		d.Printf("Q cube %s", deck.Points(face))
	}
	d.Printf("END")

	return d.Result()
}

func writePanels(d *deck.Writer, panels []Panel) {
	for _, p := range panels {
		kind := "Q"
		if p.IsTriangle() {
			kind = "T"
		}
		d.Printf("%s %s %s", kind, p.Tag, deck.Points(p.Vertices))
	}
}

// BoxFaces returns the six faces of the dielectric box spanning
// [-h, h] x [-h, h] x [0, top]: the four walls, then bottom and top.
func BoxFaces(h, top float64) [6][]geometry.Point3D {
	p := func(x, y, z float64) geometry.Point3D { return geometry.Point3D{X: x, Y: y, Z: z} }
	return [6][]geometry.Point3D{
		{p(-h, -h, 0), p(h, -h, 0), p(h, -h, top), p(-h, -h, top)},
		{p(h, h, 0), p(h, -h, 0), p(h, -h, top), p(h, h, top)},
		{p(h, h, 0), p(-h, h, 0), p(-h, h, top), p(h, h, top)},
		{p(-h, h, 0), p(-h, -h, 0), p(-h, -h, top), p(-h, h, top)},
		{p(-h, -h, 0), p(h, -h, 0), p(h, h, 0), p(-h, h, 0)},
		{p(-h, -h, top), p(h, -h, top), p(h, h, top), p(-h, h, top)},
	}
}
