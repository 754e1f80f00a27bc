// Package deck holds the text plumbing shared by the solver input writers:
// number formatting and an error-latching line writer.
package deck

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gds2fast/internal/version"
	"gds2fast/pkg/geometry"
)

const (
	// Decimals is the number of decimals layout coordinates are written with.
	Decimals = 3

	// ValueDigits is the number of significant digits process values keep.
	// It absorbs float noise from sums without flushing small values to 0.
	ValueDigits = 12
)

// Coord formats a layout coordinate rounded to Decimals places, without
// trailing zeros and never as "-0".
func Coord(x float64) string {
	return strconv.FormatFloat(round(x, Decimals), 'f', -1, 64)
}

// Value formats a process value (elevation, thickness, resistivity,
// frequency) in its shortest form after rounding to ValueDigits significant
// digits.
func Value(x float64) string {
	// Parsing a FormatFloat result cannot fail.
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'g', ValueDigits, 64), 64)
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'g', -1, 64)
}

func round(x float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	if math.Abs(x)*scale >= 1<<52 {
		// Already integral at this precision.
		return x
	}
	r := math.Round(x*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}

// Point formats p as "x y z" with x, y as coordinates and z as a value.
func Point(p geometry.Point3D) string {
	return Coord(p.X) + " " + Coord(p.Y) + " " + Value(p.Z)
}

// Points formats a vertex list as space separated triples.
func Points(pts []geometry.Point3D) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = Point(p)
	}
	return strings.Join(parts, " ")
}

// Generator is the comment line naming the tool that produced a deck.
func Generator(tool string) string {
	return fmt.Sprintf("automatically generated using %s %s", tool, version.Version)
}

// Writer writes solver records line by line. The first write error is kept
// and every later write becomes a no-op, so callers check once at the end.
type Writer struct {
	w   io.Writer
	n   int64
	err error
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Printf writes a formatted line; a newline is appended.
func (d *Writer) Printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	n, err := fmt.Fprintf(d.w, format+"\n", args...)
	d.n += int64(n)
	d.err = err
}

// Comment writes "* text".
func (d *Writer) Comment(text string) {
	d.Printf("* %s", text)
}

// Section writes a blank line followed by a comment heading.
func (d *Writer) Section(title string) {
	d.Blank()
	d.Comment(title)
}

// Blank writes an empty line.
func (d *Writer) Blank() {
	d.Printf("")
}

// Result returns the bytes written and the first error.
func (d *Writer) Result() (int64, error) {
	return d.n, d.err
}
