package deck

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"gds2fast/pkg/geometry"

	"github.com/stretchr/testify/assert"
)

func TestCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.0001, "0"},
		{5, "5"},
		{-5, "-5"},
		{1.23456, "1.235"},
		{-2.5004, "-2.5"},
		{100.1, "100.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Coord(tt.in), "Coord(%g)", tt.in)
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.7361 - 1.3761, "0.36"},
		{(1.3761 + 1.7361) / 2, "1.5561"},
		{4400, "4400"},
		{0.375 / 2, "0.1875"},
		{1.5e11, "1.5e+11"},
		{-0.0000001, "-1e-07"},
		{4.5e-8, "4.5e-08"},
		{0.1 + 0.2, "0.3"},
		{math.Copysign(0, -1), "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Value(tt.in), "Value(%g)", tt.in)
	}
}

func TestPointRoundsOnlyThePlane(t *testing.T) {
	p := geometry.Point2D{X: 1.00049, Y: -3}.At(1.7361)
	assert.Equal(t, "1 -3 1.7361", Point(p))
	assert.Equal(t, "0 0 0 1 1 1", Points([]geometry.Point3D{{}, {X: 1, Y: 1, Z: 1}}))
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestWriterLatchesFirstError(t *testing.T) {
	fw := &failingWriter{}
	d := NewWriter(fw)
	d.Comment("one")
	d.Printf("two %d", 2)
	d.Section("three")

	n, err := d.Result()
	assert.EqualError(t, err, "disk full")
	assert.Zero(t, n)
	assert.Equal(t, 1, fw.calls)
}

func TestWriterCountsBytes(t *testing.T) {
	var buf bytes.Buffer
	d := NewWriter(&buf)
	d.Comment("cell")
	d.Section("POINTS")
	d.Printf("N%d x=%s", 0, Coord(1))

	n, err := d.Result()
	assert.NoError(t, err)
	assert.Equal(t, "* cell\n\n* POINTS\nN0 x=1\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)
}
