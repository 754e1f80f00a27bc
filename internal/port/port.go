// Package port identifies the external terminals of a layout by pairing pin
// polygons with their nearest text labels.
package port

import (
	"errors"
	"fmt"

	"gds2fast/internal/layout"
	"gds2fast/internal/logging"
	"gds2fast/internal/process"
	"gds2fast/pkg/geometry"
)

// Port is a named external terminal.
type Port struct {
	Name     string           `json:"name"`
	Layer    int              `json:"layer"`
	Position geometry.Point2D `json:"position"` // centroid of the pin polygon

	PinIndex   int `json:"pin_index"`   // index among the layer's pin polygons
	LabelIndex int `json:"label_index"` // index among the layer's labels
}

var (
	// ErrCountMismatch means a layer has a different number of pin polygons
	// and labels.
	ErrCountMismatch = errors.New("pin and label counts differ")
	// ErrDuplicateLabel means two pin polygons resolved to the same label.
	ErrDuplicateLabel = errors.New("label claimed by more than one pin")
)

// ExtractionError reports a layer whose ports were skipped.
type ExtractionError struct {
	Layer    int
	Material string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("port extraction on %s (layer %d): %v", e.Material, e.Layer, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extract returns the ports of every conductor layer in stack order. Layers
// that fail extraction are skipped and reported in errs; the remaining
// layers are still extracted.
func Extract(src layout.Source, stack *process.Stack) (ports []Port, errs []error) {
	log := logging.Logger()
	purposes := stack.Purposes()

	for _, layer := range stack.ConductorLayers() {
		pins := src.Polygons(layer, purposes.Pin)
		if len(pins) == 0 {
			continue
		}
		labels := layout.LabelsOn(src, layer, purposes.Label)
		if len(labels) == 0 {
			// Some flows place pin text on the pin purpose itself.
			labels = layout.LabelsOn(src, layer, purposes.Pin)
		}

		layerPorts, err := ExtractLayer(layer, pins, labels)
		if err != nil {
			xerr := &ExtractionError{Layer: layer, Material: stack.MaterialName(layer, purposes.Pin), Err: err}
			log.Warn("skipping ports on layer", "layer", layer, "err", xerr)
			errs = append(errs, xerr)
			continue
		}
		for _, p := range layerPorts {
			log.Debug("port-label pair found", "port", p.Name, "layer", layer,
				"x", p.Position.X, "y", p.Position.Y)
		}
		ports = append(ports, layerPorts...)
	}
	return ports, errs
}

// ExtractLayer pairs each pin polygon with the label nearest its centroid.
// Equidistant labels resolve to the lowest label index. It fails when the
// counts differ or when two pins resolve to the same label.
func ExtractLayer(layer int, pins []layout.Polygon, labels []layout.Label) ([]Port, error) {
	if len(pins) != len(labels) {
		return nil, fmt.Errorf("%w: %d pins, %d labels", ErrCountMismatch, len(pins), len(labels))
	}
	if len(pins) == 0 {
		return nil, nil
	}

	positions := make([]geometry.Point2D, len(labels))
	for i, l := range labels {
		positions[i] = l.Position
	}
	index := geometry.NewPointIndex(positions)

	ports := make([]Port, 0, len(pins))
	claimedBy := make(map[int]int, len(pins))
	for i, pin := range pins {
		center := pin.Centroid()
		nearest, tied, _ := index.Nearest(center)
		if tied {
			logging.Logger().Warn("equidistant labels for pin, taking the first",
				"layer", layer, "pin", i, "label", labels[nearest.Index].Text)
		}
		if other, dup := claimedBy[nearest.Index]; dup {
			return nil, fmt.Errorf("%w: label %q nearest to pins %d and %d",
				ErrDuplicateLabel, labels[nearest.Index].Text, other, i)
		}
		claimedBy[nearest.Index] = i

		ports = append(ports, Port{
			Name:       labels[nearest.Index].Text,
			Layer:      layer,
			Position:   center,
			PinIndex:   i,
			LabelIndex: nearest.Index,
		})
	}
	return ports, nil
}
