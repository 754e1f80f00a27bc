// Package via groups the via cuts between two adjacent conductor layers into
// clusters that connect the nearest ends of two paths.
package via

import (
	"fmt"

	"gds2fast/internal/layout"
	"gds2fast/pkg/geometry"
)

// Cluster is a group of via polygons joining one end of path A to one end of
// path B. A and B are indices into the layout's path list with A < B.
type Cluster struct {
	PathA int        `json:"path_a"`
	PathB int        `json:"path_b"`
	EndA  layout.End `json:"end_a"`
	EndB  layout.End `json:"end_b"`

	LowerLayer int           `json:"lower_layer"` // conductor below the cuts
	Bounds     geometry.Rect `json:"bounds"`      // search region, inclusive

	Members  []layout.Polygon `json:"members"`
	MemberIx []int            `json:"member_ix"` // indices among the lower layer's via polygons
	Centroid geometry.Point2D `json:"centroid"`  // mean of member centroids

	// Resistance is the single-cut resistance divided by the member count.
	// The cuts are treated as identical resistors in parallel; current
	// crowding toward the nearest cuts is ignored.
	Resistance float64 `json:"resistance"`
}

// Name returns the suffix used for the cluster's synthetic solver records.
func (c Cluster) Name() string {
	return fmt.Sprintf("%d_%d", c.PathA, c.PathB)
}

// MissingViaError reports two adjacent-layer paths with no via cut joining
// their nearest ends. The connection is left out of the model.
type MissingViaError struct {
	PathA, PathB int
	LowerLayer   int
	Bounds       geometry.Rect
	// NoneOnLayer is set when the lower layer has no via polygons at all,
	// which usually points at a missing process via rather than a misplaced one.
	NoneOnLayer bool
}

func (e *MissingViaError) Error() string {
	if e.NoneOnLayer {
		return fmt.Sprintf("no vias on layer %d connecting paths %d and %d", e.LowerLayer, e.PathA, e.PathB)
	}
	return fmt.Sprintf("no vias in (%g,%g)-(%g,%g) connecting paths %d and %d on layer %d",
		e.Bounds.X, e.Bounds.Y, e.Bounds.X+e.Bounds.Width, e.Bounds.Y+e.Bounds.Height,
		e.PathA, e.PathB, e.LowerLayer)
}
