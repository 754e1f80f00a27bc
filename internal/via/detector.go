package via

import (
	"errors"
	"fmt"

	"gds2fast/internal/layout"
	"gds2fast/internal/logging"
	"gds2fast/internal/process"
	"gds2fast/pkg/geometry"

	"gonum.org/v1/gonum/stat"
)

// ErrNoViaLayer is returned for adjacent conductors the stack defines no via
// layer between.
var ErrNoViaLayer = errors.New("no via layer between conductors")

// Detect finds a via cluster for every pair of paths on adjacent conductor
// layers. Pairs without any cut in their search region are reported in errs
// and produce no cluster; detection carries on with the remaining pairs.
//
// Clusters are returned in (A, B) order. A single via polygon may belong to
// more than one cluster when search regions overlap.
func Detect(src layout.Source, stack *process.Stack) (clusters []Cluster, errs []error) {
	log := logging.Logger()
	paths := src.Paths()
	viaPurpose := stack.Purposes().Via

	// Via polygons and their centroids per lower layer, loaded on first use.
	type cuts struct {
		polys     []layout.Polygon
		centroids []geometry.Point2D
	}
	byLayer := make(map[int]cuts)
	cutsOn := func(layer int) cuts {
		if c, ok := byLayer[layer]; ok {
			return c
		}
		c := cuts{polys: src.Polygons(layer, viaPurpose)}
		for _, p := range c.polys {
			c.centroids = append(c.centroids, p.Centroid())
		}
		byLayer[layer] = c
		return c
	}

	for i := range paths {
		for j := i + 1; j < len(paths); j++ {
			a, b := paths[i], paths[j]
			if a.Layer-b.Layer != 1 && b.Layer-a.Layer != 1 {
				continue
			}
			lower := min(a.Layer, b.Layer)
			spec, ok := stack.Via(lower)
			if !ok {
				err := fmt.Errorf("paths %d and %d on layers %d/%d: %w", i, j, a.Layer, b.Layer, ErrNoViaLayer)
				log.Warn("skipping via connection", "err", err)
				errs = append(errs, err)
				continue
			}

			m := MatchEnds(a, b)
			bounds := SearchBounds(a, b, m)
			c := cutsOn(lower)
			members := Members(bounds, c.centroids)
			if len(members) == 0 {
				err := &MissingViaError{PathA: i, PathB: j, LowerLayer: lower, Bounds: bounds, NoneOnLayer: len(c.polys) == 0}
				log.Warn("no vias connecting two adjacent layers", "err", err)
				errs = append(errs, err)
				continue
			}

			cl := Cluster{
				PathA:      i,
				PathB:      j,
				EndA:       m.EndA,
				EndB:       m.EndB,
				LowerLayer: lower,
				Bounds:     bounds,
				MemberIx:   members,
				Resistance: spec.Resistivity / float64(len(members)),
			}
			xs := make([]float64, len(members))
			ys := make([]float64, len(members))
			for k, ix := range members {
				cl.Members = append(cl.Members, c.polys[ix])
				xs[k], ys[k] = c.centroids[ix].X, c.centroids[ix].Y
			}
			cl.Centroid = geometry.Point2D{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}

			log.Debug("via cluster found", "paths", cl.Name(), "layer", lower,
				"members", len(members), "resistance", cl.Resistance)
			clusters = append(clusters, cl)
		}
	}
	return clusters, errs
}
