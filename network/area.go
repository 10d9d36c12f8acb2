// SPDX-License-Identifier: MIT

package network

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/katalvlaran/airpath/core"
)

// SearchArea returns the envelope of a and b buffered by pad degrees on
// every side. A negative pad is treated as zero.
func SearchArea(a, b orb.Point, pad float64) orb.Bound {
	return orb.MultiPoint{a, b}.Bound().Pad(math.Max(pad, 0))
}

// NearestNode returns the vertex of g closest to pt by great-circle
// distance. Ties go to the smallest vertex ID.
//
// Complexity: O(V log V) for the sorted vertex list, O(V) distance checks.
func NearestNode(g *core.Graph, pt orb.Point) (string, float64, error) {
	if g == nil {
		return "", 0, ErrEmptyNetwork
	}
	best, bestDist := "", math.Inf(1)
	for _, id := range g.Vertices() {
		p, ok := g.Point(id)
		if !ok {
			continue
		}
		if d := geo.DistanceHaversine(pt, p); d < bestDist {
			best, bestDist = id, d
		}
	}
	if best == "" {
		return "", 0, ErrEmptyNetwork
	}

	return best, bestDist, nil
}
