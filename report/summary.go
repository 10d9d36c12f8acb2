// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/airpath/core"
	"github.com/katalvlaran/airpath/pollution"
	"github.com/katalvlaran/airpath/refine"
)

// SampleCache returns a cache seeded with the samples res already fetched,
// so summarizing only queries oracle for nodes the planner never evaluated
// (the endpoints, typically).
func SampleCache(g *core.Graph, res refine.Result, oracle pollution.Oracle) *pollution.Cache {
	return pollution.NewCache(oracle, g.Point, pollution.WithSeed(res.Samples))
}

// Summarize builds a Summary of res over g, reading samples from cache.
func Summarize(ctx context.Context, g *core.Graph, res refine.Result, cache *pollution.Cache) (Summary, error) {
	if len(res.Shortest) == 0 && len(res.Path) == 0 {
		return Summary{}, ErrNoRoute
	}

	s := Summary{
		Status:       res.Status.String(),
		Reason:       res.Reason.String(),
		Tolerance:    res.Tolerance,
		Escalations:  res.Escalations,
		Attempts:     res.Attempts,
		OracleCalls:  res.OracleCalls,
		ShortestPath: res.Shortest,
		Path:         res.Path,
	}

	var err error
	if s.ShortestEdges, err = exposures(ctx, g, res.Shortest, cache); err != nil {
		return Summary{}, err
	}
	s.ShortestKm = km(res.ShortestDistance)

	if res.Status == refine.Found {
		if s.Edges, err = exposures(ctx, g, res.Path, cache); err != nil {
			return Summary{}, err
		}
		s.AlternativeKm = km(res.Distance)
		s.SamePath = slices.Equal(res.Shortest, res.Path)
	}

	return s, nil
}

// exposures walks path pairwise, picking the lightest edge between each pair.
func exposures(ctx context.Context, g *core.Graph, path []string, cache *pollution.Cache) ([]EdgeExposure, error) {
	if len(path) < 2 {
		return []EdgeExposure{}, nil
	}
	out := make([]EdgeExposure, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		e, err := g.EdgeBetween(from, to)
		if err != nil {
			return nil, fmt.Errorf("report: edge %s→%s: %w", from, to, err)
		}
		idx, ok := EdgeIndex(cache.Lookup(ctx, from), cache.Lookup(ctx, to))
		ex := EdgeExposure{From: from, To: to, LengthM: e.Weight, Band: BandUnknown}
		if ok {
			ex.Index, ex.HasIndex, ex.Band = idx, true, Band(idx)
		}
		out = append(out, ex)
	}

	return out, nil
}

// EdgeIndex returns the mean of the endpoints' combined readings. An
// endpoint without data is skipped; if both lack data the index is unknown.
func EdgeIndex(a, b pollution.Sample) (float64, bool) {
	var sum float64
	var n int
	for _, s := range []pollution.Sample{a, b} {
		if v, ok := pollution.Combined(s); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}

	return sum / float64(n), true
}

// Band maps an exposure index to 0..6 (<10, <20, ..., <60, 60+).
func Band(index float64) int {
	for i, b := range bandBreaks {
		if index < b {
			return i
		}
	}

	return len(bandBreaks)
}

// BandColor returns the hex display colour for band, grey for BandUnknown.
func BandColor(band int) string {
	if band < 0 || band >= len(bandColors) {
		return "#808080"
	}

	return bandColors[band]
}

// km converts metres to kilometres rounded to two decimals.
func km(m float64) float64 {
	return math.Round(m/10) / 100
}
