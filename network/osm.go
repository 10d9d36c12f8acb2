// SPDX-License-Identifier: MIT
//
// File: osm.go
// Role: OSM XML → core.Graph.

package network

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"

	"github.com/katalvlaran/airpath/bfs"
	"github.com/katalvlaran/airpath/core"
)

// LoadOSM reads OSM XML from r and builds the network usable by mode.
// Ways referencing nodes missing from the input are split at the gap.
func LoadOSM(ctx context.Context, r io.Reader, mode TravelMode, opts ...Option) (*core.Graph, error) {
	if mode != Walk && mode != Bike {
		return nil, errors.Wrapf(ErrUnknownMode, "load osm: %d", int(mode))
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	nodes := make(map[osm.NodeID]orb.Point)
	var ways []*osm.Way

	scanner := osmxml.New(ctx, r)
	defer scanner.Close()
	for scanner.Scan() {
		switch obj := scanner.Object().(type) {
		case *osm.Node:
			pt := orb.Point{obj.Lon, obj.Lat}
			if cfg.Bound != nil && !cfg.Bound.Contains(pt) {
				continue
			}
			nodes[obj.ID] = pt
		case *osm.Way:
			if usable(obj.Tags, mode) {
				ways = append(ways, obj)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "network: scan osm xml")
	}

	g := core.NewMixedGraph(core.WithMultiEdges())
	for _, w := range ways {
		dir := wayDirection(w.Tags, mode)
		for i := 1; i < len(w.Nodes); i++ {
			a, b := w.Nodes[i-1].ID, w.Nodes[i].ID
			pa, okA := nodes[a]
			pb, okB := nodes[b]
			if !okA || !okB || a == b {
				continue
			}
			ka, kb := nodeKey(a), nodeKey(b)
			if err := g.AddVertex(ka, pa); err != nil {
				return nil, errors.Wrapf(err, "network: way %d", w.ID)
			}
			if err := g.AddVertex(kb, pb); err != nil {
				return nil, errors.Wrapf(err, "network: way %d", w.ID)
			}
			from, to := ka, kb
			if dir == backward {
				from, to = kb, ka
			}
			_, err := g.AddEdge(from, to, geo.DistanceHaversine(pa, pb), core.WithEdgeDirected(dir != bothWays))
			if err != nil {
				return nil, errors.Wrapf(err, "network: way %d segment %d", w.ID, i)
			}
		}
	}

	if cfg.LargestComponent {
		keep, err := bfs.Largest(ctx, g)
		if err != nil {
			return nil, errors.Wrap(err, "network: components")
		}
		if dropped := g.VertexCount() - len(keep); dropped > 0 {
			set := make(map[string]bool, len(keep))
			for _, id := range keep {
				set[id] = true
			}
			g = core.InducedSubgraph(g, set)
			cfg.Logger.Debug("dropped disconnected fragments", slog.Int("vertices", dropped))
		}
	}

	cfg.Logger.Info("network loaded",
		slog.String("mode", mode.String()),
		slog.Int("ways", len(ways)),
		slog.Int("vertices", g.VertexCount()),
		slog.Int("edges", g.EdgeCount()),
	)

	return g, nil
}

func nodeKey(id osm.NodeID) string {
	return strconv.FormatInt(int64(id), 10)
}
