// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"slices"
	"sort"

	"github.com/katalvlaran/airpath/core"
)

// Components returns the weakly connected components of g: every edge is
// treated as two-way. Components are ordered largest first, ties by smallest
// vertex ID, and each holds sorted vertex IDs.
func Components(ctx context.Context, g *core.Graph) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	u := newUndirected(g)

	var comps [][]string
	seen := make(map[string]bool, len(u.vertices))
	for _, id := range u.vertices {
		if seen[id] {
			continue
		}
		res, err := BFS(u, id, WithContext(ctx))
		if err != nil {
			return nil, err
		}
		for _, v := range res.Order {
			seen[v] = true
		}
		comp := slices.Clone(res.Order)
		sort.Strings(comp)
		comps = append(comps, comp)
	}
	sort.SliceStable(comps, func(i, j int) bool {
		if len(comps[i]) != len(comps[j]) {
			return len(comps[i]) > len(comps[j])
		}
		return comps[i][0] < comps[j][0]
	})

	return comps, nil
}

// Largest returns the vertex IDs of g's largest weakly connected component,
// or nil for an empty graph.
func Largest(ctx context.Context, g *core.Graph) ([]string, error) {
	comps, err := Components(ctx, g)
	if err != nil || len(comps) == 0 {
		return nil, err
	}

	return comps[0], nil
}

// undirected is a symmetric snapshot of a Graph's adjacency.
type undirected struct {
	vertices []string
	adj      map[string][]*core.Edge
}

func newUndirected(g *core.Graph) *undirected {
	u := &undirected{vertices: g.Vertices(), adj: make(map[string][]*core.Edge)}
	for _, id := range u.vertices {
		u.adj[id] = nil
	}
	for _, e := range g.Edges() {
		u.adj[e.From] = append(u.adj[e.From], e)
		if e.From != e.To {
			u.adj[e.To] = append(u.adj[e.To], e)
		}
	}

	return u
}

func (u *undirected) HasVertex(id string) bool {
	_, ok := u.adj[id]
	return ok
}

func (u *undirected) Neighbors(id string) ([]*core.Edge, error) {
	edges, ok := u.adj[id]
	if !ok {
		return nil, core.ErrVertexNotFound
	}

	return edges, nil
}

func (u *undirected) Vertices() []string { return u.vertices }

func (u *undirected) IsNil() bool { return u == nil }
