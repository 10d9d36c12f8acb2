// SPDX-License-Identifier: MIT
//
// File: view.go
// Role: Non-mutating graph views.
// Determinism:
//   - Views preserve vertex/edge IDs and the base graph's ordering rules.
// Concurrency:
//   - Read locks on the base only; a View holds no lock of its own and is
//     safe for concurrent readers as long as the base is not mutated.
// AI-HINT (file):
//   - Views do NOT mutate the input Graph.
//   - View filters lazily: construction is O(|excluded|), queries pay the filter.
//   - InducedSubgraph copies: O(V + E), returns a standalone Graph.

package core

// View is a node-exclusion view: the base graph minus a set of excluded
// vertices and every edge touching them.
//
// Any number of views may share one base graph. A View never writes to the
// base, so retries and concurrent planning requests cannot corrupt each other.
type View struct {
	base     *Graph
	excluded NodeSet
}

// NewView returns base with the vertices in excluded removed, except those
// listed in keep (a route's source and target are never excludable).
//
// The exclusion set is copied, so later changes by the caller do not leak
// into the view.
//
// Complexity: O(|excluded| + |keep|).
func NewView(base *Graph, excluded NodeSet, keep ...string) *View {
	ex := make(NodeSet, len(excluded))
	for id := range excluded {
		ex[id] = struct{}{}
	}
	for _, id := range keep {
		delete(ex, id)
	}

	return &View{base: base, excluded: ex}
}

// IsNil reports whether the receiver is a nil pointer or wraps a nil base.
func (v *View) IsNil() bool { return v == nil || v.base == nil }

// Base returns the underlying graph.
func (v *View) Base() *Graph { return v.base }

// Excluded returns the excluded vertex IDs, sorted ascending.
func (v *View) Excluded() []string { return v.excluded.Sorted() }

// IsExcluded reports whether id is hidden by this view.
func (v *View) IsExcluded(id string) bool { return v.excluded.Has(id) }

// HasVertex reports whether id exists in the base and is not excluded.
// Complexity: O(1).
func (v *View) HasVertex(id string) bool {
	if v.excluded.Has(id) {
		return false
	}

	return v.base.HasVertex(id)
}

// Neighbors returns the base neighbors of id whose far end is not excluded.
//
// Errors:
//   - ErrVertexNotFound: if id is excluded or missing from the base.
//
// Complexity: O(d log d).
func (v *View) Neighbors(id string) ([]*Edge, error) {
	if v.excluded.Has(id) {
		return nil, ErrVertexNotFound
	}
	edges, err := v.base.Neighbors(id)
	if err != nil {
		return nil, err
	}
	if len(v.excluded) == 0 {
		return edges, nil
	}

	// Filter in place order-preserving; base already returned a fresh slice.
	out := edges[:0]
	for _, e := range edges {
		if v.excluded.Has(e.Other(id)) {
			continue
		}
		out = append(out, e)
	}

	return out, nil
}

// NeighborIDs returns the unique traversable neighbor IDs of id, sorted ascending.
func (v *View) NeighborIDs(id string) ([]string, error) {
	edges, err := v.Neighbors(id)
	if err != nil {
		return nil, err
	}

	return neighborIDs(id, edges), nil
}

// Vertices returns every non-excluded vertex ID, sorted ascending.
// Complexity: O(V log V).
func (v *View) Vertices() []string {
	all := v.base.Vertices()
	if len(v.excluded) == 0 {
		return all
	}
	out := all[:0]
	for _, id := range all {
		if !v.excluded.Has(id) {
			out = append(out, id)
		}
	}

	return out
}

// Materialize copies the view into a standalone Graph.
// Complexity: O(V + E).
func (v *View) Materialize() *Graph {
	keep := make(map[string]bool)
	for _, id := range v.Vertices() {
		keep[id] = true
	}

	return InducedSubgraph(v.base, keep)
}

// InducedSubgraph returns a new Graph induced by the set "keep" of vertex IDs:
// the result contains only vertices v where keep[v] is true, and all edges whose
// endpoints are both in keep. The input graph is not mutated. Edge IDs,
// weights and directedness are preserved.
//
// Complexity: O(V + E). Concurrency: read locks only on source.
func InducedSubgraph(g *Graph, keep map[string]bool) *Graph {
	g.muVert.RLock()
	opts := []GraphOption{WithDirected(g.directed)}
	if g.allowMulti {
		opts = append(opts, WithMultiEdges())
	}
	if g.allowLoops {
		opts = append(opts, WithLoops())
	}
	if g.allowMixed {
		opts = append(opts, WithMixedEdges())
	}
	out := NewGraph(opts...)
	for id, vx := range g.vertices {
		if keep[id] {
			out.vertices[id] = &Vertex{ID: vx.ID, Point: vx.Point}
			out.adjacency[id] = make(map[string]map[string]struct{})
		}
	}
	g.muVert.RUnlock()

	g.muEdgeAdj.RLock()
	out.nextEdgeID = g.nextEdgeID
	for eid, e := range g.edges {
		if !keep[e.From] || !keep[e.To] {
			continue
		}
		ne := &Edge{ID: eid, From: e.From, To: e.To, Weight: e.Weight, Directed: e.Directed}
		out.edges[eid] = ne
		ensureAdjacency(out, ne.From, ne.To)
		out.adjacency[ne.From][ne.To][eid] = struct{}{}
		if !ne.Directed && ne.From != ne.To {
			ensureAdjacency(out, ne.To, ne.From)
			out.adjacency[ne.To][ne.From][eid] = struct{}{}
		}
	}
	g.muEdgeAdj.RUnlock()

	return out
}
