// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Thin public facade: constructors and read-only configuration getters.
// Policy:
//   - No algorithms or hidden state here.

package core

// NewMixedGraph creates a Graph that accepts per-edge direction overrides,
// the usual shape of a street network (two-way streets plus one-way segments).
// Options are applied left-to-right after WithMixedEdges().
func NewMixedGraph(opts ...GraphOption) *Graph {
	mixed := make([]GraphOption, 0, len(opts)+1)
	mixed = append(mixed, WithMixedEdges())
	mixed = append(mixed, opts...)

	return NewGraph(mixed...)
}

// Directed reports the default directedness applied to new edges.
func (g *Graph) Directed() bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.directed
}

// Looped reports whether self-loops are permitted.
func (g *Graph) Looped() bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.allowLoops
}

// Multigraph reports whether parallel edges are permitted.
func (g *Graph) Multigraph() bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.allowMulti
}

// MixedEdges reports whether per-edge Directed overrides are permitted.
func (g *Graph) MixedEdges() bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.allowMixed
}

// GraphStats is a read-only snapshot of a graph's size and direction mix.
type GraphStats struct {
	VertexCount         int
	EdgeCount           int
	DirectedEdgeCount   int
	UndirectedEdgeCount int
	TotalWeight         float64
}

// Stats returns a snapshot of catalog sizes.
//
// The two locks are taken one after the other, never together.
// Complexity: O(E).
func (g *Graph) Stats() GraphStats {
	var s GraphStats
	g.muVert.RLock()
	s.VertexCount = len(g.vertices)
	g.muVert.RUnlock()

	g.muEdgeAdj.RLock()
	s.EdgeCount = len(g.edges)
	for _, e := range g.edges {
		if e.Directed {
			s.DirectedEdgeCount++
		} else {
			s.UndirectedEdgeCount++
		}
		s.TotalWeight += e.Weight
	}
	g.muEdgeAdj.RUnlock()

	return s
}
