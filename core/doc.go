// Package core provides the in-memory street network used by the route
// planner and the node-exclusion views layered on top of it.
//
// The Graph G = (V,E):
//
//   - Vertices carry an opaque string ID and an orb.Point (longitude, latitude).
//   - Edges carry a non-negative float64 Weight (distance) and may be one-way.
//   - Directed vs. undirected default (WithDirected); per-edge overrides in
//     mixed graphs (WithMixedEdges + WithEdgeDirected).
//   - Parallel edges (WithMultiEdges) and self-loops (WithLoops) are opt-in.
//   - Every edge endpoint must be an existing vertex.
//   - Deterministic iteration: Vertices(), Edges(), Neighbors() are sorted.
//
// Views:
//
//	NewView(base, excluded, keep...) hides a set of vertices and every edge
//	touching them without touching base. Source and target are passed in keep
//	so they can never be hidden. Construction is O(|excluded|); the filter is
//	applied on each Neighbors call. InducedSubgraph and View.Materialize build
//	a standalone copy when one is needed.
//
// Topology is the read surface implemented by both *Graph and *View, so a
// path finder runs unchanged over either.
//
// Errors:
//
//	ErrEmptyVertexID        – zero-length vertex ID
//	ErrVertexNotFound       – missing (or excluded) vertex
//	ErrEdgeNotFound         – missing edge
//	ErrBadWeight            – negative, NaN or infinite weight
//	ErrLoopNotAllowed       – self-loop when loops disabled
//	ErrMultiEdgeNotAllowed  – parallel edge when multi-edges disabled
//	ErrMixedEdgesNotAllowed – per-edge override without mixed-mode
//
// Concurrency: muVert guards the vertex catalog, muEdgeAdj guards edges and
// adjacency; lock order is muVert -> muEdgeAdj.
package core
