// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search and connected components over a
// street network.
//
// What
//
//   - BFS explores a core.Topology (a Graph or a View) in hop order from a
//     start vertex and returns the visit Order and hop Depth.
//   - Components splits a Graph into weakly connected components, ignoring
//     one-way restrictions. Largest returns the biggest one.
//
// Why
//
//	OSM extracts are full of fragments: private courtyards, footpaths cut by
//	the extract boundary, mapping errors. Snapping an endpoint onto such an
//	island makes every route request fail as disconnected, so networks are
//	usually trimmed to their largest component after loading.
//
// Determinism
//
//	core.Graph.Neighbors returns edges sorted by Edge.ID and BFS enqueues in
//	that order, so Order is reproducible. Components are ordered by size
//	(largest first), ties by smallest vertex ID; IDs within a component are
//	sorted.
//
// Directed edges
//
//	BFS follows one-way edges only From→To. Components treats every edge as
//	two-way.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - BFS:        Time O(V + E), Memory O(V).
//   - Components: Time O(V log V + E), Memory O(V + E).
//
// Usage
//
//	res, err := bfs.BFS(g, "start", bfs.WithContext(ctx))
//
//	keep, err := bfs.Largest(ctx, g)
//
// Errors
//
//   - ErrGraphNil             if the graph is nil.
//   - ErrStartVertexNotFound  if the start vertex does not exist.
//   - ErrNeighbors            if neighbor lookup fails.
//   - ctx.Err() on cancellation.
package bfs
