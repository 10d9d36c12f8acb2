// SPDX-License-Identifier: MIT

// Package dijkstra implements Dijkstra's shortest-path algorithm over any
// core.Topology: the base street network or a node-exclusion view of it.
//
// Overview:
//
//   - ShortestPath answers the point-to-point question the route planner asks
//     once per refinement round. It stops as soon as the target is settled.
//   - The frontier is a lazy-decrease-key binary heap ordered by
//     (distance, vertex ID).
//
// Determinism:
//
//   - Neighbors are relaxed in Edge.ID order and a predecessor is replaced only
//     by a strictly shorter distance. Equal-cost ties therefore resolve the same
//     way on every run over the same graph.
//
// Reachability:
//
//   - "No path" is not an error. ShortestPath returns Result{Reachable: false}
//     so that callers can tell a disconnected view apart from invalid input.
//
// Options:
//
//   - WithMaxDistance(float64): vertices farther than this stay unexplored, and
//     a target beyond it is unreachable. The planner uses it as a detour cap.
//
// Errors:
//
//   - ErrEmptySource, ErrEmptyTarget, ErrNilGraph, ErrVertexNotFound for invalid
//     input; ErrNegativeWeight if relaxation meets a negative edge.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E) worst case, proportional to the explored region otherwise.
package dijkstra
