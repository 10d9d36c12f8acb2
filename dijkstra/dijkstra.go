// SPDX-License-Identifier: MIT

package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/airpath/core"
)

// ShortestPath finds one minimum-weight path from source to target in t.
//
// A disconnected pair yields Result{Reachable: false} and a nil error: "no
// path in this view" is an expected outcome, not a failure. Errors are
// reserved for invalid input.
//
// Ties between equal-distance vertices are broken by vertex ID, and an equal
// alternative never replaces an already recorded predecessor, so the result
// is deterministic for a fixed graph.
//
// The search stops as soon as target is settled, or once every remaining
// vertex lies beyond MaxDistance.
func ShortestPath(t core.Topology, source, target string, opts ...Option) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.source = source
	cfg.target = target

	if source == "" {
		return Result{}, ErrEmptySource
	}
	if target == "" {
		return Result{}, ErrEmptyTarget
	}
	if t == nil || t.IsNil() {
		return Result{}, ErrNilGraph
	}
	if !t.HasVertex(source) {
		return Result{}, fmt.Errorf("%w: source %q", ErrVertexNotFound, source)
	}
	if !t.HasVertex(target) {
		return Result{}, fmt.Errorf("%w: target %q", ErrVertexNotFound, target)
	}

	r := newRunner(t, cfg)
	if err := r.process(); err != nil {
		return Result{}, err
	}
	if !r.visited[target] {
		return Result{Distance: math.Inf(1)}, nil
	}

	// Walk predecessors back from target, then reverse.
	path := []string{target}
	for v := target; v != source; {
		v = r.prev[v]
		path = append(path, v)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return Result{Reachable: true, Path: path, Distance: r.dist[target]}, nil
}

// runner holds the mutable state for a single Dijkstra execution.
// Maps are filled lazily so a point-to-point query on a large network only
// pays for the part it explores.
type runner struct {
	t       core.Topology      // read-only within a run
	options Options            // Configuration options
	dist    map[string]float64 // vertex ID → best known distance
	prev    map[string]string  // vertex ID → predecessor on the best path
	visited map[string]bool    // vertex ID → distance finalized
	pq      nodePQ             // lazy min-heap
}

// newRunner seeds the heap with the source at distance 0.
func newRunner(t core.Topology, cfg Options) *runner {
	r := &runner{
		t:       t,
		options: cfg,
		dist:    map[string]float64{cfg.source: 0},
		prev:    map[string]string{cfg.source: ""},
		visited: make(map[string]bool),
	}
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: cfg.source, dist: 0})

	return r
}

// process repeatedly settles the closest unvisited vertex and relaxes its
// outgoing edges.
//
// Loop termination conditions:
//
//   - The heap becomes empty (all reachable vertices processed).
//   - The minimum distance in the heap exceeds MaxDistance.
//   - The target has been settled.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id

		// Skip stale heap entries (lazy decrease-key).
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[u] = true
		if u == r.options.target {
			return nil
		}
		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax tries to improve the distance of each neighbor of u.
// A neighbor is updated only on a strictly shorter distance.
func (r *runner) relax(u string) error {
	neighbors, err := r.t.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get neighbors of %q: %w", u, err)
	}

	du := r.dist[u]
	for _, e := range neighbors {
		v := e.Other(u)
		w := e.Weight
		if w < 0 {
			return fmt.Errorf("%w: edge %s→%s weight=%g", ErrNegativeWeight, u, v, w)
		}
		if r.visited[v] {
			continue
		}

		nd := du + w
		if nd > r.options.MaxDistance {
			continue
		}
		if cur, ok := r.dist[v]; ok && nd >= cur {
			continue
		}
		r.dist[v] = nd
		r.prev[v] = u
		heap.Push(&r.pq, &nodeItem{id: v, dist: nd})
	}

	return nil
}

// nodeItem represents a vertex and its tentative distance from the source.
type nodeItem struct {
	id   string
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by (dist, id).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
