// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/airpath/core"
)

// queueItem pairs a vertex ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	t       core.Topology
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	res     *Result
}

// BFS runs breadth-first search on t starting from start.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input and
// ErrNeighbors for graph failures. On cancellation the partial Result is
// returned with ctx.Err().
func BFS(t core.Topology, start string, opts ...Option) (*Result, error) {
	if t == nil || t.IsNil() {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !t.HasVertex(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartVertexNotFound, start)
	}

	w := &walker{
		t:       t,
		ctx:     o.Ctx,
		visited: make(map[string]bool),
		res:     &Result{Depth: make(map[string]int)},
	}
	w.enqueue(start, 0)

	return w.res, w.loop()
}

func (w *walker) enqueue(id string, d int) {
	w.visited[id] = true
	w.res.Depth[id] = d
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}

	return nil
}

// enqueueNeighbors enqueues each unseen neighbor one hop deeper.
func (w *walker) enqueueNeighbors(item queueItem) error {
	edges, err := w.t.Neighbors(item.id)
	if err != nil {
		return fmt.Errorf("%w: failed to get neighbors of %q: %v", ErrNeighbors, item.id, err)
	}
	for _, e := range edges {
		nbr := e.Other(item.id)
		if w.visited[nbr] {
			continue
		}
		w.enqueue(nbr, item.depth+1)
	}

	return nil
}
