// SPDX-License-Identifier: MIT

package dijkstra

import (
	"errors"
	"math"
)

// Sentinel errors returned by the Dijkstra implementation.
// An unreachable target is not an error: see Result.Reachable.
var (
	// ErrEmptySource indicates that the provided source vertex ID is empty.
	ErrEmptySource = errors.New("dijkstra: source vertex ID is empty")

	// ErrEmptyTarget indicates that the provided target vertex ID is empty.
	ErrEmptyTarget = errors.New("dijkstra: target vertex ID is empty")

	// ErrNilGraph indicates that a nil topology was passed.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates that the source or target is not in the topology.
	ErrVertexNotFound = errors.New("dijkstra: vertex not found in graph")

	// ErrNegativeWeight indicates that a negative edge weight was met during relaxation.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")
)

// Options configures a ShortestPath search.
//
// MaxDistance – vertices farther than this are not explored. Must be ≥ 0. Default +Inf.
type Options struct {
	MaxDistance float64 // Maximum distance to explore

	source string // set by ShortestPath
	target string // early-exit vertex, set by ShortestPath
}

// Option represents a functional option for configuring ShortestPath.
type Option func(*Options)

// WithMaxDistance sets a maximum distance threshold. A target beyond it is
// reported as unreachable.
// Panics with ErrBadMaxDistance on a negative value.
func WithMaxDistance(max float64) Option {
	if max < 0 || math.IsNaN(max) {
		panic(ErrBadMaxDistance.Error())
	}

	return func(o *Options) {
		o.MaxDistance = max
	}
}

// DefaultOptions returns an Options struct with no distance cap.
func DefaultOptions() Options {
	return Options{MaxDistance: math.Inf(1)}
}

// Result is the outcome of a point-to-point search.
//
// Reachable == false is the ordinary "no path in this view" outcome; Path is
// then nil and Distance is +Inf.
type Result struct {
	Reachable bool
	Path      []string // source ... target, inclusive
	Distance  float64
}
