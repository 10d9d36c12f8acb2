// SPDX-License-Identifier: MIT

package compliance

import (
	"context"

	"github.com/katalvlaran/airpath/pollution"
)

// Evaluator checks nodes of one planning request against a limit set.
// It shares the request's Cache and is not safe for concurrent use.
type Evaluator struct {
	cache  *pollution.Cache
	limits pollution.LimitSet
	source string
	target string
}

// New returns an Evaluator for the route source → target.
func New(cache *pollution.Cache, limits pollution.LimitSet, source, target string) *Evaluator {
	return &Evaluator{cache: cache, limits: limits, source: source, target: target}
}

// Limits returns the unscaled limit set.
func (e *Evaluator) Limits() pollution.LimitSet { return e.limits }

// IsCompliant reports whether node id passes at tolerance tol.
func (e *Evaluator) IsCompliant(ctx context.Context, id string, tol float64) bool {
	if id == e.source || id == e.target {
		return true
	}

	return Within(e.cache.Lookup(ctx, id), e.limits, tol)
}

// EvaluatePath checks every node of path once. It returns whether all of
// them comply and the violating nodes in path order, without duplicates.
func (e *Evaluator) EvaluatePath(ctx context.Context, path []string, tol float64) (bool, []string) {
	var violators []string
	seen := make(map[string]struct{}, len(path))
	for _, id := range path {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if !e.IsCompliant(ctx, id, tol) {
			violators = append(violators, id)
		}
	}

	return len(violators) == 0, violators
}

// Within reports whether every present reading of s is strictly below
// limits × tol.
func Within(s pollution.Sample, limits pollution.LimitSet, tol float64) bool {
	for _, p := range pollution.All {
		v, ok := s.Get(p)
		if !ok {
			continue
		}
		if v >= limits.Limit(p)*tol {
			return false
		}
	}

	return true
}
