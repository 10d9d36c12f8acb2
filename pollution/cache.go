// SPDX-License-Identifier: MIT
//
// File: cache.go
// Role: Request-scoped node → Sample memo in front of an Oracle.
// Concurrency:
//   - A Cache belongs to one planning request and is not safe for concurrent use.

package pollution

import (
	"context"
	"io"
	"log/slog"

	"github.com/paulmach/orb"
)

// Locator resolves a node ID to its coordinate. (*core.Graph).Point satisfies it.
type Locator func(id string) (orb.Point, bool)

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithCacheLogger sets the logger used to report absorbed oracle failures.
func WithCacheLogger(l *slog.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSeed preloads samples. Seeded nodes never reach the oracle and do not
// count towards Calls.
func WithSeed(samples map[string]Sample) CacheOption {
	return func(c *Cache) {
		for id, s := range samples {
			c.entries[id] = s
		}
	}
}

// Cache memoizes oracle samples by node ID.
//
// The oracle is queried at most once per distinct node for the lifetime of
// the Cache, no matter how many times the node is looked up. A failed query
// is cached as an unavailable Sample, so failures are not retried either.
type Cache struct {
	oracle   Oracle
	locate   Locator
	log      *slog.Logger
	entries  map[string]Sample
	calls    int
	failures int
}

// NewCache returns an empty Cache over oracle, resolving coordinates with locate.
func NewCache(oracle Oracle, locate Locator, opts ...CacheOption) *Cache {
	c := &Cache{
		oracle:  oracle,
		locate:  locate,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		entries: make(map[string]Sample),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Lookup returns the sample for node id, querying the oracle on first use.
// It never fails: an unknown node, a nil oracle or an oracle error all yield
// an unavailable Sample.
func (c *Cache) Lookup(ctx context.Context, id string) Sample {
	if s, ok := c.entries[id]; ok {
		return s
	}

	var (
		s  Sample
		pt orb.Point
		ok bool
	)
	if c.locate != nil {
		pt, ok = c.locate(id)
	}
	switch {
	case !ok:
		c.failures++
		c.log.Warn("pollution: node has no coordinate", slog.String("node", id))
		recordSample(ctx, outcomeError)
	case c.oracle == nil:
		c.failures++
		recordSample(ctx, outcomeError)
	default:
		c.calls++
		got, err := c.oracle.Sample(ctx, pt)
		if err != nil {
			c.failures++
			c.log.Warn("pollution: oracle lookup failed",
				slog.String("node", id),
				slog.Float64("lat", pt.Lat()),
				slog.Float64("lon", pt.Lon()),
				slog.Any("error", err))
			recordSample(ctx, outcomeError)
			break
		}
		s = got
		if s.Unavailable() {
			recordSample(ctx, outcomeUnavailable)
		} else {
			recordSample(ctx, outcomeOK)
		}
	}
	c.entries[id] = s

	return s
}

// Calls returns how many times the oracle was queried.
func (c *Cache) Calls() int { return c.calls }

// Failures returns how many lookups were absorbed as unavailable because of an error.
func (c *Cache) Failures() int { return c.failures }

// Len returns the number of cached nodes.
func (c *Cache) Len() int { return len(c.entries) }

// Snapshot returns a copy of every cached sample.
func (c *Cache) Snapshot() map[string]Sample {
	out := make(map[string]Sample, len(c.entries))
	for id, s := range c.entries {
		out[id] = s
	}

	return out
}
