// SPDX-License-Identifier: MIT

// Package pollution defines what the route planner knows about air quality:
// pollutants, per-node samples, limit sets and the oracle contract, plus the
// request-scoped cache that keeps oracle traffic to one lookup per node.
//
// Oracles are treated as slow and unreliable. A failed lookup is recorded as
// a sample with no readings, and a missing reading never counts against a
// node: pollution outages degrade routing quality but never block a route.
//
// The Cache is owned by a single planning request. It is not shared across
// requests because pollution data may be refreshed between them.
package pollution
