// SPDX-License-Identifier: MIT

// Package refine plans pollution-compliant routes.
//
// Plan runs an escalating retry loop over node-exclusion views of an
// immutable base graph:
//
//  1. Start with no excluded nodes and tolerance τ (1.0 by default).
//  2. Find the shortest path in the current view.
//     - No path and nothing excluded: the endpoints are disconnected in the
//       base graph. This is permanent and reported immediately.
//     - No path otherwise: every route around the bad nodes is gone at this
//       τ. Multiply τ by the escalation factor (1.5), clear the exclusion set
//       and retry, unless the escalation cap has been reached.
//  3. Check every interior node against limits × τ. If all comply the route
//     is Found. Otherwise exclude the violators and go back to step 2 with
//     the same τ.
//
// Each round either grows the exclusion set or raises τ and clears it, so
// the loop cannot stall. Cancellation is honoured between rounds.
//
// Every Plan call owns its exclusion set, tolerance and pollution cache.
// The oracle is therefore queried at most once per distinct node per call,
// and concurrent calls over the same graph share nothing mutable.
//
// Infeasible outcomes are values, not errors: inspect Result.Status and
// Result.Reason, or call Result.Err to map them to ErrDisconnected and
// ErrEscalationLimit. Plan itself returns an error only for invalid input
// or a cancelled context.
package refine
