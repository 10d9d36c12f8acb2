// SPDX-License-Identifier: MIT

// Package compliance decides whether route nodes satisfy a pollution limit
// set scaled by a tolerance factor.
//
// Rules:
//
//   - The route's source and target are always compliant.
//   - Any other node is compliant iff every present reading is strictly below
//     limit × tolerance. Absent readings are compliant for that pollutant, so
//     a node with no data at all is never rejected.
//
// Samples come from a pollution.Cache, so re-evaluating a node across retry
// rounds never re-queries the oracle.
package compliance
