// SPDX-License-Identifier: MIT

// Package report turns a planning result into something a person can read:
// route lengths in kilometres, per-edge exposure bands and GeoJSON.
//
// An edge's exposure index is the mean of its two endpoints' combined
// readings (the mean of whichever pollutants are present). Bands follow a
// green-to-black scale with breaks every 10 µg/m³ up to 60.
package report
