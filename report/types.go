// SPDX-License-Identifier: MIT

package report

import "errors"

// ErrNoRoute indicates a result with neither a shortest nor an alternative path.
var ErrNoRoute = errors.New("report: result has no route")

// Route roles used in summaries and GeoJSON properties.
const (
	RoleShortest    = "shortest"
	RoleAlternative = "alternative"
)

// BandUnknown marks an edge whose endpoints have no readings at all.
const BandUnknown = -1

// bandBreaks are the upper bounds of bands 0..5; anything above is band 6.
var bandBreaks = []float64{10, 20, 30, 40, 50, 60}

// bandColors is the display palette per band, green to black.
var bandColors = []string{"#40b81c", "#d1d119", "#d1a619", "#d14419", "#9c1919", "#3d0101", "#000000"}

// EdgeExposure describes one edge of a route.
type EdgeExposure struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	LengthM  float64 `json:"length_m"`
	Index    float64 `json:"index"`
	HasIndex bool    `json:"has_index"`
	Band     int     `json:"band"`
}

// Summary compares the unconstrained shortest route with the planned one.
type Summary struct {
	Status        string  `json:"status"`
	Reason        string  `json:"reason,omitempty"`
	ShortestKm    float64 `json:"shortest_km"`
	AlternativeKm float64 `json:"alternative_km"`

	// SamePath is true when no lower-pollution alternative was needed.
	SamePath    bool    `json:"same_path"`
	Tolerance   float64 `json:"tolerance"`
	Escalations int     `json:"escalations"`
	Attempts    int     `json:"attempts"`
	OracleCalls int     `json:"oracle_calls"`

	ShortestPath  []string       `json:"shortest_path"`
	Path          []string       `json:"path,omitempty"`
	ShortestEdges []EdgeExposure `json:"shortest_edges"`
	Edges         []EdgeExposure `json:"edges,omitempty"`
}
