// SPDX-License-Identifier: MIT

// Package network builds street graphs for the planner from OpenStreetMap
// XML and answers the lookups the planner needs around them: the search area
// for a pair of points and the network node nearest to a coordinate.
//
// Vertices are OSM node IDs in decimal, placed at (lon, lat). Edges join
// consecutive nodes of every way the travel mode may use, weighted by their
// geodesic length in metres. Walking ignores one-way tags; cycling honours them.
package network
