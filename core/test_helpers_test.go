// SPDX-License-Identifier: MIT
// Package core_test contains fixtures shared by the core tests.

package core_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/airpath/core"
)

// Common vertex IDs used across core tests.
const (
	VertexS = "S"
	VertexA = "A"
	VertexB = "B"
	VertexT = "T"
	VertexX = "X"
	VertexY = "Y"
)

// Common weights used across core tests.
const (
	Weight1 = 1.0
	Weight2 = 2.0
	Weight5 = 5.0
)

// mustVertices adds each id at a distinct point.
func mustVertices(t *testing.T, g *core.Graph, ids ...string) {
	t.Helper()
	for i, id := range ids {
		require.NoError(t, g.AddVertex(id, orb.Point{float64(i), float64(i)}))
	}
}

// mustEdge adds an edge and fails the test on error.
func mustEdge(t *testing.T, g *core.Graph, from, to string, w float64, opts ...core.EdgeOption) string {
	t.Helper()
	eid, err := g.AddEdge(from, to, w, opts...)
	require.NoError(t, err)

	return eid
}

// diamond builds S–A–T and S–B–T, both of length 2.
func diamond(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	mustVertices(t, g, VertexS, VertexA, VertexB, VertexT)
	mustEdge(t, g, VertexS, VertexA, Weight1)
	mustEdge(t, g, VertexA, VertexT, Weight1)
	mustEdge(t, g, VertexS, VertexB, Weight1)
	mustEdge(t, g, VertexB, VertexT, Weight1)

	return g
}
