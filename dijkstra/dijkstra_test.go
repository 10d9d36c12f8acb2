// SPDX-License-Identifier: MIT

package dijkstra_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/airpath/core"
	"github.com/katalvlaran/airpath/dijkstra"
)

func build(t *testing.T, g *core.Graph, ids []string, edges [][3]interface{}) *core.Graph {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, g.AddVertex(id, orb.Point{}))
	}
	for _, e := range edges {
		_, err := g.AddEdge(e[0].(string), e[1].(string), e[2].(float64))
		require.NoError(t, err)
	}

	return g
}

func diamond(t *testing.T) *core.Graph {
	return build(t, core.NewGraph(), []string{"S", "A", "B", "T"}, [][3]interface{}{
		{"S", "A", 1.0}, {"A", "T", 1.0}, {"S", "B", 1.0}, {"B", "T", 1.0},
	})
}

func TestShortestPath_Validation(t *testing.T) {
	g := diamond(t)
	cases := []struct {
		name   string
		topo   core.Topology
		src    string
		dst    string
		target error
	}{
		{"empty source", g, "", "T", dijkstra.ErrEmptySource},
		{"empty target", g, "S", "", dijkstra.ErrEmptyTarget},
		{"nil graph", nil, "S", "T", dijkstra.ErrNilGraph},
		{"typed nil graph", (*core.Graph)(nil), "S", "T", dijkstra.ErrNilGraph},
		{"missing source", g, "Q", "T", dijkstra.ErrVertexNotFound},
		{"missing target", g, "S", "Q", dijkstra.ErrVertexNotFound},
		{"excluded target", core.NewView(g, core.NewNodeSet("T"), "S"), "S", "T", dijkstra.ErrVertexNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dijkstra.ShortestPath(tc.topo, tc.src, tc.dst)
			assert.ErrorIs(t, err, tc.target)
		})
	}
}

func TestShortestPath_TieBreakIsDeterministic(t *testing.T) {
	g := diamond(t)
	for i := 0; i < 20; i++ {
		res, err := dijkstra.ShortestPath(g, "S", "T")
		require.NoError(t, err)
		require.True(t, res.Reachable)
		assert.Equal(t, []string{"S", "A", "T"}, res.Path)
		assert.InDelta(t, 2.0, res.Distance, 1e-9)
	}
}

func TestShortestPath_ReverseUndirectedEdge(t *testing.T) {
	// Edges are stored From→To; walking T→S must use the To side.
	g := diamond(t)
	res, err := dijkstra.ShortestPath(g, "T", "S")
	require.NoError(t, err)
	assert.Equal(t, []string{"T", "A", "S"}, res.Path)
}

func TestShortestPath_SourceEqualsTarget(t *testing.T) {
	res, err := dijkstra.ShortestPath(diamond(t), "S", "S")
	require.NoError(t, err)
	assert.True(t, res.Reachable)
	assert.Equal(t, []string{"S"}, res.Path)
	assert.Zero(t, res.Distance)
}

func TestShortestPath_Unreachable(t *testing.T) {
	g := build(t, core.NewGraph(), []string{"S", "A", "X", "T"}, [][3]interface{}{
		{"S", "A", 1.0}, {"X", "T", 1.0},
	})
	res, err := dijkstra.ShortestPath(g, "S", "T")
	require.NoError(t, err)
	assert.False(t, res.Reachable)
	assert.Nil(t, res.Path)
	assert.True(t, math.IsInf(res.Distance, 1))
}

func TestShortestPath_ViewCutsAllRoutes(t *testing.T) {
	g := diamond(t)
	v := core.NewView(g, core.NewNodeSet("A", "B"), "S", "T")
	res, err := dijkstra.ShortestPath(v, "S", "T")
	require.NoError(t, err)
	assert.False(t, res.Reachable)
}

func TestShortestPath_PrefersLighterRoute(t *testing.T) {
	g := build(t, core.NewGraph(), []string{"S", "A", "B", "T"}, [][3]interface{}{
		{"S", "A", 1.0}, {"A", "T", 5.0}, {"S", "B", 2.0}, {"B", "T", 2.0},
	})
	res, err := dijkstra.ShortestPath(g, "S", "T")
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "B", "T"}, res.Path)
	assert.InDelta(t, 4.0, res.Distance, 1e-9)
}

func TestShortestPath_RespectsOneWay(t *testing.T) {
	g := core.NewMixedGraph()
	for _, id := range []string{"S", "T"} {
		require.NoError(t, g.AddVertex(id, orb.Point{}))
	}
	_, err := g.AddEdge("T", "S", 1, core.WithEdgeDirected(true))
	require.NoError(t, err)

	res, err := dijkstra.ShortestPath(g, "S", "T")
	require.NoError(t, err)
	assert.False(t, res.Reachable)

	res, err = dijkstra.ShortestPath(g, "T", "S")
	require.NoError(t, err)
	assert.True(t, res.Reachable)
}

func TestShortestPath_MaxDistance(t *testing.T) {
	g := build(t, core.NewGraph(), []string{"A", "B", "C"}, [][3]interface{}{
		{"A", "B", 1.0}, {"B", "C", 10.0},
	})
	res, err := dijkstra.ShortestPath(g, "A", "C", dijkstra.WithMaxDistance(5))
	require.NoError(t, err)
	assert.False(t, res.Reachable, "C lies beyond the cap")
	assert.True(t, math.IsInf(res.Distance, 1))

	res, err = dijkstra.ShortestPath(g, "A", "C", dijkstra.WithMaxDistance(11))
	require.NoError(t, err)
	assert.True(t, res.Reachable, "the cap is inclusive")
	assert.Equal(t, []string{"A", "B", "C"}, res.Path)

	assert.PanicsWithValue(t, dijkstra.ErrBadMaxDistance.Error(), func() { dijkstra.WithMaxDistance(-1) })
	assert.PanicsWithValue(t, dijkstra.ErrBadMaxDistance.Error(), func() { dijkstra.WithMaxDistance(math.NaN()) })
}

func TestShortestPath_MaxDistanceOverView(t *testing.T) {
	g := build(t, core.NewGraph(), []string{"S", "A", "B", "T"}, [][3]interface{}{
		{"S", "A", 1.0}, {"A", "T", 1.0}, {"S", "B", 2.0}, {"B", "T", 2.0},
	})
	v := core.NewView(g, core.NewNodeSet("A"), "S", "T")

	res, err := dijkstra.ShortestPath(v, "S", "T", dijkstra.WithMaxDistance(3))
	require.NoError(t, err)
	assert.False(t, res.Reachable)

	res, err = dijkstra.ShortestPath(v, "S", "T", dijkstra.WithMaxDistance(4))
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "B", "T"}, res.Path)
}
