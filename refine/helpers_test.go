// SPDX-License-Identifier: MIT

package refine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/airpath/core"
	"github.com/katalvlaran/airpath/pollution"
)

// Node coordinates of the diamond fixture.
var (
	ptS = orb.Point{0, 0}
	ptA = orb.Point{1, 1}
	ptB = orb.Point{1, -1}
	ptT = orb.Point{2, 0}
)

// diamond builds S–A–T and S–B–T with equal lengths, A-side edges first.
func diamond(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for id, pt := range map[string]orb.Point{"S": ptS, "A": ptA, "B": ptB, "T": ptT} {
		require.NoError(t, g.AddVertex(id, pt))
	}
	for _, e := range [][2]string{{"S", "A"}, {"A", "T"}, {"S", "B"}, {"B", "T"}} {
		_, err := g.AddEdge(e[0], e[1], 1)
		require.NoError(t, err)
	}

	return g
}

// directedDiamond builds the one-way loop S→A→T→B→S: S reaches T only
// through A, and T reaches S only through B.
func directedDiamond(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewMixedGraph()
	for id, pt := range map[string]orb.Point{"S": ptS, "A": ptA, "B": ptB, "T": ptT} {
		require.NoError(t, g.AddVertex(id, pt))
	}
	for _, e := range [][2]string{{"S", "A"}, {"A", "T"}, {"T", "B"}, {"B", "S"}} {
		_, err := g.AddEdge(e[0], e[1], 1, core.WithEdgeDirected(true))
		require.NoError(t, err)
	}

	return g
}

// scriptedOracle serves fixed PM2.5 readings per coordinate, fails for
// coordinates in fail, and counts calls.
type scriptedOracle struct {
	mu    sync.Mutex
	pm25  map[orb.Point]float64
	fail  map[orb.Point]bool
	calls map[orb.Point]int
}

func newScripted(pm25 map[orb.Point]float64) *scriptedOracle {
	return &scriptedOracle{pm25: pm25, fail: map[orb.Point]bool{}, calls: map[orb.Point]int{}}
}

func (o *scriptedOracle) Sample(_ context.Context, pt orb.Point) (pollution.Sample, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls[pt]++
	if o.fail[pt] {
		return pollution.Sample{}, errors.New("sensor offline")
	}
	v, ok := o.pm25[pt]
	if !ok {
		return pollution.Sample{}, nil
	}

	return pollution.NewSample(map[pollution.Pollutant]float64{pollution.PM25: v}), nil
}

func (o *scriptedOracle) maxCalls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, c := range o.calls {
		n = max(n, c)
	}

	return n
}

// pm25Limit only constrains PM2.5 in practice.
var pm25Limit = pollution.LimitSet{PM25: 10, PM10: 1000, NO2: 1000}
