// SPDX-License-Identifier: MIT

package core_test

import (
	"fmt"
	"testing"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/airpath/core"
)

// star builds Center joined to n leaves.
func star(n int) *core.Graph {
	g := core.NewGraph()
	_ = g.AddVertex("Center", orb.Point{})
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("Node%d", i)
		_ = g.AddVertex(id, orb.Point{float64(i), 0})
		_, _ = g.AddEdge("Center", id, 1)
	}

	return g
}

// BenchmarkAddEdge measures adding street segments between existing junctions.
func BenchmarkAddEdge(b *testing.B) {
	g := core.NewGraph(core.WithMultiEdges())
	_ = g.AddVertex("Root", orb.Point{})
	for i := 0; i < 100; i++ {
		_ = g.AddVertex(fmt.Sprintf("N%d", i), orb.Point{})
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.AddEdge("Root", fmt.Sprintf("N%d", i%100), 1)
	}
}

// BenchmarkNeighbors measures neighbor retrieval on a 1000-leaf star.
func BenchmarkNeighbors(b *testing.B) {
	g := star(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.Neighbors("Center")
	}
}

// BenchmarkViewNeighbors measures the same lookup through views hiding none,
// a tenth and half of the leaves.
func BenchmarkViewNeighbors(b *testing.B) {
	g := star(1000)
	for _, hide := range []int{0, 100, 500} {
		ex := core.NewNodeSet()
		for i := 0; i < hide; i++ {
			ex.Add(fmt.Sprintf("Node%d", i*(1000/max(hide, 1))))
		}
		v := core.NewView(g, ex)
		b.Run(fmt.Sprintf("Excluded%d", hide), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = v.Neighbors("Center")
			}
		})
	}
}
