// SPDX-License-Identifier: MIT

package refine_test

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/airpath/core"
	"github.com/katalvlaran/airpath/oracle"
	"github.com/katalvlaran/airpath/pollution"
	"github.com/katalvlaran/airpath/refine"
)

// ExamplePlan avoids a junction whose PM2.5 exceeds the WHO guideline.
func ExamplePlan() {
	g := core.NewGraph()
	pts := map[string]orb.Point{"S": {0, 0}, "A": {1, 1}, "B": {1, -1}, "T": {2, 0}}
	for _, id := range []string{"S", "A", "B", "T"} {
		_ = g.AddVertex(id, pts[id])
	}
	_, _ = g.AddEdge("S", "A", 100)
	_, _ = g.AddEdge("A", "T", 100)
	_, _ = g.AddEdge("S", "B", 120)
	_, _ = g.AddEdge("B", "T", 120)

	air := oracle.NewStatic().
		Set(pts["A"], pollution.NewSample(map[pollution.Pollutant]float64{pollution.PM25: 35})).
		Set(pts["B"], pollution.NewSample(map[pollution.Pollutant]float64{pollution.PM25: 6}))

	res, err := refine.Plan(context.Background(), g, "S", "T", pollution.WHO2005(), air)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Status, res.Path, res.Distance, res.Tolerance)
	fmt.Println("shortest:", res.Shortest, res.ShortestDistance)
	// Output:
	// found [S B T] 240 1
	// shortest: [S A T] 200
}
