// SPDX-License-Identifier: MIT

package report

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/katalvlaran/airpath/core"
)

// GeoJSON renders s as a FeatureCollection: one LineString per route edge
// (properties role, from, to, length_m, index, band, color) followed by
// start and end Point features.
func GeoJSON(g *core.Graph, s Summary) (*geojson.FeatureCollection, error) {
	route := s.Path
	if len(route) == 0 {
		route = s.ShortestPath
	}
	if len(route) == 0 {
		return nil, ErrNoRoute
	}

	fc := geojson.NewFeatureCollection()
	addEdges(fc, g, RoleShortest, s.ShortestEdges)
	if !s.SamePath {
		addEdges(fc, g, RoleAlternative, s.Edges)
	}

	for _, ep := range []struct{ role, id string }{{"start", route[0]}, {"end", route[len(route)-1]}} {
		pt, ok := g.Point(ep.id)
		if !ok {
			continue
		}
		f := geojson.NewPointFeature([]float64{pt.Lon(), pt.Lat()})
		f.SetProperty("role", ep.role)
		f.SetProperty("node", ep.id)
		fc.AddFeature(f)
	}

	return fc, nil
}

func addEdges(fc *geojson.FeatureCollection, g *core.Graph, role string, edges []EdgeExposure) {
	for _, e := range edges {
		a, okA := g.Point(e.From)
		b, okB := g.Point(e.To)
		if !okA || !okB {
			continue
		}
		f := geojson.NewLineStringFeature([][]float64{{a.Lon(), a.Lat()}, {b.Lon(), b.Lat()}})
		f.SetProperty("role", role)
		f.SetProperty("from", e.From)
		f.SetProperty("to", e.To)
		f.SetProperty("length_m", e.LengthM)
		f.SetProperty("band", e.Band)
		f.SetProperty("color", BandColor(e.Band))
		if e.HasIndex {
			f.SetProperty("index", e.Index)
		}
		fc.AddFeature(f)
	}
}
