// SPDX-License-Identifier: MIT

package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/airpath/core"
	"github.com/katalvlaran/airpath/network"
	"github.com/katalvlaran/airpath/oracle"
	"github.com/katalvlaran/airpath/pollution"
	"github.com/katalvlaran/airpath/server"
)

var pts = map[string]orb.Point{
	"S": {-1.90, 52.48}, "A": {-1.89, 52.49}, "B": {-1.89, 52.47}, "T": {-1.88, 52.48},
}

func init() { gin.SetMode(gin.TestMode) }

func pm25(v float64) pollution.Sample {
	return pollution.NewSample(map[pollution.Pollutant]float64{pollution.PM25: v})
}

// diamond is S–A–T (2000 m) and S–B–T (2200 m).
func diamond(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, id := range []string{"S", "A", "B", "T"} {
		require.NoError(t, g.AddVertex(id, pts[id]))
	}
	for _, e := range []struct {
		from, to string
		w        float64
	}{{"S", "A", 1000}, {"A", "T", 1000}, {"S", "B", 1100}, {"B", "T", 1100}} {
		_, err := g.AddEdge(e.from, e.to, e.w)
		require.NoError(t, err)
	}

	return g
}

func body(from, to orb.Point, mode string) string {
	raw, _ := json.Marshal(server.RouteRequest{
		Origin:      server.LatLon{Lat: from.Lat(), Lon: from.Lon()},
		Destination: server.LatLon{Lat: to.Lat(), Lon: to.Lon()},
		Mode:        mode,
	})

	return string(raw)
}

func do(h http.Handler, method, path, payload string, hdr ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

type RouteSuite struct {
	suite.Suite
	air *oracle.Static
	h   http.Handler
}

func (s *RouteSuite) SetupTest() {
	reg := network.NewRegistry(network.FileLoader{}, nil)
	reg.Put(network.Walk, diamond(s.T()))
	s.air = oracle.NewStatic().SetFallback(pm25(5)).Set(pts["A"], pm25(50))

	srv, err := server.New(reg, s.air)
	s.Require().NoError(err)
	s.h = srv.Handler()
}

func (s *RouteSuite) TestAvoidsPollutedJunction() {
	w := do(s.h, http.MethodPost, "/v1/routes", body(pts["S"], pts["T"], ""))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.NotEmpty(w.Header().Get("X-Request-ID"))

	var resp server.RouteResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("walk", resp.Mode)
	s.Equal("S", resp.Source)
	s.Equal("T", resp.Target)
	s.Equal([]string{"S", "B", "T"}, resp.Summary.Path)
	s.Equal([]string{"S", "A", "T"}, resp.Summary.ShortestPath)
	s.Equal(2.0, resp.Summary.ShortestKm)
	s.Equal(2.2, resp.Summary.AlternativeKm)
	s.False(resp.Summary.SamePath)
	s.InDelta(52.48-network.DefaultSearchPad, resp.SearchArea.MinLat, 1e-9)
	s.InDelta(-1.88+network.DefaultSearchPad, resp.SearchArea.MaxLon, 1e-9)
}

func (s *RouteSuite) TestEchoesRequestID() {
	w := do(s.h, http.MethodPost, "/v1/routes", body(pts["S"], pts["T"], "walk"), "X-Request-ID", "abc-123")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("abc-123", w.Header().Get("X-Request-ID"))

	var resp server.RouteResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("abc-123", resp.RequestID)
}

func (s *RouteSuite) TestRequestLimitsOverrideDefaults() {
	lax := pollution.LimitSet{PM25: 100, PM10: 100, NO2: 100}
	raw, _ := json.Marshal(server.RouteRequest{
		Origin:      server.LatLon{Lat: pts["S"].Lat(), Lon: pts["S"].Lon()},
		Destination: server.LatLon{Lat: pts["T"].Lat(), Lon: pts["T"].Lon()},
		Limits:      &lax,
	})
	w := do(s.h, http.MethodPost, "/v1/routes", string(raw))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp server.RouteResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Summary.SamePath)
	s.Equal([]string{"S", "A", "T"}, resp.Summary.Path)
}

func (s *RouteSuite) TestBadRequests() {
	bad := pollution.LimitSet{PM25: -1, PM10: 1, NO2: 1}
	badLimits, _ := json.Marshal(server.RouteRequest{Limits: &bad})

	cases := map[string]string{
		"not json":     "{",
		"empty body":   "",
		"unknown mode": body(pts["S"], pts["T"], "teleport"),
		"latitude":     `{"origin":{"lat":95,"lon":0},"destination":{"lat":0,"lon":0}}`,
		"bad limits":   string(badLimits),
	}
	for name, payload := range cases {
		s.Run(name, func() {
			w := do(s.h, http.MethodPost, "/v1/routes", payload)
			s.Equal(http.StatusBadRequest, w.Code)

			var e server.ErrorResponse
			s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &e))
			s.Equal(server.CodeBadRequest, e.Code)
			s.NotEmpty(e.Error)
		})
	}
}

func (s *RouteSuite) TestModeWithoutNetwork() {
	w := do(s.h, http.MethodPost, "/v1/routes", body(pts["S"], pts["T"], "bike"))
	s.Equal(http.StatusNotFound, w.Code)
	s.Contains(w.Body.String(), server.CodeNoNetwork)
}

func (s *RouteSuite) TestGeoJSON() {
	w := do(s.h, http.MethodPost, "/v1/routes/geojson", body(pts["S"], pts["T"], "walk"))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &fc))
	s.Equal("FeatureCollection", fc.Type)
	s.Len(fc.Features, 6)
	s.Equal("#d1a619", fc.Features[1].Properties["color"], "A–T averages 27.5")
}

func (s *RouteSuite) TestHealthAndMetrics() {
	w := do(s.h, http.MethodGet, "/healthz", "")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())

	do(s.h, http.MethodPost, "/v1/routes", body(pts["S"], pts["T"], "walk"))
	w = do(s.h, http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `airpath_http_requests_total{code="200",method="POST",route="/v1/routes"} 1`)
	s.Contains(w.Body.String(), `airpath_route_outcomes_total{reason="",status="found"} 1`)
}

func TestRouteSuite(t *testing.T) {
	suite.Run(t, new(RouteSuite))
}

func TestNew_Validation(t *testing.T) {
	reg := network.NewRegistry(network.FileLoader{}, nil)

	_, err := server.New(nil, oracle.NewStatic())
	assert.ErrorIs(t, err, server.ErrNilRegistry)

	_, err = server.New(reg, nil)
	assert.ErrorIs(t, err, server.ErrNilOracle)

	_, err = server.New(reg, oracle.NewStatic(), server.WithLimits(pollution.LimitSet{}))
	assert.ErrorIs(t, err, pollution.ErrBadLimit)
}

func TestOutsideServiceArea(t *testing.T) {
	reg := network.NewRegistry(network.FileLoader{}, nil)
	reg.Put(network.Walk, diamond(t))
	air := oracle.NewStatic().Set(pts["S"], pm25(5)).Set(pts["T"], pm25(5))

	srv, err := server.New(reg, air)
	require.NoError(t, err)

	w := do(srv.Handler(), http.MethodPost, "/v1/routes", body(pts["S"], orb.Point{10, 10}, "walk"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), server.CodeOutsideServiceArea)

	// Same request passes once the check is disabled.
	srv, err = server.New(reg, air, server.WithServiceAreaCheck(false))
	require.NoError(t, err)
	w = do(srv.Handler(), http.MethodPost, "/v1/routes", body(pts["S"], orb.Point{10, 10}, "walk"))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestInfeasibleRoute(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("S", pts["S"]))
	require.NoError(t, g.AddVertex("T", pts["T"]))
	reg := network.NewRegistry(network.FileLoader{}, nil)
	reg.Put(network.Walk, g)

	srv, err := server.New(reg, oracle.NewStatic().SetFallback(pm25(1)))
	require.NoError(t, err)

	w := do(srv.Handler(), http.MethodPost, "/v1/routes", body(pts["S"], pts["T"], "walk"))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var e server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, server.CodeInfeasible, e.Code)
	assert.Equal(t, "disconnected", e.Reason)
	assert.Equal(t, 1.0, e.Tolerance)
}

func TestBusy(t *testing.T) {
	reg := network.NewRegistry(network.FileLoader{}, nil)
	reg.Put(network.Walk, diamond(t))

	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	air := pollution.OracleFunc(func(ctx context.Context, _ orb.Point) (pollution.Sample, error) {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
		return pm25(1), nil
	})

	srv, err := server.New(reg, air, server.WithMaxConcurrent(1))
	require.NoError(t, err)
	h := srv.Handler()

	done := make(chan int)
	go func() {
		done <- do(h, http.MethodPost, "/v1/routes", body(pts["S"], pts["T"], "walk")).Code
	}()
	<-entered

	w := do(h, http.MethodPost, "/v1/routes", body(pts["S"], pts["T"], "walk"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), server.CodeBusy)

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestTimeout(t *testing.T) {
	slow := network.LoaderFunc(func(ctx context.Context, _ network.TravelMode) (*core.Graph, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	reg := network.NewRegistry(slow, nil)

	srv, err := server.New(reg, oracle.NewStatic(), server.WithRequestTimeout(20*time.Millisecond))
	require.NoError(t, err)

	w := do(srv.Handler(), http.MethodPost, "/v1/routes", body(pts["S"], pts["T"], "walk"))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), server.CodeTimeout)
}

func TestCORS(t *testing.T) {
	reg := network.NewRegistry(network.FileLoader{}, nil)
	srv, err := server.New(reg, oracle.NewStatic(), server.WithCORSOrigins("https://maps.example.org"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/healthz", bytes.NewReader(nil))
	req.Header.Set("Origin", "https://maps.example.org")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://maps.example.org", w.Header().Get("Access-Control-Allow-Origin"))
}
