// SPDX-License-Identifier: MIT

// Package server exposes route planning over HTTP.
//
// Endpoints:
//
//	POST /v1/routes          plan a route, JSON summary
//	POST /v1/routes/geojson  plan a route, GeoJSON FeatureCollection
//	GET  /healthz            liveness
//	GET  /metrics            Prometheus metrics
//
// Every request gets an X-Request-ID (echoed when the client sends one).
// Planning runs under a concurrency limit and a per-request timeout, and
// each request builds its own planner state over the shared base graph.
//
// Status codes: 400 malformed input, 404 no network for the travel mode,
// 422 outside the service area or no feasible route, 503 when the
// concurrency limit cannot be acquired, 504 on timeout.
package server
