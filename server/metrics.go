// SPDX-License-Identifier: MIT

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// httpMetrics are registered on a per-Server registry so several servers
// (tests, embedded use) never collide on the default registerer.
type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
	outcomes *prometheus.CounterVec
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	f := promauto.With(reg)

	return &httpMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "airpath_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "airpath_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 14),
		}, []string{"route"}),
		inflight: f.NewGauge(prometheus.GaugeOpts{
			Name: "airpath_plans_inflight",
			Help: "Planning requests currently holding a concurrency slot.",
		}),
		outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "airpath_route_outcomes_total",
			Help: "Planning outcomes by status and reason.",
		}, []string{"status", "reason"}),
	}
}
