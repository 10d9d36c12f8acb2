// SPDX-License-Identifier: MIT

package refine

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("airpath.refine")
	meter  = otel.Meter("airpath.refine")
)

var (
	planTotal    metric.Int64Counter
	planRounds   metric.Int64Histogram
	planDuration metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		planTotal, err = meter.Int64Counter(
			"airpath_plan_total",
			metric.WithDescription("Planning requests by status and reason"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		planRounds, err = meter.Int64Histogram(
			"airpath_plan_rounds",
			metric.WithDescription("Refinement rounds per planning request"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		planDuration, err = meter.Float64Histogram(
			"airpath_plan_duration_seconds",
			metric.WithDescription("Duration of planning requests"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})

	return metricsErr
}

func recordPlan(ctx context.Context, res Result, d time.Duration) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("status", res.Status.String()),
		attribute.String("reason", res.Reason.String()),
	)
	planTotal.Add(ctx, 1, attrs)
	planRounds.Record(ctx, int64(res.Attempts), attrs)
	planDuration.Record(ctx, d.Seconds(), attrs)
}
