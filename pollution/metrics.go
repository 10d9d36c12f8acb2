// SPDX-License-Identifier: MIT

package pollution

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	outcomeOK          = "ok"
	outcomeUnavailable = "unavailable"
	outcomeError       = "error"
)

var (
	meter = otel.Meter("airpath.pollution")

	samplesTotal metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments once.
func initMetrics() error {
	metricsOnce.Do(func() {
		samplesTotal, metricsErr = meter.Int64Counter(
			"airpath_oracle_samples_total",
			metric.WithDescription("Oracle lookups by outcome"),
		)
	})

	return metricsErr
}

func recordSample(ctx context.Context, outcome string) {
	if err := initMetrics(); err != nil {
		return
	}
	samplesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
