// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package urljs

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// generatorMetrics holds the OpenTelemetry instruments recorded during
// generation.
type generatorMetrics struct {
	generations metric.Int64Counter
	duration    metric.Float64Histogram
	patterns    metric.Int64Counter
	attempts    metric.Int64Histogram
}

func newGeneratorMetrics(mp metric.MeterProvider) (*generatorMetrics, error) {
	meter := mp.Meter(instrumentationName)
	m := &generatorMetrics{}
	var err error
	if m.generations, err = meter.Int64Counter(
		"urljs.generations.total",
		metric.WithDescription("Completed Generate calls by strategy and status"),
	); err != nil {
		return nil, err
	}
	if m.duration, err = meter.Float64Histogram(
		"urljs.generation.duration",
		metric.WithDescription("Generate call duration"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.patterns, err = meter.Int64Counter(
		"urljs.patterns.total",
		metric.WithDescription("Patterns processed by reversal outcome"),
	); err != nil {
		return nil, err
	}
	if m.attempts, err = meter.Int64Histogram(
		"urljs.reversal.attempts",
		metric.WithDescription("Placeholder combinations tried per pattern"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *generatorMetrics) observeGenerate(ctx context.Context, strategy Strategy, elapsed time.Duration, ok bool) {
	attrs := metric.WithAttributes(
		attribute.String("strategy", string(strategy)),
		attribute.Bool("success", ok),
	)
	m.generations.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// observePattern records the per-pattern reversal outcome and logs skip
// and abort causes at debug level.
func (g *run) observePattern(qname string, rev *reversal, err error) {
	outcome := "reversed"
	var attempts int
	switch {
	case err != nil:
		outcome = "error"
	case rev.comment != "":
		outcome = "skipped"
		attempts = rev.attempts
	default:
		attempts = rev.attempts
	}
	g.metrics.patterns.Add(g.ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
	if attempts > 0 {
		g.metrics.attempts.Record(g.ctx, int64(attempts), metric.WithAttributes(
			attribute.String("qname", qname),
		))
	}
	if err != nil {
		g.logger.DebugContext(g.ctx, "pattern reversal failed",
			slog.String("qname", qname),
			slog.Any("error", err))
		return
	}
	if rev.comment != "" {
		g.logger.DebugContext(g.ctx, "pattern skipped",
			slog.String("qname", qname),
			slog.String("reason", rev.comment))
	}
}
