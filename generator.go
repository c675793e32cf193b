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
	"fmt"
	"log/slog"
	"maps"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/urljs/placeholders"
	"rivaas.dev/urljs/route"
)

// DefaultReversalLimit bounds the placeholder combinations tried per
// pattern before generation aborts with ErrReversalLimitHit.
const DefaultReversalLimit = 1 << 15

const instrumentationName = "rivaas.dev/urljs"

// Generator transpiles route definitions into a standalone script whose
// reversal functions reproduce server-side URL reversal. A Generator is
// immutable after New and safe for concurrent Generate calls.
type Generator struct {
	include  []string
	exclude  []string
	registry *placeholders.Registry
	oracle   Oracle
	limit    int

	strategy        Strategy
	className       string
	export          bool
	variable        string
	indent          string
	raiseOnNotFound bool
	legacyDefaults  bool

	rawOverrides map[string]string
	overrides    map[string]*Override

	logger         *slog.Logger
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	tracer         trace.Tracer
	metrics        *generatorMetrics
}

// New builds a Generator from the given options. It returns an error when
// the reversal limit is not positive, the strategy is unknown, or an
// override template fails to parse.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		registry:        placeholders.Default,
		limit:           DefaultReversalLimit,
		strategy:        StrategyObject,
		className:       "URLResolver",
		variable:        "urls",
		indent:          "    ",
		raiseOnNotFound: true,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrReversalLimitInvalid, g.limit)
	}
	switch g.strategy {
	case StrategyObject, StrategyResolver:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, g.strategy)
	}
	g.overrides = make(map[string]*Override, len(g.rawOverrides))
	for name, text := range g.rawOverrides {
		ov, err := NewOverride(name, text)
		if err != nil {
			return nil, err
		}
		g.overrides[name] = ov
	}
	if g.meterProvider == nil {
		g.meterProvider = otel.GetMeterProvider()
	}
	if g.tracerProvider == nil {
		g.tracerProvider = otel.GetTracerProvider()
	}
	g.tracer = g.tracerProvider.Tracer(instrumentationName)
	m, err := newGeneratorMetrics(g.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	g.metrics = m
	return g, nil
}

// MustNew is like New but panics on invalid configuration. Intended for
// build scripts and package-level variables where configuration errors are
// programming mistakes.
func MustNew(opts ...Option) *Generator {
	g, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// run carries the per-call state of one Generate invocation so a
// Generator stays reusable: the oracle may be defaulted per call and
// overrides are consumed as they match.
type run struct {
	ctx      context.Context
	registry *placeholders.Registry
	oracle   Oracle
	limit    int
	logger   *slog.Logger
	metrics  *generatorMetrics
}

// Generate transpiles entries into script text. When no oracle was
// configured, a reference oracle is built from the same entries, so the
// output is verified against the exact routes it was generated from.
func (g *Generator) Generate(ctx context.Context, entries []route.Entry) (string, error) {
	ctx, span := g.tracer.Start(ctx, "urljs.Generate",
		trace.WithAttributes(attribute.String("urljs.strategy", string(g.strategy))))
	defer span.End()

	start := time.Now()
	tree, numPaths := route.Build(entries, g.include, g.exclude)
	span.SetAttributes(attribute.Int("urljs.paths", numPaths))

	oracle := g.oracle
	if oracle == nil {
		oracle = NewOracle(entries)
	}
	r := &run{
		ctx:      ctx,
		registry: g.registry,
		oracle:   oracle,
		limit:    g.limit,
		logger:   g.logger,
		metrics:  g.metrics,
	}

	e := newEmitter(g.indent)
	overrides := maps.Clone(g.overrides)
	var v Visitor
	switch g.strategy {
	case StrategyResolver:
		v = newResolverWriter(e, overrides, g.className, g.export, g.raiseOnNotFound, g.legacyDefaults)
	default:
		v = newObjectWriter(e, overrides, g.variable, g.raiseOnNotFound)
	}

	if err := r.emitTree(v, tree); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.metrics.observeGenerate(ctx, g.strategy, time.Since(start), false)
		g.logger.ErrorContext(ctx, "url script generation failed",
			slog.String("strategy", string(g.strategy)),
			slog.Any("error", err))
		return "", err
	}

	g.metrics.observeGenerate(ctx, g.strategy, time.Since(start), true)
	g.logger.InfoContext(ctx, "url script generated",
		slog.String("strategy", string(g.strategy)),
		slog.Int("paths", numPaths),
		slog.Duration("duration", time.Since(start)))
	return e.String(), nil
}
