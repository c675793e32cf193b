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
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/urljs/placeholders"
)

// Strategy selects the shape of the generated artifact.
type Strategy string

const (
	// StrategyObject emits a plain nested object of reversal functions.
	StrategyObject Strategy = "object"

	// StrategyResolver emits a resolver class with a reverse() method,
	// namespace binding and query parameter support.
	StrategyResolver Strategy = "resolver"
)

// Option configures a Generator.
type Option func(*Generator)

// WithInclude restricts generation to the given qualified path names.
// A namespace name selects every path beneath it; the empty string selects
// paths registered at the root.
func WithInclude(qnames ...string) Option {
	return func(g *Generator) {
		g.include = append(g.include, qnames...)
	}
}

// WithExclude removes the given qualified path names (or whole namespaces)
// from generation. Exclusions are applied after inclusions.
func WithExclude(qnames ...string) Option {
	return func(g *Generator) {
		g.exclude = append(g.exclude, qnames...)
	}
}

// WithRegistry sets the placeholder registry consulted during reversal.
// Defaults to placeholders.Default.
func WithRegistry(r *placeholders.Registry) Option {
	return func(g *Generator) {
		g.registry = r
	}
}

// WithOracle substitutes the reference reversal implementation consulted
// during generation. By default a bundled oracle is built from the same
// route entries being transpiled.
func WithOracle(o Oracle) Option {
	return func(g *Generator) {
		g.oracle = o
	}
}

// WithReversalLimit caps the number of placeholder combinations tried per
// pattern. Defaults to DefaultReversalLimit.
func WithReversalLimit(limit int) Option {
	return func(g *Generator) {
		g.limit = limit
	}
}

// WithStrategy selects the output artifact shape. Defaults to
// StrategyObject.
func WithStrategy(s Strategy) Option {
	return func(g *Generator) {
		g.strategy = s
	}
}

// WithClassName sets the resolver class name for StrategyResolver.
// Defaults to "URLResolver".
func WithClassName(name string) Option {
	return func(g *Generator) {
		g.className = name
	}
}

// WithExport prefixes the resolver class declaration with an ES module
// export statement.
func WithExport() Option {
	return func(g *Generator) {
		g.export = true
	}
}

// WithVariableName sets the const the object artifact is assigned to for
// StrategyObject. An empty name emits the bare object body so callers can
// embed it in their own declaration. Defaults to "urls".
func WithVariableName(name string) Option {
	return func(g *Generator) {
		g.variable = name
	}
}

// WithIndent sets the indent unit of the generated script. Defaults to
// four spaces.
func WithIndent(indent string) Option {
	return func(g *Generator) {
		g.indent = indent
	}
}

// WithRaiseOnNotFound controls whether generated reversal functions throw
// a TypeError when no clause matches the supplied arguments. When false
// they return undefined instead. Defaults to true.
func WithRaiseOnNotFound(raise bool) Option {
	return func(g *Generator) {
		g.raiseOnNotFound = raise
	}
}

// WithLegacyDefaultMatching makes the resolver class compare overridden
// default arguments with strict equality only, without falling back to
// string conversion. Matches the behavior of older server frameworks that
// did not coerce extra arguments before comparing them to defaults.
func WithLegacyDefaultMatching() Option {
	return func(g *Generator) {
		g.legacyDefaults = true
	}
}

// WithOverride registers a text/template rendered in place of the
// generated function for a qualified path name, or in place of a resolver
// class member when name is one of the Hook* identifiers. The template
// receives an OverrideContext; {{.DefaultImpl}} interpolates the stock
// output. Overrides for names never visited are appended at the end of
// the artifact.
func WithOverride(name, text string) Option {
	return func(g *Generator) {
		if g.rawOverrides == nil {
			g.rawOverrides = map[string]string{}
		}
		g.rawOverrides[name] = text
	}
}

// WithLogger sets the logger used for generation diagnostics. Defaults to
// a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider used to record
// generation metrics. Defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(g *Generator) {
		g.meterProvider = mp
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider used to trace
// Generate calls. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(g *Generator) {
		g.tracerProvider = tp
	}
}
