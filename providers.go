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
	"net/http"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// PrometheusMeterProvider bundles an OpenTelemetry meter provider backed
// by a private Prometheus registry with the HTTP handler that serves it.
// Pass Provider to WithMeterProvider and mount Handler on a scrape
// endpoint.
type PrometheusMeterProvider struct {
	Provider *sdkmetric.MeterProvider
	Handler  http.Handler

	registry *promclient.Registry
}

// NewPrometheusMeterProvider creates a meter provider exporting through a
// dedicated Prometheus registry, avoiding collisions with the global one.
func NewPrometheusMeterProvider() (*PrometheusMeterProvider, error) {
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(
		prometheus.WithRegisterer(registry),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	return &PrometheusMeterProvider{
		Provider: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(exporter),
		),
		Handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		registry: registry,
	}, nil
}

// Registry exposes the underlying Prometheus registry for callers that
// register their own collectors alongside the generator's instruments.
func (p *PrometheusMeterProvider) Registry() *promclient.Registry {
	return p.registry
}

// NewOTLPMeterProvider creates a meter provider that pushes metrics to an
// OTLP/HTTP collector on a periodic reader. An empty endpoint falls back
// to the exporter's environment-driven defaults; an http:// endpoint
// disables TLS.
func NewOTLPMeterProvider(ctx context.Context, endpoint string, interval time.Duration) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{}
	if endpoint != "" {
		host, insecure := splitOTLPEndpoint(endpoint)
		opts = append(opts, otlpmetrichttp.WithEndpoint(host))
		if insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(interval),
		)),
	), nil
}

// NewStdoutMeterProvider creates a meter provider that prints metrics to
// stdout on a periodic reader. Intended for local inspection of generation
// runs.
func NewStdoutMeterProvider(interval time.Duration) (*sdkmetric.MeterProvider, error) {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(interval),
		)),
	), nil
}

// NewStdoutTracerProvider creates a tracer provider that prints generation
// spans to stdout, pretty-printed one span per batch.
func NewStdoutTracerProvider() (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	), nil
}

// splitOTLPEndpoint reduces a collector URL to the host:port form the
// exporter expects and reports whether TLS must be disabled.
func splitOTLPEndpoint(endpoint string) (string, bool) {
	insecure := false
	if strings.HasPrefix(endpoint, "http://") {
		endpoint = strings.TrimPrefix(endpoint, "http://")
		insecure = true
	} else if strings.HasPrefix(endpoint, "https://") {
		endpoint = strings.TrimPrefix(endpoint, "https://")
	}
	if idx := strings.Index(endpoint, "/"); idx != -1 {
		endpoint = endpoint[:idx]
	}
	return endpoint, insecure
}
