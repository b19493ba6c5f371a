// Package tracing installs the OpenTelemetry tracer provider
package tracing

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/KirkDiggler/xp-optimizer/internal/errors"
)

// ServiceName is reported on every exported span
const ServiceName = "xp-optimizer"

// ShutdownFunc flushes and stops the provider
type ShutdownFunc func(ctx context.Context) error

// Config selects where spans go
type Config struct {
	// Writer receives spans as JSON. Nil disables export.
	Writer  io.Writer
	Version string
}

// Setup installs a global tracer provider. Without a writer spans are still
// created but never exported.
func Setup(cfg *Config) (ShutdownFunc, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if cfg.Writer == nil {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(cfg.Writer),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create stdout exporter")
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
			attribute.String("service.version", cfg.Version),
		)),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
