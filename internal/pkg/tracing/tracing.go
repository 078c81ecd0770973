// Package tracing installs the global OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const TracerName = "eatify"

type Controller struct {
	provider *sdktrace.TracerProvider
}

// Init exports spans to the Jaeger collector at endpoint. An empty endpoint keeps
// spans in process so instrumented code behaves the same without a collector.
func Init(serviceName, endpoint string) (*Controller, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	}

	if endpoint != "" {
		exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
		if err != nil {
			return nil, fmt.Errorf("failed to create jaeger exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return &Controller{provider: tp}, nil
}

func (c *Controller) Tracer() trace.Tracer {
	return c.provider.Tracer(TracerName)
}

func (c *Controller) Shutdown(ctx context.Context) error {
	return c.provider.Shutdown(ctx)
}

// Start opens a span on the global provider.
func Start(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, name)
}
