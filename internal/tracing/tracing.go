// Package tracing wires one OpenTelemetry span per Interpret call, with
// child spans for compile and execute. The exporter is stdout-only: there is
// no collector dependency for a single-process language core (see
// DESIGN.md for why the teacher's OTLP/gRPC exporter was dropped).
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// Provider wraps an SDK TracerProvider scoped to this process.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// Init builds a Provider that writes spans to stdout when enabled is true,
// or a no-op provider otherwise.
func Init(enabled bool) (*Provider, error) {
	if !enabled {
		return &Provider{tp: sdktrace.NewTracerProvider()}, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceNameKey.String("glox"),
	))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return &Provider{tp: tp}, nil
}

// Shutdown flushes and releases the provider's resources.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tp == nil {
		return nil
	}
	return p.tp.Shutdown(ctx)
}

// Tracer returns the "glox" tracer.
func (p *Provider) Tracer() trace.Tracer {
	return otel.Tracer("glox")
}

// StartInterpret starts the root span for one Interpret call.
func StartInterpret(ctx context.Context, tr trace.Tracer, execID string) (context.Context, trace.Span) {
	return tr.Start(ctx, "glox.vm.interpret", trace.WithAttributes())
}

// StartCompile starts a child span for the compile phase.
func StartCompile(ctx context.Context, tr trace.Tracer) (context.Context, trace.Span) {
	return tr.Start(ctx, "glox.vm.compile")
}

// StartExecute starts a child span for the execute phase.
func StartExecute(ctx context.Context, tr trace.Tracer) (context.Context, trace.Span) {
	return tr.Start(ctx, "glox.vm.execute")
}
