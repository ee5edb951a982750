package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope used by the scan engine.
const TracerName = "scango/session"

// Provider owns the SDK tracer provider a session records into.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// NewProvider creates a tracer provider that reports every span to bridge.
// When global is set it is also registered as the OpenTelemetry global.
func NewProvider(bridge *Bridge, global bool) *Provider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(bridge),
	)
	if global {
		otel.SetTracerProvider(tp)
	}
	return &Provider{tp: tp}
}

// Tracer returns the engine tracer.
func (p *Provider) Tracer() trace.Tracer {
	return p.tp.Tracer(TracerName)
}

// Shutdown flushes and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
