package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/scango/internal/adapters/telemetry"
	"go.trai.ch/scango/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func lookup(tracer trace.Tracer, barcode string, start time.Time, took time.Duration, failed bool) {
	_, span := tracer.Start(context.Background(), telemetry.LookupSpan,
		trace.WithTimestamp(start),
		trace.WithAttributes(attribute.String("barcode", barcode)),
	)
	if failed {
		span.SetStatus(codes.Error, "product not found")
	}
	span.End(trace.WithTimestamp(start.Add(took)))
}

func TestBridge_CollectsLookupStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn("slow catalog lookup for 012347 took 1.5s").Times(1)

	bridge := telemetry.NewBridge(logger, time.Second)
	provider := telemetry.NewProvider(bridge, false)
	defer func() { require.NoError(t, provider.Shutdown(context.Background())) }()
	tracer := provider.Tracer()

	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	lookup(tracer, "012345", start, 100*time.Millisecond, false)
	lookup(tracer, "999999", start, 200*time.Millisecond, true)
	lookup(tracer, "012347", start, 1500*time.Millisecond, false)

	// Unrelated spans are ignored.
	_, other := tracer.Start(context.Background(), "render")
	other.End()

	stats := bridge.Stats()
	assert.Equal(t, 3, stats.Lookups)
	assert.Equal(t, 1, stats.Unresolved)
	assert.Equal(t, 1500*time.Millisecond, stats.Slowest)
	assert.Equal(t, 600*time.Millisecond, stats.Mean())
	assert.Equal(t, "3 lookups, 1 unresolved, mean 600ms, slowest 1.5s", stats.String())
}

func TestStats_Empty(t *testing.T) {
	var s telemetry.Stats
	assert.Equal(t, time.Duration(0), s.Mean())
	assert.Equal(t, "0 lookups, 0 unresolved, mean 0s, slowest 0s", s.String())
}

func TestBridge_NilLogger(t *testing.T) {
	bridge := telemetry.NewBridge(nil, 0)
	provider := telemetry.NewProvider(bridge, false)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	start := time.Now()
	lookup(provider.Tracer(), "012345", start, 2*time.Second, false)
	assert.Equal(t, 1, bridge.Stats().Lookups)
}
