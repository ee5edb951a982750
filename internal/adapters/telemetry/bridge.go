// Package telemetry turns catalog lookup spans into session statistics and
// slow-lookup warnings.
package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/scango/internal/core/ports"
)

// LookupSpan is the span name the lookup gate records.
const LookupSpan = "catalog.lookup"

// DefaultSlowThreshold is the lookup latency above which a warning is logged.
const DefaultSlowThreshold = time.Second

// Stats summarises the lookups seen by a Bridge.
type Stats struct {
	Lookups    int
	Unresolved int
	Total      time.Duration
	Slowest    time.Duration
}

// Mean returns the average lookup latency.
func (s Stats) Mean() time.Duration {
	if s.Lookups == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Lookups)
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return fmt.Sprintf("%d lookups, %d unresolved, mean %s, slowest %s",
		s.Lookups, s.Unresolved, s.Mean().Round(time.Millisecond), s.Slowest.Round(time.Millisecond))
}

// Bridge implements sdktrace.SpanProcessor. It watches catalog lookup spans
// and ignores everything else.
type Bridge struct {
	logger    ports.Logger
	threshold time.Duration

	mu    sync.Mutex
	stats Stats
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger, threshold time.Duration) *Bridge {
	if threshold <= 0 {
		threshold = DefaultSlowThreshold
	}
	return &Bridge{logger: logger, threshold: threshold}
}

// Stats returns the statistics collected so far.
func (b *Bridge) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// OnStart does nothing.
func (b *Bridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if s.Name() != LookupSpan || !s.SpanContext().IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime())
	failed := s.Status().Code == codes.Error

	b.mu.Lock()
	b.stats.Lookups++
	b.stats.Total += elapsed
	if elapsed > b.stats.Slowest {
		b.stats.Slowest = elapsed
	}
	if failed {
		b.stats.Unresolved++
	}
	b.mu.Unlock()

	if elapsed > b.threshold && b.logger != nil {
		b.logger.Warn(fmt.Sprintf("slow catalog lookup for %s took %s", barcodeOf(s), elapsed.Round(time.Millisecond)))
	}
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(context.Context) error {
	return nil
}

func barcodeOf(s sdktrace.ReadOnlySpan) string {
	for _, kv := range s.Attributes() {
		if kv.Key == attribute.Key("barcode") {
			return kv.Value.AsString()
		}
	}
	return "unknown barcode"
}
