package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// pruneThreshold bounds the debounce table before stale entries are swept.
const pruneThreshold = 64

// Gate admits scan events and resolves them against the catalog.
//
// Admit is called from the engine loop only. Resolve may run concurrently for
// any number of events; concurrent lookups of the same barcode share a single
// catalog call, while each caller still receives its own outcome.
type Gate struct {
	catalog  ports.Catalog
	cooldown time.Duration
	timeout  time.Duration
	tracer   trace.Tracer

	group    singleflight.Group
	accepted map[domain.Barcode]time.Time
}

// NewGate creates a lookup gate.
func NewGate(catalog ports.Catalog, cooldown, timeout time.Duration, tracer trace.Tracer) *Gate {
	return &Gate{
		catalog:  catalog,
		cooldown: cooldown,
		timeout:  timeout,
		tracer:   tracer,
		accepted: make(map[domain.Barcode]time.Time),
	}
}

// Admit reports whether the event should be looked up. Camera events for a
// barcode accepted less than the cool-down ago are suppressed; wedge events
// always pass.
func (g *Gate) Admit(ev domain.ScanEvent) bool {
	if ev.Source != domain.SourceCamera {
		return true
	}

	if last, ok := g.accepted[ev.Barcode]; ok && ev.ObservedAt.Sub(last) < g.cooldown {
		return false
	}

	g.accepted[ev.Barcode] = ev.ObservedAt
	if len(g.accepted) > pruneThreshold {
		g.prune(ev.ObservedAt)
	}
	return true
}

func (g *Gate) prune(now time.Time) {
	for b, at := range g.accepted {
		if now.Sub(at) >= g.cooldown {
			delete(g.accepted, b)
		}
	}
}

// Resolve looks the event up in the catalog. It never fails: errors, timeouts
// and panics in the catalog all yield a NotFound outcome carrying the reason.
func (g *Gate) Resolve(ctx context.Context, ev domain.ScanEvent) domain.Outcome {
	ctx, span := g.tracer.Start(ctx, "catalog.lookup", trace.WithAttributes(
		attribute.String("barcode", ev.Barcode.String()),
		attribute.String("source", string(ev.Source)),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ch := g.group.DoChan(ev.Barcode.String(), func() (any, error) {
		return g.lookup(ctx, ev.Barcode)
	})

	var out domain.Outcome
	select {
	case res := <-ch:
		switch {
		case res.Err == nil:
			out = domain.Found(ev, res.Val.(domain.Product))
		case ctx.Err() != nil:
			out = domain.NotFound(ev, g.abandoned(ctx))
		default:
			out = domain.NotFound(ev, res.Err)
		}
	case <-ctx.Done():
		out = domain.NotFound(ev, g.abandoned(ctx))
	}

	if out.Found {
		span.SetAttributes(attribute.String("product.id", out.Product.ID))
	} else {
		span.RecordError(out.Reason)
		span.SetStatus(codes.Error, out.Reason.Error())
	}
	return out
}

func (g *Gate) lookup(ctx context.Context, barcode domain.Barcode) (p domain.Product, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(zerr.Wrap(domain.ErrLookupPanicked, "catalog lookup aborted"), "panic", fmt.Sprint(r))
		}
	}()

	p, err = g.catalog.Lookup(ctx, barcode)
	if err == nil && p.ID == "" {
		err = zerr.With(zerr.Wrap(domain.ErrCatalogResponseInvalid, "catalog returned a product without id"),
			"barcode", barcode.String())
	}
	return p, err
}

func (g *Gate) abandoned(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return zerr.With(zerr.Wrap(domain.ErrLookupTimeout, "catalog lookup abandoned"), "timeout", g.timeout.String())
	}
	return zerr.Wrap(ctx.Err(), "catalog lookup cancelled")
}
