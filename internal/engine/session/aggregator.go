// Package session implements the scan-to-cart reconciliation engine.
//
// Two input channels (wedge keystrokes and camera decodes) are normalized into
// ScanEvents, debounced and resolved against the catalog by the Gate, and the
// outcomes are applied to the cart by the Aggregator. All state lives on the
// Engine's single event loop; the only concurrency is at the I/O boundary.
package session

import "go.trai.ch/scango/internal/core/domain"

// Aggregator owns the cart. It is the only type that mutates cart lines.
// It is not safe for concurrent use; the Engine calls it from its event loop.
type Aggregator struct {
	lines []domain.CartLine
	index map[string]int
}

// NewAggregator returns an empty cart.
func NewAggregator() *Aggregator {
	return &Aggregator{index: make(map[string]int)}
}

// AddProduct increments the line for the product, or appends a new line with
// quantity 1, and returns the resulting line.
func (a *Aggregator) AddProduct(p domain.Product) domain.CartLine {
	if i, ok := a.index[p.ID]; ok {
		a.lines[i].Quantity++
		return a.lines[i]
	}
	a.lines = append(a.lines, domain.CartLine{Product: p, Quantity: 1})
	a.index[p.ID] = len(a.lines) - 1
	return a.lines[len(a.lines)-1]
}

// RemoveLine deletes the line with the given id. Absent ids are a no-op.
func (a *Aggregator) RemoveLine(lineID string) bool {
	i, ok := a.index[lineID]
	if !ok {
		return false
	}
	a.lines = append(a.lines[:i], a.lines[i+1:]...)
	a.reindex()
	return true
}

// Clear empties the cart.
func (a *Aggregator) Clear() {
	a.lines = nil
	a.index = make(map[string]int)
}

// Line returns a copy of the line with the given id.
func (a *Aggregator) Line(lineID string) (domain.CartLine, bool) {
	i, ok := a.index[lineID]
	if !ok {
		return domain.CartLine{}, false
	}
	return a.lines[i], true
}

// Snapshot returns a copy of the cart that shares nothing with the aggregator.
func (a *Aggregator) Snapshot() domain.Cart {
	return domain.NewCart(a.lines)
}

// reindex rebuilds the id index and drops any line whose quantity fell below one.
func (a *Aggregator) reindex() {
	kept := a.lines[:0]
	for _, l := range a.lines {
		if l.Quantity >= 1 {
			kept = append(kept, l)
		}
	}
	a.lines = kept
	a.index = make(map[string]int, len(a.lines))
	for i, l := range a.lines {
		a.index[l.ID()] = i
	}
}
