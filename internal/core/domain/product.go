package domain

import "github.com/shopspring/decimal"

// Product is a catalog record. It is immutable once fetched.
type Product struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	Barcode   Barcode
}

// CatalogRecord is a product as stored by the catalog service, including the
// stock on hand reported alongside it.
type CatalogRecord struct {
	Product
	Quantity int
}

// Outcome is the result of resolving a scan against the catalog.
// When Found is false, Reason carries the underlying cause (not found,
// timeout, transport failure) for logging only.
type Outcome struct {
	Event   ScanEvent
	Product Product
	Found   bool
	Reason  error
}

// Found builds a successful outcome.
func Found(ev ScanEvent, p Product) Outcome {
	return Outcome{Event: ev, Product: p, Found: true}
}

// NotFound builds an unresolved outcome.
func NotFound(ev ScanEvent, reason error) Outcome {
	return Outcome{Event: ev, Reason: reason}
}
