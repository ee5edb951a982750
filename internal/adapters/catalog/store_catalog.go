package catalog

import (
	"context"

	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
)

var _ ports.Catalog = StoreCatalog{}

// StoreCatalog resolves barcodes straight from a product store, skipping HTTP.
type StoreCatalog struct {
	Store ports.ProductStore
}

// Lookup implements ports.Catalog.
func (c StoreCatalog) Lookup(ctx context.Context, barcode domain.Barcode) (domain.Product, error) {
	r, err := c.Store.FindByBarcode(ctx, barcode)
	if err != nil {
		return domain.Product{}, err
	}
	return r.Product, nil
}
