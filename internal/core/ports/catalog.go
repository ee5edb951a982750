package ports

import (
	"context"

	"go.trai.ch/scango/internal/core/domain"
)

// Catalog resolves barcodes to products.
//
//go:generate mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type Catalog interface {
	// Lookup returns the product for the barcode. It returns an error wrapping
	// domain.ErrProductNotFound when the catalog has no such product, and any
	// other error when the catalog could not answer.
	Lookup(ctx context.Context, barcode domain.Barcode) (domain.Product, error)
}

// ProductStore is the storage behind the catalog service.
type ProductStore interface {
	// FindByBarcode returns the stored record or an error wrapping domain.ErrProductNotFound.
	FindByBarcode(ctx context.Context, barcode domain.Barcode) (domain.CatalogRecord, error)
	// Ping checks that the store can serve requests.
	Ping(ctx context.Context) error
}
