// Package catalog resolves barcodes against the product catalog, either over
// HTTP or from a local YAML product file.
package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/zerr"
)

// ProductJSON is the wire form served at /api/products/barcode/{barcode}.
type ProductJSON struct {
	ID       FlexibleID      `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Barcode  string          `json:"barcode"`
}

// NewProductJSON converts a stored record to its wire form.
func NewProductJSON(r domain.CatalogRecord) ProductJSON {
	return ProductJSON{
		ID:       FlexibleID(r.ID),
		Name:     r.Name,
		Price:    r.UnitPrice,
		Quantity: r.Quantity,
		Barcode:  r.Barcode.String(),
	}
}

// MarshalJSON writes the price as a JSON number, matching what the catalog
// service has always emitted.
func (p ProductJSON) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       FlexibleID  `json:"id"`
		Name     string      `json:"name"`
		Price    json.Number `json:"price"`
		Quantity int         `json:"quantity"`
		Barcode  string      `json:"barcode"`
	}{p.ID, p.Name, json.Number(p.Price.StringFixed(2)), p.Quantity, p.Barcode})
}

// Record validates the wire form and converts it to a catalog record.
func (p ProductJSON) Record() (domain.CatalogRecord, error) {
	if p.ID == "" || p.Name == "" {
		return domain.CatalogRecord{}, zerr.With(zerr.Wrap(domain.ErrInvalidProduct, "missing id or name"), "barcode", p.Barcode)
	}
	if p.Price.IsNegative() {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidProduct, "negative price"), "id", string(p.ID))
		return domain.CatalogRecord{}, zerr.With(err, "price", p.Price.String())
	}
	return domain.CatalogRecord{
		Product: domain.Product{
			ID:        string(p.ID),
			Name:      p.Name,
			UnitPrice: p.Price,
			Barcode:   domain.Barcode(p.Barcode),
		},
		Quantity: p.Quantity,
	}, nil
}

// FlexibleID accepts product ids encoded either as JSON strings or numbers,
// since catalogs backed by integer keys emit the latter.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCatalogResponseInvalid, "product id is not an integer"), "id", n.String())
	}
	*id = FlexibleID(n.String())
	return nil
}
