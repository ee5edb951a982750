package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Catalog = (*Client)(nil)

// maxResponseBytes bounds a single product response.
const maxResponseBytes = 1 << 20

// Client implements ports.Catalog against the catalog HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the catalog at baseURL. The timeout bounds
// each request; the engine applies its own lookup deadline on top.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a client using the given http.Client.
func NewClientWithHTTP(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// Lookup implements ports.Catalog.
func (c *Client) Lookup(ctx context.Context, barcode domain.Barcode) (domain.Product, error) {
	endpoint := c.baseURL + "/api/products/barcode/" + url.PathEscape(barcode.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return domain.Product{}, zerr.Wrap(err, domain.ErrCatalogUnavailable.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Product{}, zerr.With(zerr.Wrap(domain.ErrCatalogUnavailable, err.Error()), "barcode", barcode.String())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Product{}, zerr.With(zerr.Wrap(domain.ErrProductNotFound, "catalog lookup failed"), "barcode", barcode.String())
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(zerr.Wrap(domain.ErrCatalogUnavailable, "unexpected catalog response"), "status_code", resp.StatusCode)
		return domain.Product{}, zerr.With(apiErr, "barcode", barcode.String())
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.Product{}, zerr.With(zerr.Wrap(domain.ErrCatalogUnavailable, err.Error()), "barcode", barcode.String())
	}

	var payload ProductJSON
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Product{}, zerr.With(zerr.Wrap(domain.ErrCatalogResponseInvalid, err.Error()), "barcode", barcode.String())
	}

	record, err := payload.Record()
	if err != nil {
		return domain.Product{}, zerr.Wrap(domain.ErrCatalogResponseInvalid, err.Error())
	}
	if record.Barcode == "" {
		record.Barcode = barcode
	}
	return record.Product, nil
}
