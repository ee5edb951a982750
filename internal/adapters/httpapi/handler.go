// Package httpapi serves the product catalog over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.trai.ch/scango/internal/adapters/catalog"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
)

// Handler answers catalog requests from a product store.
type Handler struct {
	store  ports.ProductStore
	logger ports.Logger
}

// NewHandler creates a Handler.
func NewHandler(store ports.ProductStore, logger ports.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Health reports whether the store can serve requests.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error(err)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// GetByBarcode returns the product registered under the barcode path parameter.
func (h *Handler) GetByBarcode(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "barcode")
	// chi routes on RawPath when the path holds escapes such as %2F, leaving the param encoded.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(raw)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		raw = unescaped
	}

	barcode, ok := domain.ParseBarcode(raw)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	record, err := h.store.FindByBarcode(r.Context(), barcode)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		h.logger.Error(err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, catalog.NewProductJSON(record))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
