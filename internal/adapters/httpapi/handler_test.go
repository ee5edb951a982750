package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scango/internal/adapters/catalog"
	"go.trai.ch/scango/internal/adapters/httpapi"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (http.Handler, *mocks.MockProductStore, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockProductStore(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return httpapi.NewRouter(httpapi.NewHandler(store, logger), logger), store, logger
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	router, store, logger := newRouter(t)
	store.EXPECT().Ping(gomock.Any()).Return(nil)

	rec := serve(router, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))

	store.EXPECT().Ping(gomock.Any()).Return(domain.ErrCatalogUnavailable)
	logger.EXPECT().Error(gomock.Any())

	rec = serve(router, http.MethodGet, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetByBarcode_OK(t *testing.T) {
	router, store, _ := newRouter(t)
	store.EXPECT().FindByBarcode(gomock.Any(), domain.Barcode("012345")).Return(domain.CatalogRecord{
		Product:  domain.Product{ID: "P1001", Name: "Milk 1L", UnitPrice: decimal.RequireFromString("1.99"), Barcode: "012345"},
		Quantity: 40,
	}, nil)

	rec := serve(router, http.MethodGet, "/api/products/barcode/012345")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var got catalog.ProductJSON
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, catalog.FlexibleID("P1001"), got.ID)
	assert.Equal(t, 40, got.Quantity)
	assert.True(t, decimal.RequireFromString("1.99").Equal(got.Price))
}

func TestGetByBarcode_EscapedSlashThroughClient(t *testing.T) {
	router, store, _ := newRouter(t)
	store.EXPECT().FindByBarcode(gomock.Any(), domain.Barcode("AB/12")).Return(domain.CatalogRecord{
		Product:  domain.Product{ID: "P2001", Name: "Cable Ties", UnitPrice: decimal.RequireFromString("2.25"), Barcode: "AB/12"},
		Quantity: 7,
	}, nil)

	srv := httptest.NewServer(router)
	defer srv.Close()

	p, err := catalog.NewClient(srv.URL, time.Second).Lookup(context.Background(), "AB/12")
	require.NoError(t, err)
	assert.Equal(t, "P2001", p.ID)
	assert.Equal(t, domain.Barcode("AB/12"), p.Barcode)
}

func TestGetByBarcode_Errors(t *testing.T) {
	t.Run("unknown barcode", func(t *testing.T) {
		router, store, _ := newRouter(t)
		store.EXPECT().FindByBarcode(gomock.Any(), domain.Barcode("999999")).Return(domain.CatalogRecord{}, domain.ErrProductNotFound)

		rec := serve(router, http.MethodGet, "/api/products/barcode/999999")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		router, store, logger := newRouter(t)
		store.EXPECT().FindByBarcode(gomock.Any(), gomock.Any()).Return(domain.CatalogRecord{}, errors.New("db down"))
		logger.EXPECT().Error(gomock.Any())

		rec := serve(router, http.MethodGet, "/api/products/barcode/012345")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("blank barcode", func(t *testing.T) {
		router, _, _ := newRouter(t)
		rec := serve(router, http.MethodGet, "/api/products/barcode/%20")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPreflight(t *testing.T) {
	router, _, _ := newRouter(t)
	rec := serve(router, http.MethodOptions, "/api/products/barcode/012345")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestRecoversFromPanics(t *testing.T) {
	router, store, _ := newRouter(t)
	store.EXPECT().FindByBarcode(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.Barcode) (domain.CatalogRecord, error) { panic("boom") },
	)

	rec := serve(router, http.MethodGet, "/api/products/barcode/012345")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
