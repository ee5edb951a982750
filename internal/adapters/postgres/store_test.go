package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scango/internal/core/domain"
)

var productColumns = []string{"id", "name", "price", "quantity", "barcode"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestStore_FindByBarcode(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta(findByBarcodeSQL)).
		WithArgs("012345").
		WillReturnRows(pgxmock.NewRows(productColumns).AddRow("P1001", "Milk 1L", "1.99", 40, "012345"))

	record, err := NewStore(mock).FindByBarcode(context.Background(), "012345")
	require.NoError(t, err)

	assert.Equal(t, "P1001", record.ID)
	assert.Equal(t, "Milk 1L", record.Name)
	assert.True(t, decimal.RequireFromString("1.99").Equal(record.UnitPrice))
	assert.Equal(t, 40, record.Quantity)
	assert.Equal(t, domain.Barcode("012345"), record.Barcode)
}

func TestStore_FindByBarcode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "no rows",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(findByBarcodeSQL)).WithArgs("999999").WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrProductNotFound,
		},
		{
			name: "query failure",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(findByBarcodeSQL)).WithArgs("999999").WillReturnError(errors.New("conn reset"))
			},
			wantErr: domain.ErrCatalogUnavailable,
		},
		{
			name: "unparseable price",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(findByBarcodeSQL)).
					WithArgs("999999").
					WillReturnRows(pgxmock.NewRows(productColumns).AddRow("P9", "Odd", "n/a", 1, "999999"))
			},
			wantErr: domain.ErrInvalidProduct,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.setup(mock)

			_, err := NewStore(mock).FindByBarcode(context.Background(), "999999")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStore_Ping(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	store := NewStore(mock)
	require.NoError(t, store.Ping(context.Background()))

	err := store.Ping(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestStore_Upsert(t *testing.T) {
	mock := newMockPool(t)
	records := []domain.CatalogRecord{
		{Product: domain.Product{ID: "P1001", Name: "Milk 1L", UnitPrice: decimal.RequireFromString("1.99"), Barcode: "012345"}, Quantity: 40},
		{Product: domain.Product{ID: "P1002", Name: "Whole Wheat Bread", UnitPrice: decimal.RequireFromString("0.99"), Barcode: "012346"}, Quantity: 25},
	}
	mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
		WithArgs("P1001", "Milk 1L", "1.99", 40, "012345").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
		WithArgs("P1002", "Whole Wheat Bread", "0.99", 25, "012346").
		WillReturnError(errors.New("disk full"))

	err := NewStore(mock).Upsert(context.Background(), records)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}
