// Package postgres serves the product catalog from a Postgres products table.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProductStore = (*Store)(nil)

// DBPool is the subset of *pgxpool.Pool the store uses.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

const (
	findByBarcodeSQL = `SELECT id, name, price::text, quantity, barcode FROM products WHERE barcode = $1`

	upsertSQL = `
		INSERT INTO products (id, name, price, quantity, barcode)
		VALUES ($1, $2, $3::numeric, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			quantity = EXCLUDED.quantity,
			barcode = EXCLUDED.barcode,
			updated_at = now()`
)

// Store implements ports.ProductStore.
type Store struct {
	pool DBPool
}

// NewStore creates a store over pool.
func NewStore(pool DBPool) *Store {
	return &Store{pool: pool}
}

// Open connects to dsn and verifies the connection. The returned function
// closes the pool.
func Open(ctx context.Context, dsn string) (*Store, func(), error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, zerr.Wrap(domain.ErrDatabaseConnectFailed, err.Error())
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, nil, zerr.Wrap(domain.ErrDatabaseConnectFailed, err.Error())
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, zerr.With(zerr.Wrap(domain.ErrDatabaseConnectFailed, err.Error()), "host", cfg.ConnConfig.Host)
	}

	return NewStore(pool), pool.Close, nil
}

// FindByBarcode implements ports.ProductStore.
func (s *Store) FindByBarcode(ctx context.Context, barcode domain.Barcode) (domain.CatalogRecord, error) {
	var (
		r     domain.CatalogRecord
		price string
		code  string
	)

	row := s.pool.QueryRow(ctx, findByBarcodeSQL, barcode.String())
	if err := row.Scan(&r.ID, &r.Name, &price, &r.Quantity, &code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CatalogRecord{}, zerr.With(zerr.Wrap(domain.ErrProductNotFound, "catalog lookup failed"), "barcode", barcode.String())
		}
		return domain.CatalogRecord{}, zerr.With(zerr.Wrap(domain.ErrCatalogUnavailable, err.Error()), "barcode", barcode.String())
	}

	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		return domain.CatalogRecord{}, zerr.With(zerr.Wrap(domain.ErrInvalidProduct, err.Error()), "id", r.ID)
	}
	r.UnitPrice = unitPrice
	r.Barcode = domain.Barcode(code)
	return r, nil
}

// Ping implements ports.ProductStore.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return zerr.Wrap(domain.ErrCatalogUnavailable, err.Error())
	}
	return nil
}

// Upsert inserts or updates records by id.
func (s *Store) Upsert(ctx context.Context, records []domain.CatalogRecord) error {
	for _, r := range records {
		if _, err := s.pool.Exec(ctx, upsertSQL, r.ID, r.Name, r.UnitPrice.String(), r.Quantity, r.Barcode.String()); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrCatalogUnavailable, err.Error()), "id", r.ID)
		}
	}
	return nil
}
