//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.trai.ch/scango/internal/adapters/postgres"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func startPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_PASSWORD": "postgres", "POSTGRES_USER": "postgres", "POSTGRES_DB": "catalog"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, container.Terminate(context.Background()))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/catalog?sslmode=disable", host, port.Port())
}

func TestStoreIntegration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	dsn := startPostgres(ctx, t)

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	require.NoError(t, postgres.RunMigrations(dsn, logger))
	// Applying twice is a no-op.
	require.NoError(t, postgres.RunMigrations(dsn, logger))

	store, closeStore, err := postgres.Open(ctx, dsn)
	require.NoError(t, err)
	defer closeStore()

	require.NoError(t, store.Ping(ctx))

	milk, err := store.FindByBarcode(ctx, "012345")
	require.NoError(t, err)
	assert.Equal(t, "Milk 1L", milk.Name)
	assert.True(t, decimal.RequireFromString("1.99").Equal(milk.UnitPrice))

	_, err = store.FindByBarcode(ctx, "999999")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	err = store.Upsert(ctx, []domain.CatalogRecord{
		{Product: domain.Product{ID: "P1001", Name: "Milk 2L", UnitPrice: decimal.RequireFromString("3.50"), Barcode: "012345"}, Quantity: 12},
		{Product: domain.Product{ID: "P2001", Name: "Butter", UnitPrice: decimal.RequireFromString("2.25"), Barcode: "020001"}, Quantity: 8},
	})
	require.NoError(t, err)

	milk, err = store.FindByBarcode(ctx, "012345")
	require.NoError(t, err)
	assert.Equal(t, "Milk 2L", milk.Name)
	assert.Equal(t, 12, milk.Quantity)

	butter, err := store.FindByBarcode(ctx, "020001")
	require.NoError(t, err)
	assert.Equal(t, "P2001", butter.ID)
}
