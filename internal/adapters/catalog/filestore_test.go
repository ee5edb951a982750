package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scango/internal/adapters/catalog"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const twoProducts = `products:
  - id: P1
    name: Tea
    price: "4.50"
    quantity: 3
    barcode: "111"
  - id: P2
    name: Coffee
    price: "7"
    barcode: "222"
`

func writeCatalog(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "products.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSample(t *testing.T) {
	store := catalog.Sample()
	assert.Equal(t, 4, store.Len())

	milk, err := store.Lookup(context.Background(), "012345")
	require.NoError(t, err)
	assert.Equal(t, "Milk 1L", milk.Name)

	records := store.Records()
	require.Len(t, records, 4)
	assert.Equal(t, "P1001", records[0].ID)
	assert.Equal(t, "P1004", records[3].ID)
}

func TestLoadFile(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), twoProducts)

	store, err := catalog.LoadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
	assert.NoError(t, store.Ping(context.Background()))

	coffee, err := store.FindByBarcode(context.Background(), "222")
	require.NoError(t, err)
	assert.Equal(t, "P2", coffee.ID)
	assert.Equal(t, "7", coffee.UnitPrice.String())

	_, err = store.Lookup(context.Background(), "333")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"malformed yaml", "products: [", domain.ErrCatalogFileParseFailed},
		{"missing barcode", "products:\n  - {id: P1, name: Tea, price: \"1\"}\n", domain.ErrInvalidProduct},
		{"negative price", "products:\n  - {id: P1, name: Tea, price: \"-1\", barcode: \"1\"}\n", domain.ErrInvalidProduct},
		{"bad price", "products:\n  - {id: P1, name: Tea, price: abc, barcode: \"1\"}\n", domain.ErrInvalidProduct},
		{
			"duplicate barcode",
			"products:\n  - {id: P1, name: Tea, price: \"1\", barcode: \"1\"}\n  - {id: P2, name: Tea2, price: \"1\", barcode: \"1\"}\n",
			domain.ErrDuplicateBarcode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalog(t, t.TempDir(), tt.content)
			_, err := catalog.LoadFile(path, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := catalog.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		assert.ErrorIs(t, err, domain.ErrCatalogFileReadFailed)
	})
}

func TestFileStore_Watch(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	path := writeCatalog(t, dir, twoProducts)

	store, err := catalog.LoadFile(path, logger)
	require.NoError(t, err)

	stop, err := store.Watch(context.Background())
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, stop())
	}()

	// A broken edit keeps the previous products.
	writeCatalog(t, dir, "products: [")
	time.Sleep(3 * catalog.ReloadWindow)
	assert.Equal(t, 2, store.Len())

	writeCatalog(t, dir, twoProducts+`  - id: P3
    name: Cocoa
    price: "5.25"
    barcode: "333"
`)
	assert.Eventually(t, func() bool {
		_, err := store.FindByBarcode(context.Background(), "333")
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, 3, store.Len())
}
