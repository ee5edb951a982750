package catalog

import (
	"context"
	"fmt"

	"go.trai.ch/scango/internal/adapters/postgres"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory opens the catalog selected by configuration.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a Factory.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// Open returns the catalog a scan session resolves barcodes against: the HTTP
// catalog when a URL is configured, otherwise a local store. The returned
// function releases whatever the catalog holds.
func (f *Factory) Open(ctx context.Context, cfg domain.CatalogConfig) (ports.Catalog, func() error, error) {
	if err := checkSources(cfg); err != nil {
		return nil, nil, err
	}

	if cfg.URL != "" {
		f.logger.Info(fmt.Sprintf("using catalog at %s", cfg.URL))
		return NewClient(cfg.URL, cfg.Timeout), func() error { return nil }, nil
	}

	store, closeStore, err := f.OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if fs, ok := store.(*FileStore); ok {
		return fs, closeStore, nil
	}
	return StoreCatalog{Store: store}, closeStore, nil
}

// OpenStore returns the product store behind the catalog service: Postgres
// when a DSN is configured, a watched YAML file when a file is configured,
// and the built-in sample products otherwise.
func (f *Factory) OpenStore(ctx context.Context, cfg domain.CatalogConfig) (ports.ProductStore, func() error, error) {
	if err := checkSources(cfg); err != nil {
		return nil, nil, err
	}

	switch {
	case cfg.DSN != "":
		if err := postgres.RunMigrations(cfg.DSN, f.logger); err != nil {
			return nil, nil, err
		}
		store, closePool, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		f.logger.Info("using postgres catalog")
		return store, func() error {
			closePool()
			return nil
		}, nil

	case cfg.File != "":
		store, err := LoadFile(cfg.File, f.logger)
		if err != nil {
			return nil, nil, err
		}
		stop, err := store.Watch(ctx)
		if err != nil {
			// Serving without hot reload is still useful.
			f.logger.Warn(fmt.Sprintf("catalog file will not be reloaded: %v", err))
			stop = func() error { return nil }
		}
		f.logger.Info(fmt.Sprintf("loaded %d products from %s", store.Len(), store.Path()))
		return store, stop, nil

	default:
		store := Sample()
		f.logger.Info(fmt.Sprintf("no catalog configured, using %d sample products", store.Len()))
		return store, func() error { return nil }, nil
	}
}

func checkSources(cfg domain.CatalogConfig) error {
	set := 0
	for _, v := range []string{cfg.URL, cfg.File, cfg.DSN} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return zerr.Wrap(domain.ErrCatalogConflict, "invalid catalog configuration")
	}
	return nil
}

// Import loads the product file at path and upserts every product into the
// Postgres catalog at dsn, migrating the schema first. It returns the number
// of products written.
func (f *Factory) Import(ctx context.Context, path, dsn string) (int, error) {
	if dsn == "" {
		return 0, zerr.Wrap(domain.ErrCatalogDSNMissing, "failed to import catalog")
	}

	file, err := LoadFile(path, f.logger)
	if err != nil {
		return 0, err
	}

	if err := postgres.RunMigrations(dsn, f.logger); err != nil {
		return 0, err
	}
	store, closePool, err := postgres.Open(ctx, dsn)
	if err != nil {
		return 0, err
	}
	defer closePool()

	records := file.Records()
	if err := store.Upsert(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
