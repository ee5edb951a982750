package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var (
	_ ports.Catalog      = (*FileStore)(nil)
	_ ports.ProductStore = (*FileStore)(nil)
)

//go:embed sample.yaml
var sampleCatalog []byte

// ReloadWindow is how long the store waits after the last file event before reloading.
const ReloadWindow = 150 * time.Millisecond

// productFile is the on-disk layout of a catalog file.
type productFile struct {
	Products []productEntry `yaml:"products"`
}

type productEntry struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Quantity int    `yaml:"quantity"`
	Barcode  string `yaml:"barcode"`
}

// FileStore serves products from a YAML file held in memory. With Watch it
// reloads the file when it changes; a file that fails to parse leaves the
// previous products in place.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	products map[domain.Barcode]domain.CatalogRecord
	logger   ports.Logger
}

// LoadFile reads the catalog file at path.
func LoadFile(path string, logger ports.Logger) (*FileStore, error) {
	s := &FileStore{path: path, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Sample returns a store holding the built-in demo products.
func Sample() *FileStore {
	products, err := parseProducts(sampleCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded sample catalog is invalid: %v", err))
	}
	return &FileStore{path: "sample", products: products}
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

// Len returns the number of products.
func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Records returns every product ordered by id.
func (s *FileStore) Records() []domain.CatalogRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.CatalogRecord, 0, len(s.products))
	for _, r := range s.products {
		records = append(records, r)
	}
	slices.SortFunc(records, func(a, b domain.CatalogRecord) int {
		return strings.Compare(a.ID, b.ID)
	})
	return records
}

// Lookup implements ports.Catalog.
func (s *FileStore) Lookup(ctx context.Context, barcode domain.Barcode) (domain.Product, error) {
	r, err := s.FindByBarcode(ctx, barcode)
	if err != nil {
		return domain.Product{}, err
	}
	return r.Product, nil
}

// FindByBarcode implements ports.ProductStore.
func (s *FileStore) FindByBarcode(_ context.Context, barcode domain.Barcode) (domain.CatalogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.products[barcode]
	if !ok {
		return domain.CatalogRecord{}, zerr.With(zerr.Wrap(domain.ErrProductNotFound, "catalog lookup failed"), "barcode", barcode.String())
	}
	return r, nil
}

// Ping implements ports.ProductStore.
func (s *FileStore) Ping(context.Context) error {
	return nil
}

// Reload re-reads the backing file.
func (s *FileStore) Reload() error {
	// #nosec G304 -- the catalog path comes from the user's own configuration
	data, err := os.ReadFile(s.path)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCatalogFileReadFailed, err.Error()), "path", s.path)
	}

	products, err := parseProducts(data)
	if err != nil {
		return zerr.With(err, "path", s.path)
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return nil
}

// Watch reloads the store whenever its file changes, until ctx is done or
// the returned stop function is called.
func (s *FileStore) Watch(ctx context.Context) (stop func() error, err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create catalog watcher")
	}

	// Watch the directory: editors commonly replace the file instead of writing it.
	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to watch catalog directory"), "dir", dir)
	}

	debouncer := NewDebouncer(ReloadWindow, func() {
		if err := s.Reload(); err != nil {
			s.logError(err)
			return
		}
		s.logInfo(fmt.Sprintf("reloaded %d products from %s", s.Len(), s.path))
	})

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.processEvents(ctx, w, debouncer)
	}()

	var once sync.Once
	stop = func() error {
		var closeErr error
		once.Do(func() {
			cancel()
			closeErr = w.Close()
			<-done
			debouncer.Stop()
		})
		return closeErr
	}
	return stop, nil
}

func (s *FileStore) processEvents(ctx context.Context, w *fsnotify.Watcher, debouncer *Debouncer) {
	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				debouncer.Trigger()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.logError(zerr.Wrap(err, "catalog watcher error"))
		}
	}
}

func (s *FileStore) logInfo(msg string) {
	if s.logger != nil {
		s.logger.Info(msg)
	}
}

func (s *FileStore) logError(err error) {
	if s.logger != nil {
		s.logger.Error(err)
	}
}

func parseProducts(data []byte) (map[domain.Barcode]domain.CatalogRecord, error) {
	var file productFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(domain.ErrCatalogFileParseFailed, err.Error())
	}

	products := make(map[domain.Barcode]domain.CatalogRecord, len(file.Products))
	for i, e := range file.Products {
		record, err := e.record()
		if err != nil {
			return nil, zerr.With(err, "index", i)
		}
		if prev, dup := products[record.Barcode]; dup {
			dupErr := zerr.With(zerr.Wrap(domain.ErrDuplicateBarcode, "catalog file rejected"), "barcode", record.Barcode.String())
			return nil, zerr.With(dupErr, "products", prev.ID+","+record.ID)
		}
		products[record.Barcode] = record
	}
	return products, nil
}

func (e productEntry) record() (domain.CatalogRecord, error) {
	barcode, ok := domain.ParseBarcode(e.Barcode)
	if e.ID == "" || e.Name == "" || !ok {
		return domain.CatalogRecord{}, zerr.With(zerr.Wrap(domain.ErrInvalidProduct, "id, name and barcode are required"), "id", e.ID)
	}

	price, err := decimal.NewFromString(e.Price)
	if err != nil || price.IsNegative() {
		invalid := zerr.With(zerr.Wrap(domain.ErrInvalidProduct, "price must be a non-negative decimal"), "id", e.ID)
		return domain.CatalogRecord{}, zerr.With(invalid, "price", e.Price)
	}

	return domain.CatalogRecord{
		Product:  domain.Product{ID: e.ID, Name: e.Name, UnitPrice: price, Barcode: barcode},
		Quantity: e.Quantity,
	}, nil
}
