package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.trai.ch/scango/internal/adapters/httpapi" //nolint:depguard // Wired in app layer
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long the catalog server waits for open requests.
const shutdownTimeout = 5 * time.Second

// ServeCatalog serves the catalog API on addr until ctx is cancelled.
func (a *App) ServeCatalog(ctx context.Context, addr string, flags CatalogFlags) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", addr)
	}
	return a.ServeCatalogOn(ctx, ln, flags)
}

// ServeCatalogOn serves the catalog API on ln until ctx is cancelled. The
// listener is closed on return.
func (a *App) ServeCatalogOn(ctx context.Context, ln net.Listener, flags CatalogFlags) error {
	cfg, err := a.catalogConfig(flags)
	if err != nil {
		_ = ln.Close()
		return err
	}
	if cfg.URL != "" {
		_ = ln.Close()
		return zerr.With(
			zerr.Wrap(domain.ErrCatalogConflict, "catalog server needs a file or database"),
			"url", cfg.URL,
		)
	}

	store, closeStore, err := a.catalogs.OpenStore(ctx, cfg)
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			a.logger.Error(cerr)
		}
	}()

	handler := httpapi.NewRouter(httpapi.NewHandler(store, a.logger), a.logger)
	srv := httpapi.NewServer(ln.Addr().String(), handler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info(fmt.Sprintf("catalog listening on http://%s", ln.Addr()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, "catalog server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return zerr.Wrap(err, "failed to stop catalog server")
		}
		a.logger.Info("catalog server stopped")
		return nil
	})
	return g.Wait()
}

// Lookup resolves a single barcode against the configured catalog and prints it.
func (a *App) Lookup(ctx context.Context, raw string, flags CatalogFlags) error {
	barcode, ok := domain.ParseBarcode(raw)
	if !ok {
		return zerr.Wrap(domain.ErrProductNotFound, "barcode is blank")
	}

	cfg, err := a.Config()
	if err != nil {
		return err
	}
	catCfg := flags.apply(cfg.Catalog)

	cat, closeCatalog, err := a.catalogs.Open(ctx, catCfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeCatalog(); cerr != nil {
			a.logger.Error(cerr)
		}
	}()

	if catCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, catCfg.Timeout)
		defer cancel()
	}

	p, err := cat.Lookup(ctx, barcode)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.stdout, "%s\t%s\t%s\t%s\n",
		p.ID, p.Name, domain.FormatMoney(cfg.Display.Currency, p.UnitPrice), p.Barcode)
	return err
}

// ImportCatalog copies the products in file into the Postgres catalog.
func (a *App) ImportCatalog(ctx context.Context, file, dsn string) error {
	if dsn == "" {
		cfg, err := a.Config()
		if err != nil {
			return err
		}
		dsn = cfg.Catalog.DSN
	}

	n, err := a.catalogs.Import(ctx, file, dsn)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("imported %d products from %s", n, file))
	return nil
}
