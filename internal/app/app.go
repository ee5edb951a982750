// Package app implements the application layer for scango.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/scango/internal/adapters/bell"      //nolint:depguard // Wired in app layer
	"go.trai.ch/scango/internal/adapters/camera"    //nolint:depguard // Wired in app layer
	"go.trai.ch/scango/internal/adapters/catalog"   //nolint:depguard // Wired in app layer
	"go.trai.ch/scango/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/scango/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/scango/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/scango/internal/adapters/tui"       //nolint:depguard // Wired in app layer
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/scango/internal/engine/session"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// logSink is implemented by loggers whose destination can change at runtime.
type logSink interface {
	SetOutput(w io.Writer)
	SetJSON(enable bool)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	catalogs     *catalog.Factory
	cameras      *camera.Factory

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	detect     func() detector.OutputMode
	teaOptions []tea.ProgramOption
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, logger ports.Logger, catalogs *catalog.Factory, cameras *camera.Factory) *App {
	return &App{
		configLoader: loader,
		logger:       logger,
		catalogs:     catalogs,
		cameras:      cameras,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		detect:       detector.DetectEnvironment,
	}
}

// WithIO replaces the process streams. Intended for testing.
func (a *App) WithIO(stdin io.Reader, stdout, stderr io.Writer) *App {
	a.stdin = stdin
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithDetector replaces terminal detection. Intended for testing.
func (a *App) WithDetector(detect func() detector.OutputMode) *App {
	a.detect = detect
	return a
}

// WithTeaOptions adds options for the interactive program. Intended for testing.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// CatalogFlags select a catalog source on the command line.
type CatalogFlags struct {
	URL  string
	File string
	DSN  string
}

// ScanOptions are the command line overrides for a scan session.
type ScanOptions struct {
	Catalog  CatalogFlags
	Mode     string
	Output   string
	Cooldown time.Duration
	Bell     bool
	LogFile  string
	JSONLogs bool
}

// Config loads the configuration from the working directory.
func (a *App) Config() (*domain.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}
	cfg, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

func (a *App) catalogConfig(flags CatalogFlags) (domain.CatalogConfig, error) {
	cfg, err := a.Config()
	if err != nil {
		return domain.CatalogConfig{}, err
	}
	return flags.apply(cfg.Catalog), nil
}

// apply overrides the configured source. A source given on the command line
// replaces every configured source.
func (f CatalogFlags) apply(cfg domain.CatalogConfig) domain.CatalogConfig {
	if f.URL == "" && f.File == "" && f.DSN == "" {
		return cfg
	}
	cfg.URL, cfg.File, cfg.DSN = f.URL, f.File, f.DSN
	return cfg
}

func (o ScanOptions) apply(cfg *domain.Config) error {
	cfg.Catalog = o.Catalog.apply(cfg.Catalog)
	if o.Mode != "" {
		mode, err := domain.ParseMode(o.Mode)
		if err != nil {
			return err
		}
		cfg.Scan.Mode = mode
	}
	if o.Cooldown > 0 {
		cfg.Scan.Cooldown = o.Cooldown
	}
	if o.Bell {
		cfg.Feedback.Bell = true
	}
	if o.LogFile != "" {
		cfg.Log.File = o.LogFile
	}
	if o.JSONLogs {
		cfg.Log.JSON = true
	}
	return nil
}

// Scan runs an interactive scan session until the user quits, the input ends
// or ctx is cancelled.
func (a *App) Scan(ctx context.Context, opts ScanOptions) error {
	cfg, err := a.Config()
	if err != nil {
		return err
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}

	output, err := detector.ResolveMode(a.detect(), opts.Output)
	if err != nil {
		return err
	}

	restoreLogs, err := a.redirectLogs(cfg.Log, output == detector.ModeTUI)
	if err != nil {
		return err
	}
	defer restoreLogs()

	cat, closeCatalog, err := a.catalogs.Open(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeCatalog(); cerr != nil {
			a.logger.Error(cerr)
		}
	}()

	bridge := telemetry.NewBridge(a.logger, telemetry.DefaultSlowThreshold)
	provider := telemetry.NewProvider(bridge, false)
	defer func() {
		if serr := provider.Shutdown(context.WithoutCancel(ctx)); serr != nil {
			a.logger.Error(serr)
		}
	}()

	var notifiers []ports.Notifier
	if cfg.Feedback.Bell {
		notifiers = append(notifiers, bell.New(a.stdout))
	}

	engineOpts := session.Options{
		Catalog:         cat,
		Camera:          a.cameras.New(cfg.Camera.Command),
		Logger:          a.logger,
		Notifiers:       notifiers,
		Tracer:          provider.Tracer(),
		Mode:            cfg.Scan.Mode,
		Cooldown:        cfg.Scan.Cooldown,
		LookupTimeout:   cfg.Catalog.Timeout,
		SuccessDuration: cfg.Feedback.Success,
		WarningDuration: cfg.Feedback.Warning,
	}

	if output == detector.ModeTUI {
		err = a.runInteractive(ctx, engineOpts, cfg.Display.Currency)
	} else {
		err = a.runLinear(ctx, engineOpts, cfg.Display.Currency)
	}
	if err != nil {
		return err
	}

	if stats := bridge.Stats(); stats.Lookups > 0 {
		a.logger.Info(fmt.Sprintf("session finished: %s", stats))
	}
	return nil
}

func (a *App) runInteractive(ctx context.Context, opts session.Options, currency string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	teaOpts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(a.stdin),
		tea.WithOutput(a.stdout),
		tea.WithAltScreen(),
	}, a.teaOptions...)
	renderer := tui.NewRenderer(currency, teaOpts...)
	opts.Presenter = renderer
	engine := session.New(opts)
	renderer.Attach(engine)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Run(gctx)
	})
	g.Go(func() error {
		// Quitting the program ends the session.
		defer cancel()
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		if err := renderer.Wait(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return zerr.Wrap(err, "interactive session failed")
		}
		return nil
	})
	return g.Wait()
}

func (a *App) runLinear(ctx context.Context, opts session.Options, currency string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	renderer := linear.NewRenderer(a.stdout, a.stderr, currency)
	opts.Presenter = renderer
	engine := session.New(opts)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return linear.NewSession(engine, renderer).Run(gctx, a.stdin)
	})
	return g.Wait()
}

// redirectLogs points the logger at the configured file. An interactive
// session without a log file discards logs so they do not tear the screen.
func (a *App) redirectLogs(cfg domain.LogConfig, interactive bool) (func(), error) {
	sink, ok := a.logger.(logSink)
	if !ok {
		return func() {}, nil
	}
	if cfg.JSON {
		sink.SetJSON(true)
	}

	switch {
	case cfg.File != "":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.FilePerm)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to open log file"), "path", cfg.File)
		}
		sink.SetOutput(f)
		return func() {
			sink.SetOutput(nil)
			_ = f.Close()
		}, nil
	case interactive:
		sink.SetOutput(io.Discard)
		return func() { sink.SetOutput(nil) }, nil
	default:
		return func() {}, nil
	}
}
