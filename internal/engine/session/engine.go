package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/zerr"
)

// inboxSize is the number of pending steps the loop buffers.
const inboxSize = 256

// Options configures an Engine. Zero durations fall back to the domain defaults.
type Options struct {
	Catalog   ports.Catalog
	Camera    ports.Camera
	Logger    ports.Logger
	Presenter ports.Presenter
	Notifiers []ports.Notifier
	Tracer    trace.Tracer

	Mode            domain.Mode
	Cooldown        time.Duration
	LookupTimeout   time.Duration
	SuccessDuration time.Duration
	WarningDuration time.Duration
}

// Engine reconciles scans into a cart.
//
// Every mutation happens on the goroutine running Run, one step at a time.
// Intents and I/O results are queued onto a single inbox; after each step a
// fresh View is published.
type Engine struct {
	logger    ports.Logger
	presenter ports.Presenter
	notifiers []ports.Notifier
	mode      domain.Mode

	cart     *Aggregator
	confirm  *ConfirmationGate
	feedback *Emitter
	gate     *Gate
	input    *Normalizer

	inbox   chan step
	done    chan struct{}
	running atomic.Bool
	view    atomic.Pointer[domain.View]

	runCtx   context.Context
	workers  sync.WaitGroup
	inflight int
	drainers []chan struct{}
}

// New creates an engine. It does nothing until Run is called.
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer("scango/session")
	}
	if opts.Mode == "" {
		opts.Mode = domain.ModeWedge
	}

	e := &Engine{
		logger:    opts.Logger,
		presenter: opts.Presenter,
		notifiers: opts.Notifiers,
		mode:      opts.Mode,
		cart:      NewAggregator(),
		confirm:   &ConfirmationGate{},
		gate: NewGate(
			opts.Catalog,
			orDefault(opts.Cooldown, domain.DefaultCooldown),
			orDefault(opts.LookupTimeout, domain.DefaultLookupTimeout),
			opts.Tracer,
		),
		inbox: make(chan step, inboxSize),
		done:  make(chan struct{}),
	}
	e.feedback = NewEmitter(
		orDefault(opts.SuccessDuration, domain.DefaultSuccessDuration),
		orDefault(opts.WarningDuration, domain.DefaultWarningDuration),
		func(domain.FeedbackState) { e.post(func() {}) },
	)
	e.input = NewNormalizer(opts.Camera, func(msg cameraMsg) bool {
		return e.post(func() { e.onCamera(msg) })
	})
	e.view.Store(e.snapshot())
	return e
}

// Run processes steps until ctx is cancelled. On return the camera is
// released, in-flight lookups are cancelled and every goroutine the engine
// started has exited. Run may be called once.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return zerr.New("scan engine already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.runCtx = runCtx
	defer e.shutdown(cancel)

	if e.mode == domain.ModeCamera {
		if err := e.input.SetMode(runCtx, domain.ModeCamera); err != nil {
			e.logger.Error(err)
		}
	}
	e.publish()

	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-e.inbox:
			s.run()
			e.publish()
			if s.reply != nil {
				close(s.reply)
			}
			e.releaseDrainers()
		}
	}
}

func (e *Engine) shutdown(cancel context.CancelFunc) {
	close(e.done)
	cancel()
	e.feedback.Stop()
	if err := e.input.Release(); err != nil {
		e.logger.Error(err)
	}
	e.workers.Wait()
}

// View returns the most recently published view.
func (e *Engine) View() domain.View {
	return *e.view.Load()
}

// Press feeds one keystroke into the wedge channel.
func (e *Engine) Press(r rune) {
	e.post(func() { e.input.Key(r) })
}

// Enter terminates the buffered keystrokes.
func (e *Engine) Enter() {
	e.post(func() {
		if ev, ok := e.input.Terminate(time.Now()); ok {
			e.dispatch(ev)
		}
	})
}

// Scan submits an already normalized event.
func (e *Engine) Scan(ctx context.Context, ev domain.ScanEvent) error {
	return e.call(ctx, func() { e.dispatch(ev) })
}

// RequestRemove opens a confirmation for removing a cart line.
func (e *Engine) RequestRemove(ctx context.Context, lineID string) error {
	var err error
	callErr := e.call(ctx, func() {
		line, ok := e.cart.Line(lineID)
		if !ok {
			err = zerr.With(zerr.Wrap(domain.ErrLineNotFound, "cannot remove line"), "line", lineID)
			return
		}
		err = e.confirm.Open(domain.RemoveLineConfirmation(line))
	})
	if callErr != nil {
		return callErr
	}
	return err
}

// RequestClear opens a confirmation for clearing the cart.
func (e *Engine) RequestClear(ctx context.Context) error {
	var err error
	if callErr := e.call(ctx, func() {
		err = e.confirm.Open(domain.ClearCartConfirmation())
	}); callErr != nil {
		return callErr
	}
	return err
}

// Confirm executes the pending intent.
func (e *Engine) Confirm(ctx context.Context) error {
	var err error
	if callErr := e.call(ctx, func() {
		var p domain.PendingConfirmation
		p, err = e.confirm.Confirm()
		if err != nil {
			return
		}
		switch p.Intent {
		case domain.IntentRemoveLine:
			if e.cart.RemoveLine(p.TargetLineID) {
				e.notify(e.feedback.Warning(domain.ItemRemovedText))
			}
		case domain.IntentClearCart:
			e.cart.Clear()
			e.notify(e.feedback.Warning(domain.CartClearedText))
		}
	}); callErr != nil {
		return callErr
	}
	return err
}

// Cancel closes the pending confirmation without effect.
func (e *Engine) Cancel(ctx context.Context) error {
	var had bool
	if err := e.call(ctx, func() { had = e.confirm.Cancel() }); err != nil {
		return err
	}
	if !had {
		return domain.ErrNoPendingConfirmation
	}
	return nil
}

// SetMode switches the live input channel. A camera acquisition failure is
// returned and also kept in the view until the next switch or retry.
func (e *Engine) SetMode(ctx context.Context, mode domain.Mode) error {
	var err error
	if callErr := e.call(ctx, func() {
		err = e.input.SetMode(e.runCtx, mode)
		if err != nil {
			e.logger.Error(err)
		}
	}); callErr != nil {
		return callErr
	}
	return err
}

// Drain waits until every lookup dispatched so far has been applied.
func (e *Engine) Drain(ctx context.Context) error {
	ready := make(chan struct{})
	if err := e.call(ctx, func() {
		e.drainers = append(e.drainers, ready)
	}); err != nil {
		return err
	}

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return domain.ErrEngineStopped
	}
}

func (e *Engine) dispatch(ev domain.ScanEvent) {
	if !e.gate.Admit(ev) {
		return
	}

	e.inflight++
	e.workers.Add(1)
	go func() {
		defer e.workers.Done()
		out := e.gate.Resolve(e.runCtx, ev)
		e.post(func() { e.apply(out) })
	}()
}

func (e *Engine) apply(out domain.Outcome) {
	if out.Found {
		e.cart.AddProduct(out.Product)
		e.notify(e.feedback.Success(domain.AddedText(out.Product.Name)))
	} else {
		e.logger.Warn(fmt.Sprintf("barcode %s not resolved: %v", out.Event.Barcode, out.Reason))
		e.notify(e.feedback.Warning(domain.UnknownBarcodeText(out.Event.Barcode)))
	}

	e.inflight--
}

// releaseDrainers wakes Drain callers once no lookup is outstanding. It runs
// after the step's view has been published.
func (e *Engine) releaseDrainers() {
	if e.inflight > 0 || len(e.drainers) == 0 {
		return
	}
	for _, ch := range e.drainers {
		close(ch)
	}
	e.drainers = nil
}

func (e *Engine) onCamera(msg cameraMsg) {
	if msg.err != nil {
		if err := e.input.failed(msg); err != nil {
			e.logger.Error(err)
		}
		return
	}
	if ev, ok := e.input.decoded(msg); ok {
		e.dispatch(ev)
	}
}

func (e *Engine) notify(fb domain.FeedbackState) {
	for _, n := range e.notifiers {
		e.workers.Add(1)
		go func() {
			defer e.workers.Done()
			defer func() {
				if r := recover(); r != nil {
					e.logger.Warn(fmt.Sprintf("feedback device panicked: %v", r))
				}
			}()
			if err := n.Notify(e.runCtx, fb); err != nil {
				e.logger.Warn(fmt.Sprintf("feedback device failed: %v", err))
			}
		}()
	}
}

func (e *Engine) publish() {
	v := e.snapshot()
	e.view.Store(v)
	if e.presenter != nil {
		e.presenter.Present(*v)
	}
}

func (e *Engine) snapshot() *domain.View {
	return &domain.View{
		Cart:      e.cart.Snapshot(),
		Feedback:  e.feedback.Current(),
		Pending:   e.confirm.Pending(),
		Mode:      e.input.Mode(),
		CameraErr: e.input.CameraErr(),
	}
}

// step is one unit of loop work. reply, if set, is closed once the step's
// view has been published.
type step struct {
	run   func()
	reply chan struct{}
}

// post queues a step. It returns false once the loop has stopped.
func (e *Engine) post(fn func()) bool {
	select {
	case e.inbox <- step{run: fn}:
		return true
	case <-e.done:
		return false
	}
}

// call queues a step and waits for the loop to run it.
func (e *Engine) call(ctx context.Context, fn func()) error {
	reply := make(chan struct{})

	select {
	case e.inbox <- step{run: fn, reply: reply}:
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return domain.ErrEngineStopped
	}

	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		select {
		case <-reply:
			return nil
		default:
			return domain.ErrEngineStopped
		}
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}
