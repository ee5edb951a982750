package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/zerr"
)

var errDecoderExited = zerr.New("camera decoder exited")

// cameraMsg is one report from the camera pump, tagged with the acquisition it
// came from so reports from a released handle can be discarded.
type cameraMsg struct {
	gen  uint64
	text string
	err  error
	at   time.Time
}

// Normalizer turns wedge keystrokes and camera decodes into scan events.
// Exactly one channel is live at a time. The camera handle is acquired when
// camera mode is entered and released when it is left, when the decoder
// reports an error, and on teardown.
//
// All methods except the pump are called from the engine loop.
type Normalizer struct {
	mode   domain.Mode
	buf    strings.Builder
	camera ports.Camera

	handle    ports.CameraHandle
	gen       uint64
	cameraErr error

	deliver func(cameraMsg) bool
}

// NewNormalizer creates a normalizer in wedge mode. deliver hands camera
// reports to the engine loop and returns false once the loop has stopped.
func NewNormalizer(camera ports.Camera, deliver func(cameraMsg) bool) *Normalizer {
	return &Normalizer{
		mode:    domain.ModeWedge,
		camera:  camera,
		deliver: deliver,
	}
}

// Mode returns the live channel.
func (n *Normalizer) Mode() domain.Mode {
	return n.mode
}

// CameraErr returns the persistent camera failure, or "".
func (n *Normalizer) CameraErr() string {
	if n.cameraErr == nil {
		return ""
	}
	return strings.ReplaceAll(n.cameraErr.Error(), "\n", ": ")
}

// Key buffers one keystroke from the wedge channel.
func (n *Normalizer) Key(r rune) {
	if n.mode != domain.ModeWedge {
		return
	}
	n.buf.WriteRune(r)
}

// Terminate ends the buffered keystrokes. The buffer is always reset; an event
// is produced only when something other than whitespace was typed.
func (n *Normalizer) Terminate(at time.Time) (domain.ScanEvent, bool) {
	raw := n.buf.String()
	n.buf.Reset()

	if n.mode != domain.ModeWedge {
		return domain.ScanEvent{}, false
	}
	b, ok := domain.ParseBarcode(raw)
	if !ok {
		return domain.ScanEvent{}, false
	}
	return domain.ScanEvent{Barcode: b, Source: domain.SourceWedge, ObservedAt: at}, true
}

// decoded turns a camera report into an event. Reports from a released
// handle, or arriving after a switch to wedge mode, are dropped.
func (n *Normalizer) decoded(msg cameraMsg) (domain.ScanEvent, bool) {
	if !n.current(msg.gen) {
		return domain.ScanEvent{}, false
	}
	b, ok := domain.ParseBarcode(msg.text)
	if !ok {
		return domain.ScanEvent{}, false
	}
	return domain.ScanEvent{Barcode: b, Source: domain.SourceCamera, ObservedAt: msg.at}, true
}

// failed records a decoder failure and releases the handle. It returns the
// recorded error, or nil if the report was stale.
func (n *Normalizer) failed(msg cameraMsg) error {
	if !n.current(msg.gen) {
		return nil
	}
	n.cameraErr = errors.Join(domain.ErrCameraUnavailable, msg.err)
	if err := n.Release(); err != nil {
		return errors.Join(n.cameraErr, err)
	}
	return n.cameraErr
}

// SetMode switches the live channel. Leaving camera mode releases the camera
// before returning. Entering camera mode acquires it; on failure the mode
// still switches and the error is kept until the next switch or retry.
// Requesting camera mode again while it has failed retries the acquisition.
func (n *Normalizer) SetMode(ctx context.Context, mode domain.Mode) error {
	n.buf.Reset()

	if mode == domain.ModeWedge {
		n.mode = domain.ModeWedge
		n.cameraErr = nil
		return n.Release()
	}

	if n.mode == domain.ModeCamera && n.handle != nil {
		return nil
	}
	n.mode = domain.ModeCamera
	n.cameraErr = nil

	if n.camera == nil {
		n.cameraErr = zerr.Wrap(domain.ErrCameraCommandMissing, domain.ErrCameraUnavailable.Error())
		return n.cameraErr
	}

	h, err := n.camera.Open(ctx)
	if err != nil {
		n.cameraErr = errors.Join(domain.ErrCameraUnavailable, err)
		return n.cameraErr
	}

	n.gen++
	n.handle = h
	go n.pump(n.gen, h.Decoded(), h.Errors())
	return nil
}

// Release frees the camera handle if one is held.
func (n *Normalizer) Release() error {
	if n.handle == nil {
		return nil
	}
	h := n.handle
	n.handle = nil
	n.gen++
	if err := h.Release(); err != nil {
		return zerr.Wrap(err, "failed to release camera")
	}
	return nil
}

func (n *Normalizer) current(gen uint64) bool {
	return n.mode == domain.ModeCamera && n.handle != nil && gen == n.gen
}

// exitErr prefers an exit status already queued on errs over the generic
// decoder exit.
func exitErr(errs <-chan error) error {
	select {
	case err, ok := <-errs:
		if ok && err != nil {
			return err
		}
	default:
	}
	return errDecoderExited
}

func (n *Normalizer) pump(gen uint64, decoded <-chan string, errs <-chan error) {
	for {
		var msg cameraMsg
		select {
		case text, ok := <-decoded:
			if !ok {
				n.deliver(cameraMsg{gen: gen, err: exitErr(errs), at: time.Now()})
				return
			}
			msg = cameraMsg{gen: gen, text: text, at: time.Now()}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			msg = cameraMsg{gen: gen, err: err, at: time.Now()}
		}
		if !n.deliver(msg) {
			return
		}
	}
}
