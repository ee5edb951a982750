// Package camera runs an external barcode decoder (zbarcam by default) on a
// pseudo-terminal and turns each line it prints into a decoded read.
package camera

import (
	"bufio"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Camera       = (*Decoder)(nil)
	_ ports.CameraHandle = (*handle)(nil)
)

// decodedBuffer bounds reads queued while the engine is busy.
const decodedBuffer = 16

// symbologies are the prefixes zbar prints in front of the data when not run in raw mode.
var symbologies = []string{
	"EAN-13", "EAN-8", "EAN-5", "EAN-2", "UPC-A", "UPC-E", "ISBN-10", "ISBN-13",
	"CODE-128", "CODE-93", "CODE-39", "I2/5", "CODABAR", "DATABAR", "DATABAR-EXP",
	"PDF417", "QR-CODE", "SQ-CODE",
}

// Decoder implements ports.Camera by starting a decoder process per Open.
type Decoder struct {
	command []string
	logger  ports.Logger
}

// NewDecoder creates a Decoder that runs command.
func NewDecoder(command []string, logger ports.Logger) *Decoder {
	return &Decoder{command: command, logger: logger}
}

// Open implements ports.Camera.
func (d *Decoder) Open(_ context.Context) (ports.CameraHandle, error) {
	if len(d.command) == 0 {
		return nil, zerr.Wrap(domain.ErrCameraCommandMissing, domain.ErrCameraUnavailable.Error())
	}

	// The handle outlives Open; Release is what stops the process.
	cmd := exec.Command(d.command[0], d.command[1:]...) //nolint:gosec // user configured decoder

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCameraUnavailable, err.Error()), "command", d.command[0])
	}

	h := &handle{
		cmd:        cmd,
		ptmx:       ptmx,
		decoded:    make(chan string, decodedBuffer),
		errs:       make(chan error, 1),
		done:       make(chan struct{}),
		exited:     make(chan struct{}),
		readerDone: make(chan struct{}),
		name:       d.command[0],
	}
	go h.wait()
	go h.read()

	if d.logger != nil {
		d.logger.Info("camera decoder started: " + strings.Join(d.command, " "))
	}
	return h, nil
}

type handle struct {
	cmd  *exec.Cmd
	ptmx *os.File
	name string

	decoded chan string
	errs    chan error

	done       chan struct{}
	exited     chan struct{}
	readerDone chan struct{}
	waitErr    error

	once       sync.Once
	releaseErr error
}

func (h *handle) Decoded() <-chan string {
	return h.decoded
}

func (h *handle) Errors() <-chan error {
	return h.errs
}

func (h *handle) Release() error {
	h.once.Do(func() {
		close(h.done)
		if err := h.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			h.releaseErr = zerr.Wrap(err, "failed to stop camera decoder")
		}
		<-h.exited
		_ = h.ptmx.Close()
		<-h.readerDone
	})
	return h.releaseErr
}

func (h *handle) wait() {
	h.waitErr = h.cmd.Wait()
	close(h.exited)
}

func (h *handle) read() {
	defer close(h.readerDone)
	defer close(h.decoded)

	sc := bufio.NewScanner(h.ptmx)
	for sc.Scan() {
		text, ok := parseLine(sc.Text())
		if !ok {
			continue
		}
		select {
		case h.decoded <- text:
		case <-h.done:
			return
		}
	}

	// Output ended: either Release closed the terminal or the decoder exited.
	select {
	case <-h.done:
		return
	case <-h.exited:
	}
	if h.waitErr != nil {
		exitErr := zerr.With(zerr.Wrap(h.waitErr, "camera decoder exited"), "command", h.name)
		select {
		case h.errs <- exitErr:
		default:
		}
	}
}

// parseLine extracts the barcode text from one line of decoder output.
func parseLine(line string) (string, bool) {
	line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
	if prefix, rest, ok := strings.Cut(line, ":"); ok {
		for _, s := range symbologies {
			if strings.EqualFold(prefix, s) {
				line = strings.TrimSpace(rest)
				break
			}
		}
	}
	if line == "" {
		return "", false
	}
	return line, true
}
