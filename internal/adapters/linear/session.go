package linear

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/zerr"
)

// Controller is the part of the scan engine a line session drives.
type Controller interface {
	Press(r rune)
	Enter()
	RequestRemove(ctx context.Context, lineID string) error
	RequestClear(ctx context.Context) error
	Confirm(ctx context.Context) error
	Cancel(ctx context.Context) error
	SetMode(ctx context.Context, mode domain.Mode) error
	Drain(ctx context.Context) error
	View() domain.View
}

// Session feeds lines of input to the engine. Plain lines are typed on the
// wedge channel followed by Enter. Lines starting with ':' are commands:
//
//	:remove <id>   ask to remove a cart line
//	:clear         ask to clear the cart
//	:yes, :no      answer the open confirmation
//	:mode <mode>   switch between wedge and camera
//	:cart          print the cart
//
// Commands act on the cart once lookups already in flight have settled.
type Session struct {
	engine   Controller
	renderer *Renderer
}

// NewSession creates a Session.
func NewSession(engine Controller, renderer *Renderer) *Session {
	return &Session{engine: engine, renderer: renderer}
}

// Run reads in until EOF or ctx is done. At EOF it waits for outstanding
// lookups and prints the final cart.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return s.finish(ctx, readErr)
			}
			if err := s.handle(ctx, line); err != nil {
				if errors.Is(err, domain.ErrEngineStopped) {
					return err
				}
				s.renderer.Notice(err)
			}
		}
	}
}

func (s *Session) finish(ctx context.Context, readErr <-chan error) error {
	var err error
	select {
	case err = <-readErr:
	default:
	}
	if err != nil {
		return zerr.Wrap(err, "failed to read scan input")
	}

	if err := s.engine.Drain(ctx); err != nil {
		return err
	}
	s.renderer.PrintCart(s.engine.View())
	return nil
}

func (s *Session) handle(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, ":") {
		for _, r := range line {
			s.engine.Press(r)
		}
		s.engine.Enter()
		return nil
	}

	if err := s.engine.Drain(ctx); err != nil {
		return err
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrUnknownCommand, "failed to run command"), "command", line)
	}

	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; {
	case cmd == "remove" && len(args) == 1:
		return s.engine.RequestRemove(ctx, args[0])
	case cmd == "clear" && len(args) == 0:
		return s.engine.RequestClear(ctx)
	case (cmd == "yes" || cmd == "y") && len(args) == 0:
		return s.engine.Confirm(ctx)
	case (cmd == "no" || cmd == "n") && len(args) == 0:
		return s.engine.Cancel(ctx)
	case cmd == "mode" && len(args) == 1:
		mode, err := domain.ParseMode(args[0])
		if err != nil {
			return err
		}
		return s.engine.SetMode(ctx, mode)
	case cmd == "cart" && len(args) == 0:
		s.renderer.PrintCart(s.engine.View())
		return nil
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownCommand, "failed to run command"), "command", line)
	}
}
