package linear_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.trai.ch/scango/internal/adapters/catalog"
	"go.trai.ch/scango/internal/adapters/linear"
	"go.trai.ch/scango/internal/engine/session"
)

// runSession feeds input to a session over the sample catalog and returns
// what it printed once the engine has stopped.
func runSession(t *testing.T, input string) (stdout, stderr string) {
	t.Helper()

	r, out, errOut := newRenderer(t)
	e := session.New(session.Options{
		Catalog:   catalog.Sample(),
		Presenter: r,
		Tracer:    noop.NewTracerProvider().Tracer("test"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	err := linear.NewSession(e, r).Run(ctx, strings.NewReader(input))
	cancel()
	require.NoError(t, <-done)
	require.NoError(t, err)

	return out.String(), errOut.String()
}

func TestSession_ScansAndConfirmations(t *testing.T) {
	input := strings.Join([]string{
		"012345",
		"012345",
		"999999",
		":remove P1001",
		":yes",
		"  012346  ",
		"",
	}, "\n")

	stdout, stderr := runSession(t, input)

	assert.Empty(t, stderr)
	assert.Equal(t, 2, strings.Count(stdout, "✓ Milk 1L added to cart"))
	assert.Contains(t, stdout, "! Unknown barcode: 999999")
	assert.Contains(t, stdout, "? Remove Item: Are you sure you want to remove Milk 1L from your cart? [:yes/:no]")
	assert.Contains(t, stdout, "! Item removed")
	assert.Contains(t, stdout, "✓ Whole Wheat Bread added to cart")
	assert.True(t, strings.HasSuffix(stdout, "Total: Rs 0.99 (1 item)\n"), stdout)
	assert.NotContains(t, stdout, "P1001 ")
}

func TestSession_ClearAndCancel(t *testing.T) {
	input := "012347\n012348\n:clear\n:no\n:cart\n:clear\n:yes\n"

	stdout, stderr := runSession(t, input)

	assert.Empty(t, stderr)
	assert.Equal(t, 2, strings.Count(stdout, "? Clear Cart:"))
	assert.Contains(t, stdout, "Total: Rs 6.08 (2 items)\n")
	assert.Contains(t, stdout, "! Cart cleared")
	assert.True(t, strings.HasSuffix(stdout, "Cart is empty\nTotal: Rs 0.00 (0 items)\n"), stdout)
}

func TestSession_RejectedCommands(t *testing.T) {
	input := ":yes\n:dance\n:\n:remove P9999\n:mode sideways\n:clear\n:clear\n"

	_, stderr := runSession(t, input)

	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "no confirmation is pending")
	assert.Contains(t, lines[1], "unknown command")
	assert.Contains(t, lines[2], "unknown command")
	assert.Contains(t, lines[3], "cart line not found")
	assert.Contains(t, lines[4], "invalid scan mode")
	assert.Contains(t, lines[5], "a confirmation is already pending")
}

func TestSession_CameraWithoutDecoder(t *testing.T) {
	stdout, _ := runSession(t, ":mode camera\n012345\n")

	assert.Contains(t, stdout, "○ mode: camera")
	assert.Contains(t, stdout, "camera decoder command is not configured")
	assert.NotContains(t, stdout, "Milk 1L added", "keystrokes are ignored in camera mode")
}
