package bell_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scango/internal/adapters/bell"
	"go.trai.ch/scango/internal/core/domain"
)

func TestBell_Notify(t *testing.T) {
	tests := []struct {
		kind domain.FeedbackKind
		want string
	}{
		{domain.FeedbackSuccess, "\a"},
		{domain.FeedbackWarning, "\a\a"},
		{domain.FeedbackIdle, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, bell.New(&buf).Notify(context.Background(), domain.FeedbackState{Kind: tt.kind}))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("terminal gone")
}

func TestBell_Errors(t *testing.T) {
	err := bell.New(failingWriter{}).Notify(context.Background(), domain.FeedbackState{Kind: domain.FeedbackSuccess})
	assert.ErrorContains(t, err, "failed to ring terminal bell")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err = bell.New(&buf).Notify(ctx, domain.FeedbackState{Kind: domain.FeedbackWarning})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}
