package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/engine/session"
)

func TestConfirmationGate_OpenConfirm(t *testing.T) {
	var g session.ConfirmationGate
	assert.Nil(t, g.Pending())

	require.NoError(t, g.Open(domain.ClearCartConfirmation()))
	pending := g.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, domain.IntentClearCart, pending.Intent)

	p, err := g.Confirm()
	require.NoError(t, err)
	assert.Equal(t, domain.IntentClearCart, p.Intent)
	assert.Nil(t, g.Pending())
}

func TestConfirmationGate_RejectsSecondRequest(t *testing.T) {
	var g session.ConfirmationGate
	line := domain.CartLine{Product: milk, Quantity: 1}

	require.NoError(t, g.Open(domain.RemoveLineConfirmation(line)))
	err := g.Open(domain.ClearCartConfirmation())
	require.ErrorIs(t, err, domain.ErrConfirmationPending)

	pending := g.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, domain.IntentRemoveLine, pending.Intent)
	assert.Equal(t, "P1001", pending.TargetLineID)
}

func TestConfirmationGate_Cancel(t *testing.T) {
	var g session.ConfirmationGate

	assert.False(t, g.Cancel())

	require.NoError(t, g.Open(domain.ClearCartConfirmation()))
	assert.True(t, g.Cancel())
	assert.Nil(t, g.Pending())

	_, err := g.Confirm()
	require.ErrorIs(t, err, domain.ErrNoPendingConfirmation)
}

func TestConfirmationGate_PendingIsACopy(t *testing.T) {
	var g session.ConfirmationGate
	require.NoError(t, g.Open(domain.ClearCartConfirmation()))

	g.Pending().Title = "changed"

	assert.Equal(t, "Clear Cart", g.Pending().Title)
}
