package session_test

import (
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/engine/session"
)

func TestEmitter_StartsIdle(t *testing.T) {
	e := session.NewEmitter(time.Second, time.Second, nil)

	fb := e.Current()
	assert.Equal(t, domain.FeedbackIdle, fb.Kind)
	assert.Equal(t, "Ready to scan", fb.Text)
}

func TestEmitter_SuccessReverts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var reverts atomic.Int32
		e := session.NewEmitter(1800*time.Millisecond, 1400*time.Millisecond, func(fb domain.FeedbackState) {
			assert.Equal(t, domain.FeedbackIdle, fb.Kind)
			reverts.Add(1)
		})

		fb := e.Success("Milk 1L added to cart")
		assert.Equal(t, domain.FeedbackSuccess, fb.Kind)
		assert.True(t, fb.ExpiresAt.Equal(time.Now().Add(1800*time.Millisecond)))

		time.Sleep(1799 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, domain.FeedbackSuccess, e.Current().Kind)

		time.Sleep(time.Millisecond)
		synctest.Wait()
		assert.Equal(t, domain.FeedbackIdle, e.Current().Kind)
		assert.Equal(t, int32(1), reverts.Load())
	})
}

func TestEmitter_WarningReverts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		e := session.NewEmitter(1800*time.Millisecond, 1400*time.Millisecond, nil)

		e.Warning("Unknown barcode: 999999")

		time.Sleep(1400 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, domain.FeedbackIdle, e.Current().Kind)
	})
}

func TestEmitter_NewFeedbackPreemptsReversion(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var reverts atomic.Int32
		e := session.NewEmitter(1800*time.Millisecond, 1400*time.Millisecond, func(domain.FeedbackState) {
			reverts.Add(1)
		})

		first := e.Warning("Unknown barcode: 1")
		time.Sleep(1000 * time.Millisecond)
		second := e.Success("Milk 1L added to cart")
		assert.Greater(t, second.Generation, first.Generation)

		// The first message's timer would have fired here.
		time.Sleep(500 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, "Milk 1L added to cart", e.Current().Text)
		assert.Equal(t, int32(0), reverts.Load())

		time.Sleep(1300 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, domain.FeedbackIdle, e.Current().Kind)
		assert.Equal(t, second.Generation, e.Current().Generation)
		assert.Equal(t, int32(1), reverts.Load())
	})
}

func TestEmitter_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		e := session.NewEmitter(time.Second, time.Second, nil)

		e.Success("x")
		e.Stop()

		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.Equal(t, domain.FeedbackSuccess, e.Current().Kind)
	})
}
