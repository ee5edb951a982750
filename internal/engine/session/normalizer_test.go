package session

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestNormalizer_WedgeBuffersUntilTerminator(t *testing.T) {
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		keys  string
		want  domain.Barcode
		found bool
	}{
		{name: "plain", keys: "012345", want: "012345", found: true},
		{name: "trimmed", keys: "  012345\t", want: "012345", found: true},
		{name: "empty", keys: "", found: false},
		{name: "whitespace only", keys: "   ", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(nil, nil)
			for _, r := range tt.keys {
				n.Key(r)
			}

			ev, ok := n.Terminate(at)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.want, ev.Barcode)
				assert.Equal(t, domain.SourceWedge, ev.Source)
				assert.Equal(t, at, ev.ObservedAt)
			}

			// The buffer is reset whether or not an event was produced.
			_, ok = n.Terminate(at)
			assert.False(t, ok)
		})
	}
}

func TestNormalizer_CameraModeIgnoresKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	camera := mocks.NewMockCamera(ctrl)
	camera.EXPECT().Open(gomock.Any()).Return(nil, zerr.New("no device"))

	n := NewNormalizer(camera, nil)
	n.Key('1')
	require.Error(t, n.SetMode(context.Background(), domain.ModeCamera))

	n.Key('2')
	_, ok := n.Terminate(time.Now())
	assert.False(t, ok)
}

func TestNormalizer_CameraLifecycle(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		decoded := make(chan string)
		handle := mocks.NewMockCameraHandle(ctrl)
		handle.EXPECT().Decoded().Return(decoded)
		handle.EXPECT().Errors().Return(nil)
		handle.EXPECT().Release().DoAndReturn(func() error {
			close(decoded)
			return nil
		})
		camera := mocks.NewMockCamera(ctrl)
		camera.EXPECT().Open(gomock.Any()).Return(handle, nil)

		received := make(chan cameraMsg, 4)
		n := NewNormalizer(camera, func(msg cameraMsg) bool {
			received <- msg
			return true
		})

		require.NoError(t, n.SetMode(context.Background(), domain.ModeCamera))
		assert.Equal(t, domain.ModeCamera, n.Mode())

		decoded <- " 012345 "
		msg := <-received
		ev, ok := n.decoded(msg)
		require.True(t, ok)
		assert.Equal(t, domain.Barcode("012345"), ev.Barcode)
		assert.Equal(t, domain.SourceCamera, ev.Source)

		require.NoError(t, n.SetMode(context.Background(), domain.ModeWedge))
		assert.Equal(t, domain.ModeWedge, n.Mode())

		// The pump reports the closed stream, which is stale by now.
		synctest.Wait()
		exit := <-received
		require.Error(t, exit.err)
		assert.NoError(t, n.failed(exit))
		_, ok = n.decoded(msg)
		assert.False(t, ok)
	})
}

func TestNormalizer_DecoderErrorReleasesCamera(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		decoded := make(chan string)
		errs := make(chan error, 1)
		handle := mocks.NewMockCameraHandle(ctrl)
		handle.EXPECT().Decoded().Return(decoded)
		handle.EXPECT().Errors().Return(errs)
		handle.EXPECT().Release().DoAndReturn(func() error {
			close(decoded)
			return nil
		}).Times(1)
		camera := mocks.NewMockCamera(ctrl)
		camera.EXPECT().Open(gomock.Any()).Return(handle, nil)

		received := make(chan cameraMsg, 4)
		n := NewNormalizer(camera, func(msg cameraMsg) bool {
			received <- msg
			return true
		})
		require.NoError(t, n.SetMode(context.Background(), domain.ModeCamera))

		errs <- zerr.New("permission denied")
		err := n.failed(<-received)
		require.ErrorIs(t, err, domain.ErrCameraUnavailable)
		assert.Contains(t, n.CameraErr(), "permission denied")
		assert.Equal(t, domain.ModeCamera, n.Mode())

		// Teardown after the failure has nothing left to release.
		require.NoError(t, n.Release())
		synctest.Wait()
	})
}

func TestNormalizer_ExitStatusWinsOverClosedStream(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		decoded := make(chan string)
		close(decoded)
		errs := make(chan error, 1)
		errs <- zerr.New("exit status 1")
		handle := mocks.NewMockCameraHandle(ctrl)
		handle.EXPECT().Decoded().Return(decoded)
		handle.EXPECT().Errors().Return(errs)
		handle.EXPECT().Release().Return(nil).AnyTimes()
		camera := mocks.NewMockCamera(ctrl)
		camera.EXPECT().Open(gomock.Any()).Return(handle, nil)

		received := make(chan cameraMsg, 4)
		n := NewNormalizer(camera, func(msg cameraMsg) bool {
			received <- msg
			return true
		})
		require.NoError(t, n.SetMode(context.Background(), domain.ModeCamera))
		synctest.Wait()

		first := <-received
		require.Error(t, first.err)
		assert.Contains(t, first.err.Error(), "exit status 1")
		require.NoError(t, n.Release())
	})
}

func TestExitErr(t *testing.T) {
	errs := make(chan error, 1)
	assert.ErrorIs(t, exitErr(errs), errDecoderExited)

	status := zerr.New("exit status 2")
	errs <- status
	assert.ErrorIs(t, exitErr(errs), status)

	close(errs)
	assert.ErrorIs(t, exitErr(errs), errDecoderExited)
}

func TestNormalizer_AcquireFailureIsPersistentUntilRetry(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		decoded := make(chan string)
		handle := mocks.NewMockCameraHandle(ctrl)
		handle.EXPECT().Decoded().Return(decoded)
		handle.EXPECT().Errors().Return(nil)
		handle.EXPECT().Release().DoAndReturn(func() error {
			close(decoded)
			return nil
		})
		camera := mocks.NewMockCamera(ctrl)
		gomock.InOrder(
			camera.EXPECT().Open(gomock.Any()).Return(nil, zerr.New("device busy")),
			camera.EXPECT().Open(gomock.Any()).Return(handle, nil),
		)

		n := NewNormalizer(camera, func(cameraMsg) bool { return false })

		err := n.SetMode(context.Background(), domain.ModeCamera)
		require.ErrorIs(t, err, domain.ErrCameraUnavailable)
		assert.Contains(t, n.CameraErr(), "device busy")
		assert.Equal(t, domain.ModeCamera, n.Mode())

		require.NoError(t, n.SetMode(context.Background(), domain.ModeCamera))
		assert.Empty(t, n.CameraErr())

		require.NoError(t, n.Release())
		synctest.Wait()
	})
}

func TestNormalizer_WedgeClearsCameraError(t *testing.T) {
	n := NewNormalizer(nil, nil)

	err := n.SetMode(context.Background(), domain.ModeCamera)
	require.ErrorIs(t, err, domain.ErrCameraCommandMissing)
	assert.NotEmpty(t, n.CameraErr())

	require.NoError(t, n.SetMode(context.Background(), domain.ModeWedge))
	assert.Empty(t, n.CameraErr())
}
