package ports

import "context"

// Camera acquires the camera decoder. The returned handle owns the hardware
// until Release is called.
//
//go:generate mockgen -source=camera.go -destination=mocks/mock_camera.go -package=mocks
type Camera interface {
	// Open acquires the camera and starts decoding. On error nothing is held.
	Open(ctx context.Context) (CameraHandle, error)
}

// CameraHandle is an acquired camera decoder.
type CameraHandle interface {
	// Decoded delivers decoded text every time the decoder reports a read.
	// It is closed once the handle is released or the decoder exits.
	Decoded() <-chan string
	// Errors delivers hardware or permission failures after acquisition.
	Errors() <-chan error
	// Release stops decoding and frees the camera. It is safe to call more than once.
	Release() error
}
