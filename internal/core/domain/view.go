package domain

// View is everything the presentation layer needs, captured after one
// processing step. It shares no mutable state with the engine.
type View struct {
	Cart     Cart
	Feedback FeedbackState
	Pending  *PendingConfirmation
	Mode     Mode
	// CameraErr is the persistent camera failure message, empty when healthy.
	CameraErr string
}
