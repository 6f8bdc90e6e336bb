package relay

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrUnknownModel indicates a selected model is not in the configured
	// model catalog. This is a configuration error: it is rejected at
	// settings-apply time, before a turn starts.
	ErrUnknownModel = errors.New("unknown model")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")

	// ErrNoModels indicates an empty model catalog.
	ErrNoModels = errors.New("no models configured")
)
