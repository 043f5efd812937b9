package console

import "errors"

var (
	// ErrDeviceUnavailable indicates the console device could not be bound.
	// The console is unusable after Init returns it.
	ErrDeviceUnavailable = errors.New("console device unavailable")
	// ErrAlreadyInitialized is returned by a second call to Init.
	ErrAlreadyInitialized = errors.New("console already initialized")
)
