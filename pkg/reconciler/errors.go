package reconciler

import "errors"

var (
	// ErrRootUnmounted is returned when updating a root after Unmount.
	ErrRootUnmounted = errors.New("root is unmounted")
	// ErrInvalidElement is returned for descriptions the engine cannot render.
	ErrInvalidElement = errors.New("invalid element")
	// ErrMutationUnsupported is returned for hosts without mutation support.
	ErrMutationUnsupported = errors.New("host does not support mutation mode")
)
