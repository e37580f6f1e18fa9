package domain

import "errors"

// ErrCycle is returned when attaching a node would make it its own ancestor.
var ErrCycle = errors.New("node cannot be attached to its own subtree")

// ErrTooDeep is returned by the serializer when nesting exceeds its depth limit.
var ErrTooDeep = errors.New("document tree too deep")

// ErrCommitIncomplete is returned when the completion callback runs before the
// host reported a finished commit.
var ErrCommitIncomplete = errors.New("commit did not complete")

// ErrNotFound is returned by description loaders when a document does not exist.
var ErrNotFound = errors.New("description not found")
