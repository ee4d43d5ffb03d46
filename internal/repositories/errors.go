package repositories

import "errors"

// ErrMemoryNotFound is returned when a memory id does not resolve to a record.
var ErrMemoryNotFound = errors.New("memory not found")

// WriteError classifies a failed create or delete against the remote store.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return "memory store write failed: " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

// ReadError classifies a failed list or get against the remote store. Callers
// treat a first-page read failure differently from a later one, so the raw
// cause stays wrapped rather than surfaced.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return "memory store read failed: " + e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// ReactionError classifies a failed reaction count mutation.
type ReactionError struct {
	Err error
}

func (e *ReactionError) Error() string { return "reaction update failed: " + e.Err.Error() }
func (e *ReactionError) Unwrap() error { return e.Err }
