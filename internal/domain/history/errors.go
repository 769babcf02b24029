package history

import "errors"

// Sentinel kinds for history errors.
var (
	// ErrPersistenceReadFailed is recovered inside Load and never returned to callers.
	ErrPersistenceReadFailed  = errors.New("history read failed")
	ErrPersistenceWriteFailed = errors.New("history write failed")
	ErrMalformedHistory       = errors.New("malformed history document")

	errStorageRead = errors.New("storage read")
)
