package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrEmptyKey      = errors.New("empty storage key")
	ErrInvalidKey    = errors.New("invalid storage key")
	ErrClosed        = errors.New("store closed")
)
