package core

import "errors"

// Common errors.
var (
	// ErrNotFound is returned by a KV store when a key has no value.
	ErrNotFound = errors.New("key not found")
)
