package core

import "context"

// KV defines the contract for a durable key-value byte store. Adhering to
// this interface keeps the core independent of the underlying mechanism
// (filesystem, SQLite, Redis, memory).
type KV interface {
	// Set persists a value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Get retrieves the value for key. Returns ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys matching the glob pattern, sorted.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Initialize ensures the underlying storage is ready (e.g., create the
	// data directory, open the database, run schema migration).
	Initialize(ctx context.Context) error
}

// EventType represents the type of an external change to a store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents an externally observed change to a stored record.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// Watchable is an optional capability for stores that can observe external
// modifications to their records.
type Watchable interface {
	// Watch emits an event for every external change to keys matching the
	// glob pattern until ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// StateStore is the narrow persistence surface the Service writes through.
// Implementations never surface errors for normal operation: failures are
// logged and degraded, and Load reports only whether a usable value was
// produced (spec'd by the dual-store adapter in pkg/dual).
type StateStore interface {
	// Save serializes v and writes it under key. It never fails outward.
	Save(ctx context.Context, key string, v any)

	// Load reads and deserializes the value for key into dst. It reports
	// false when no usable value exists, leaving dst untouched so the caller
	// keeps its default.
	Load(ctx context.Context, key string, dst any) bool
}

// FlushPolicy decides when in-memory mutations reach the StateStore. The
// scheduler in pkg/sched implements it; the Service is its only caller.
type FlushPolicy interface {
	// Mutated signals that state changed. Board and style changes may be
	// coalesced; active-pointer changes must flush immediately.
	Mutated(kind ChangeKind)

	// Suspend forces a synchronous flush (visibility-loss analog). It may be
	// called any number of times.
	Suspend()

	// Close stops all timers and performs a final synchronous flush
	// (teardown analog).
	Close(ctx context.Context) error
}
