package pinstack

import (
	"log/slog"
	"time"

	"github.com/pinstack/pinstack/internal/platform"
	"github.com/pinstack/pinstack/pkg/core"
)

// --- Types ---

// Board is a public alias for the core board entity.
type Board = core.Board

// MediaItem is a public alias for the core media attachment.
type MediaItem = core.MediaItem

// TextStyle is a public alias for the global text style.
type TextStyle = core.TextStyle

// Service is a public alias for the core service.
type Service = core.Service

// --- Configuration ---

// Option defines a functional option for configuring pinstack.
type Option = platform.Option

// WithLogger sets the logger for the service and its stores.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithAdapter selects the primary store adapter by name ("file" or "sqlite").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithEncoding selects the on-disk record encoding for the file adapter
// ("json" or "yaml").
func WithEncoding(name string) Option {
	return platform.WithEncoding(name)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithPrimary injects a custom primary store.
func WithPrimary(kv core.KV) Option {
	return platform.WithPrimary(kv)
}

// WithSecondary injects a custom secondary store.
func WithSecondary(kv core.KV) Option {
	return platform.WithSecondary(kv)
}

// WithRedis makes a Redis instance at addr the secondary (session) store.
func WithRedis(addr string) Option {
	return platform.WithRedis(addr)
}

// WithSessionTTL bounds the lifetime of records in the redis secondary store.
func WithSessionTTL(ttl time.Duration) Option {
	return platform.WithSessionTTL(ttl)
}

// WithDebounce sets the quiet period before a mutation-triggered flush.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// WithAutosaveInterval sets the cadence of the unconditional periodic flush.
func WithAutosaveInterval(d time.Duration) Option {
	return platform.WithAutosaveInterval(d)
}

// WithRand injects the randomness source used for default board colors.
func WithRand(fn func(n int) int) Option {
	return platform.WithRand(fn)
}

// WithIDGen injects the board/media id generator.
func WithIDGen(fn func() string) Option {
	return platform.WithIDGen(fn)
}

// WithClock injects the clock used for media positions.
func WithClock(fn func() time.Time) Option {
	return platform.WithClock(fn)
}

// WithErrorHandler registers a callback receiving swallowed persistence
// failures.
func WithErrorHandler(fn func(op, key string, err error)) Option {
	return platform.WithErrorHandler(fn)
}

// --- Factory ---

// New creates a fully wired pinstack Service: stores, dual-store adapter,
// hydrated board collection and a running flush scheduler. The uri argument
// is adapter-specific (data directory for "file", database path for
// "sqlite").
func New(uri string, opts ...Option) (*core.Service, error) {
	return platform.New(uri, opts...)
}
