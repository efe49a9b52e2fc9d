package platform

import (
	"log/slog"
	"time"

	"github.com/pinstack/pinstack/pkg/core"
)

// options holds the internal configuration for the pinstack service.
type options struct {
	primary      core.KV
	secondary    core.KV
	logger       *slog.Logger
	adapter      string
	encoding     string
	mustExist    bool
	redisAddr    string
	sessionTTL   time.Duration
	debounce     time.Duration
	autosave     time.Duration
	rand         func(n int) int
	newID        func() string
	now          func() time.Time
	errorHandler func(op, key string, err error)
}

// Option defines a functional option for configuring pinstack.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:  "file",
		encoding: "json",
	}
}

// WithLogger sets the logger for the service and its stores.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAdapter selects the primary store adapter by name ("file" or
// "sqlite"). Defaults to "file".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithEncoding selects the on-disk record encoding for the file adapter
// ("json" or "yaml"). Defaults to "json".
func WithEncoding(name string) Option {
	return func(o *options) {
		o.encoding = name
	}
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithPrimary injects a custom primary store, skipping adapter selection.
func WithPrimary(kv core.KV) Option {
	return func(o *options) {
		o.primary = kv
	}
}

// WithSecondary injects a custom secondary store. Without this and without a
// redis address, an in-process store takes the secondary role.
func WithSecondary(kv core.KV) Option {
	return func(o *options) {
		o.secondary = kv
	}
}

// WithRedis makes a Redis instance at addr the secondary store.
func WithRedis(addr string) Option {
	return func(o *options) {
		o.redisAddr = addr
	}
}

// WithSessionTTL bounds the lifetime of records in the redis secondary store.
func WithSessionTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.sessionTTL = ttl
	}
}

// WithDebounce sets the quiet period before a mutation-triggered flush.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithAutosaveInterval sets the cadence of the unconditional periodic flush.
// Zero keeps the default; a negative value disables it.
func WithAutosaveInterval(d time.Duration) Option {
	return func(o *options) {
		o.autosave = d
	}
}

// WithRand injects the randomness source used for default board colors.
// Tests inject a deterministic one.
func WithRand(fn func(n int) int) Option {
	return func(o *options) {
		o.rand = fn
	}
}

// WithIDGen injects the board/media id generator. Defaults to UUIDs.
func WithIDGen(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// WithClock injects the clock used for media positions.
func WithClock(fn func() time.Time) Option {
	return func(o *options) {
		o.now = fn
	}
}

// WithErrorHandler registers a callback receiving every persistence failure
// the save/load contract swallows. Observability only; the failures are
// already logged.
func WithErrorHandler(fn func(op, key string, err error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
