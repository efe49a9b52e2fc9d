// Package dual implements the durable-store adapter: a pair of redundant
// key-value stores behind a save/load contract that never fails outward.
//
// The primary store is expected to survive restarts; the secondary trades
// durability across restarts for resilience within a session (it may be a
// Redis session store or an in-process map). Writes go to both, reads fall
// back from primary to secondary, and a secondary hit is replicated back into
// the primary so the pair converges again.
package dual

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/aretw0/introspection"

	"github.com/pinstack/pinstack/pkg/core"
)

// Config holds the adapter wiring.
type Config struct {
	// Primary is required.
	Primary core.KV
	// Secondary is optional; without it the adapter degrades to a single
	// store with the same outward contract.
	Secondary core.KV
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// OnError receives every internal failure that the outward contract
	// swallows. Optional observability hook.
	OnError func(op, key string, err error)
}

// Adapter is the dual-store adapter. It implements core.StateStore.
type Adapter struct {
	primary   core.KV
	secondary core.KV
	logger    *slog.Logger
	onError   func(op, key string, err error)
}

// New creates an Adapter.
func New(cfg Config) *Adapter {
	a := &Adapter{
		primary:   cfg.Primary,
		secondary: cfg.Secondary,
		logger:    cfg.Logger,
		onError:   cfg.OnError,
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

func (a *Adapter) fail(op, key string, err error) {
	a.logger.Warn("store operation failed", "op", op, "key", key, "error", err)
	if a.onError != nil {
		a.onError(op, key, err)
	}
}

// Save serializes v and writes it to the primary store, then to the
// secondary. Each failure is caught and logged; neither prevents the other
// write, and none reaches the caller. Save never fails.
func (a *Adapter) Save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		a.fail("marshal", key, err)
		return
	}
	if err := a.primary.Set(ctx, key, data); err != nil {
		a.fail("primary.set", key, err)
	}
	if a.secondary != nil {
		if err := a.secondary.Set(ctx, key, data); err != nil {
			a.fail("secondary.set", key, err)
		}
	}
}

// Load reads the value for key into dst. The primary store is tried first; a
// missing key or an undecodable value falls through to the secondary. A
// secondary hit is rewritten into the primary (self-healing replication)
// before returning. Load reports false when neither store yields a usable
// value, leaving dst untouched so the caller keeps its default.
func (a *Adapter) Load(ctx context.Context, key string, dst any) bool {
	if data, ok := a.read(ctx, a.primary, "primary", key); ok {
		err := decode(data, dst)
		if err == nil {
			return true
		}
		a.fail("primary.decode", key, err)
	}
	if a.secondary == nil {
		return false
	}
	data, ok := a.read(ctx, a.secondary, "secondary", key)
	if !ok {
		return false
	}
	if err := decode(data, dst); err != nil {
		a.fail("secondary.decode", key, err)
		return false
	}
	// Self-heal: put the recovered value back where the next load expects it.
	if err := a.primary.Set(ctx, key, data); err != nil {
		a.fail("primary.heal", key, err)
	}
	return true
}

// decode unmarshals data into dst all-or-nothing. json.Unmarshal mutates dst
// before reporting a type error, so the decode targets a scratch value and
// only a fully decoded one is copied out: a wrong-shape record must leave the
// caller's default untouched.
func decode(data []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer")
	}
	scratch := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, scratch.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(scratch.Elem())
	return nil
}

func (a *Adapter) read(ctx context.Context, kv core.KV, name, key string) ([]byte, bool) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if err != core.ErrNotFound {
			a.fail(name+".get", key, err)
		}
		return nil, false
	}
	return data, true
}

// Get is the typed load: it returns the stored value for key, or def when
// neither store yields a usable one.
func Get[T any](ctx context.Context, a *Adapter, key string, def T) T {
	out := def
	if a.Load(ctx, key, &out) {
		return out
	}
	return def
}

// Put is the typed save counterpart of Get.
func Put[T any](ctx context.Context, a *Adapter, key string, v T) {
	a.Save(ctx, key, v)
}

// State implements introspection.Introspectable.
func (a *Adapter) State() any {
	describe := func(kv core.KV) string {
		if kv == nil {
			return "none"
		}
		if comp, ok := kv.(introspection.Component); ok {
			return comp.ComponentType()
		}
		return "kv"
	}
	return map[string]string{
		"primary":   describe(a.primary),
		"secondary": describe(a.secondary),
	}
}

// ComponentType implements introspection.Component.
func (a *Adapter) ComponentType() string { return "dual-store" }

var _ core.StateStore = (*Adapter)(nil)
var _ introspection.Introspectable = (*Adapter)(nil)
var _ introspection.Component = (*Adapter)(nil)
