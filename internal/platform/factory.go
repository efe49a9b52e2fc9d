package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/pinstack/pinstack/pkg/adapters/file"
	"github.com/pinstack/pinstack/pkg/adapters/memory"
	"github.com/pinstack/pinstack/pkg/adapters/redisstore"
	"github.com/pinstack/pinstack/pkg/adapters/sqlitestore"
	"github.com/pinstack/pinstack/pkg/core"
	"github.com/pinstack/pinstack/pkg/dual"
	"github.com/pinstack/pinstack/pkg/sched"
)

// New builds a fully wired service: primary and secondary stores, the
// dual-store adapter, the board collection hydrated from storage, and a
// running flush scheduler. The uri argument is adapter-specific (data
// directory for "file", database path for "sqlite").
func New(uri string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()

	primary, err := initPrimary(ctx, uri, o, logger)
	if err != nil {
		return nil, err
	}
	secondary := initSecondary(ctx, o, logger)

	store := dual.New(dual.Config{
		Primary:   primary,
		Secondary: secondary,
		Logger:    logger,
		OnError:   o.errorHandler,
	})

	svc := core.NewService(core.ServiceConfig{
		Store:   store,
		Primary: primary,
		Logger:  logger,
		Collection: core.CollectionConfig{
			Rand:  o.rand,
			NewID: o.newID,
			Now:   o.now,
		},
	})
	svc.LoadState(ctx)

	scheduler := sched.New(sched.Config{
		Flush:    svc.Flush,
		Debounce: o.debounce,
		Interval: o.autosave,
		Logger:   logger,
	})
	if err := scheduler.Start(ctx); err != nil {
		return nil, fmt.Errorf("start scheduler: %w", err)
	}
	svc.AttachPolicy(scheduler)

	return svc, nil
}

// initPrimary builds and initializes the primary store.
func initPrimary(ctx context.Context, uri string, o *options, logger *slog.Logger) (core.KV, error) {
	if o.primary != nil {
		if err := o.primary.Initialize(ctx); err != nil {
			return nil, err
		}
		return o.primary, nil
	}

	var kv core.KV
	switch o.adapter {
	case "file":
		kv = file.NewStore(file.Config{
			Path:      uri,
			Encoding:  o.encoding,
			MustExist: o.mustExist,
			Logger:    logger,
		})
	case "sqlite":
		store, err := sqlitestore.NewStore(uri)
		if err != nil {
			return nil, err
		}
		kv = store
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := kv.Initialize(ctx); err != nil {
		return nil, err
	}
	return kv, nil
}

// initSecondary builds the secondary store. A broken redis degrades to the
// in-process store: losing the fallback leg must never break the service.
func initSecondary(ctx context.Context, o *options, logger *slog.Logger) core.KV {
	if o.secondary != nil {
		if err := o.secondary.Initialize(ctx); err != nil {
			logger.Warn("secondary store init failed, using in-process fallback", "error", err)
			return memory.NewStore()
		}
		return o.secondary
	}
	if o.redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: o.redisAddr})
		store := redisstore.NewStore(redisstore.Config{
			Client: client,
			TTL:    o.sessionTTL,
		})
		if err := store.Initialize(ctx); err != nil {
			logger.Warn("redis unreachable, using in-process fallback", "addr", o.redisAddr, "error", err)
			return memory.NewStore()
		}
		return store
	}
	return memory.NewStore()
}
