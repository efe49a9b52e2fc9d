// Package redisstore implements a Redis-backed key-value store. It serves as
// the secondary, session-scoped store: with a TTL configured, records expire
// with the session instead of surviving restarts, which is exactly the
// durability trade the fallback store is meant to make.
package redisstore

import (
	"context"
	"sort"
	"time"

	"github.com/aretw0/introspection"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/redis/go-redis/v9"

	"github.com/pinstack/pinstack/pkg/core"
)

// DefaultNamespace prefixes every key so the store coexists with other users
// of the same Redis database.
const DefaultNamespace = "pinstack:"

// Config holds the store wiring.
type Config struct {
	// Client is required.
	Client *redis.Client
	// TTL expires records after the given duration; zero keeps them forever.
	TTL time.Duration
	// Namespace defaults to DefaultNamespace.
	Namespace string
}

// Store implements core.KV on Redis.
type Store struct {
	client    *redis.Client
	ttl       time.Duration
	namespace string
}

// NewStore creates a Redis store.
func NewStore(cfg Config) *Store {
	ns := cfg.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	return &Store{
		client:    cfg.Client,
		ttl:       cfg.TTL,
		namespace: ns,
	}
}

// Initialize verifies connectivity.
func (s *Store) Initialize(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.namespace+key, value, s.ttl).Err()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.namespace+key).Bytes()
	if err == redis.Nil {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.namespace+key).Err()
}

// Keys scans the namespace and filters with the same glob dialect as the
// other stores.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.namespace+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()[len(s.namespace):]
		ok, err := doublestar.Match(pattern, key)
		if err != nil {
			return nil, err
		}
		if ok {
			keys = append(keys, key)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return map[string]any{
		"namespace": s.namespace,
		"ttl":       s.ttl.String(),
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string { return "redis-store" }

var _ core.KV = (*Store)(nil)
var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
