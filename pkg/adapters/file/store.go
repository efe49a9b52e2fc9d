// Package file implements the filesystem-backed key-value store: one record
// file per key inside a data directory, written atomically. It is the default
// primary store and supports watching for external modifications.
package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/aretw0/introspection"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/pinstack/pinstack/pkg/core"
)

// Config holds the configuration for the file store.
type Config struct {
	// Path is the data directory.
	Path string
	// Encoding selects the on-disk codec: "json" (default) or "yaml".
	Encoding string
	// MustExist rejects initialization when the directory is missing instead
	// of creating it.
	MustExist bool
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// ErrorHandler receives runtime watcher failures. Optional.
	ErrorHandler func(error)
}

// Store implements core.KV on the filesystem.
type Store struct {
	Path   string
	codec  Codec
	config Config

	watcherActive atomic.Bool
}

// NewStore creates a file store. Call Initialize before use.
func NewStore(cfg Config) *Store {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Store{
		Path:   cfg.Path,
		codec:  CodecFor(cfg.Encoding),
		config: cfg,
	}
}

// Initialize ensures the data directory exists.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
		return nil
	}
	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// validKey restricts keys to path-safe names so a key can never escape the
// data directory.
func validKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return fmt.Errorf("invalid key %q: character %q not allowed", key, r)
		}
	}
	return nil
}

func (s *Store) filename(key string) string {
	return filepath.Join(s.Path, key+s.codec.Ext())
}

// Set writes a record atomically.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	data, err := s.codec.Encode(value)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.filename(key), data, 0644)
}

// Get reads a record. Missing files map to core.ErrNotFound; undecodable
// files surface their decode error so the caller can fall back.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.filename(key))
	if os.IsNotExist(err) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.codec.Decode(data)
}

// Delete removes a record. Missing files are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	err := os.Remove(s.filename(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Keys lists record keys matching the glob pattern, sorted.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	entries, err := os.ReadDir(s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, TempFilePrefix) {
			continue
		}
		if !strings.HasSuffix(name, s.codec.Ext()) {
			continue
		}
		key := strings.TrimSuffix(name, s.codec.Ext())
		ok, err := doublestar.Match(pattern, key)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// resolveKey maps an absolute record path back to its key, or "" when the
// path is not a record of this store.
func (s *Store) resolveKey(path string) string {
	name := filepath.Base(path)
	if strings.HasPrefix(name, TempFilePrefix) {
		return ""
	}
	if !strings.HasSuffix(name, s.codec.Ext()) {
		return ""
	}
	key := strings.TrimSuffix(name, s.codec.Ext())
	if validKey(key) != nil {
		return ""
	}
	return key
}

func (s *Store) setWatcherActive(active bool) {
	s.watcherActive.Store(active)
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return map[string]any{
		"path":           s.Path,
		"encoding":       strings.TrimPrefix(s.codec.Ext(), "."),
		"watcher_active": s.watcherActive.Load(),
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string { return "file-store" }

var _ core.KV = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
