// Package config loads the pinstack configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything the composition root needs to build a service.
type Config struct {
	DataDir    string
	Adapter    string // "file" or "sqlite"
	Encoding   string // "json" or "yaml" (file adapter only)
	RedisAddr  string // empty disables the redis secondary store
	SessionTTL time.Duration
	Debounce   time.Duration
	Autosave   time.Duration
	Favicons   bool
}

const (
	defaultConfigPath = "~/.config/pinstack/config.toml"
	defaultDataDir    = "~/.local/share/pinstack"
	defaultAdapter    = "file"
	defaultEncoding   = "json"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:    mustExpand(defaultDataDir),
		Adapter:    defaultAdapter,
		Encoding:   defaultEncoding,
		SessionTTL: time.Hour,
		Debounce:   500 * time.Millisecond,
		Autosave:   30 * time.Second,
		Favicons:   true,
	}
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. An empty path means the default location.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DataDir     string `toml:"data_dir"`
		Adapter     string `toml:"adapter"`
		Encoding    string `toml:"encoding"`
		RedisAddr   string `toml:"redis_addr"`
		SessionTTLS int    `toml:"session_ttl_seconds"`
		DebounceMS  int    `toml:"debounce_ms"`
		AutosaveS   int    `toml:"autosave_seconds"`
		Favicons    *bool  `toml:"favicons"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}
	if adapter := strings.TrimSpace(raw.Adapter); adapter != "" {
		cfg.Adapter = adapter
	}
	if enc := strings.TrimSpace(raw.Encoding); enc != "" {
		cfg.Encoding = enc
	}
	cfg.RedisAddr = strings.TrimSpace(raw.RedisAddr)
	if raw.SessionTTLS > 0 {
		cfg.SessionTTL = time.Duration(raw.SessionTTLS) * time.Second
	}
	if raw.DebounceMS > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMS) * time.Millisecond
	}
	if raw.AutosaveS > 0 {
		cfg.Autosave = time.Duration(raw.AutosaveS) * time.Second
	}
	if raw.Favicons != nil {
		cfg.Favicons = *raw.Favicons
	}

	return cfg, nil
}

// DatabasePath returns the sqlite database location inside the data dir.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "pinstack.db")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
