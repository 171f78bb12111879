// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides byte caches (memory or Redis) and the list cache
// used to serve entity listings between mutations.
package cache

import (
	"context"
	"log/slog"
	"time"
)

// Cache is implemented by MemoryCache and RedisCache. Implementations are safe
// for concurrent use.
type Cache interface {
	// Get returns ErrCacheMiss when key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value; ttl 0 uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr atomically increments an integer counter, creating it at 1.
	Incr(ctx context.Context, key string) (int64, error)
	Clear(ctx context.Context) error
	Close() error
}

// Error is a cache error constant.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"
	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

// Options selects and configures a backend.
type Options struct {
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration
	MaxEntries int
}

// New returns a Redis cache when RedisURL is set and reachable, otherwise an
// in-memory cache.
func New(ctx context.Context, opts Options) Cache {
	if opts.RedisURL != "" {
		rc, err := NewRedisCache(ctx, RedisOptions{
			URL:        opts.RedisURL,
			Prefix:     opts.Prefix,
			DefaultTTL: opts.DefaultTTL,
		})
		if err == nil {
			slog.Info("using redis cache", "prefix", opts.Prefix)
			return rc
		}
		slog.Warn("redis unavailable, falling back to memory cache", "category", "cache", "error", err)
	}
	return NewMemoryCache(MemoryOptions{
		DefaultTTL:      opts.DefaultTTL,
		MaxEntries:      opts.MaxEntries,
		CleanupInterval: time.Minute,
	})
}
