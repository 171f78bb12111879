// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache is an in-process Cache.
type MemoryCache struct {
	mu         sync.Mutex
	data       map[string]memoryEntry
	defaultTTL time.Duration
	maxEntries int
	stopCh     chan struct{}
	closed     atomic.Bool
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryOptions configures NewMemoryCache.
type MemoryOptions struct {
	DefaultTTL      time.Duration
	MaxEntries      int           // 0 = unlimited
	CleanupInterval time.Duration // 0 = no background cleanup
}

// NewMemoryCache creates a MemoryCache and starts its cleanup loop if requested.
func NewMemoryCache(opts MemoryOptions) *MemoryCache {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = time.Minute
	}
	c := &MemoryCache{
		data:       make(map[string]memoryEntry),
		defaultTTL: opts.DefaultTTL,
		maxEntries: opts.MaxEntries,
		stopCh:     make(chan struct{}),
	}
	if opts.CleanupInterval > 0 {
		go c.cleanupLoop(opts.CleanupInterval)
	}
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if time.Now().After(e.expiresAt) {
		delete(c.data, key)
		return nil, ErrCacheMiss
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	v := make([]byte, len(value))
	copy(v, value)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.data[key]; !exists && c.maxEntries > 0 && len(c.data) >= c.maxEntries {
		c.removeExpiredLocked(time.Now())
		if len(c.data) >= c.maxEntries {
			c.evictOldestLocked()
		}
	}
	c.data[key] = memoryEntry{value: v, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
	return nil
}

// Incr counters never expire.
func (c *MemoryCache) Incr(_ context.Context, key string) (int64, error) {
	if c.closed.Load() {
		return 0, ErrCacheClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	if e, ok := c.data[key]; ok && time.Now().Before(e.expiresAt) {
		n, _ = strconv.ParseInt(string(e.value), 10, 64)
	}
	n++
	c.data[key] = memoryEntry{
		value:     []byte(strconv.FormatInt(n, 10)),
		expiresAt: time.Now().Add(100 * 365 * 24 * time.Hour),
	}
	return n, nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	c.mu.Lock()
	c.data = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

// Close stops the cleanup goroutine.
func (c *MemoryCache) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		close(c.stopCh)
	}
	return nil
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

func (c *MemoryCache) removeExpiredLocked(now time.Time) {
	for k, e := range c.data {
		if now.After(e.expiresAt) {
			delete(c.data, k)
		}
	}
}

func (c *MemoryCache) evictOldestLocked() {
	var oldest string
	var at time.Time
	for k, e := range c.data {
		if oldest == "" || e.expiresAt.Before(at) {
			oldest, at = k, e.expiresAt
		}
	}
	delete(c.data, oldest)
}

func (c *MemoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			c.mu.Lock()
			c.removeExpiredLocked(now)
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

var _ Cache = (*MemoryCache)(nil)
