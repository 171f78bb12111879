// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Lists caches list query results per entity type. Each entity has a
// generation counter embedded in its keys; Invalidate bumps the counter so
// every cached listing for that entity becomes unreachable at once.
type Lists struct {
	backend Cache
	ttl     time.Duration
}

// NewLists wraps backend. ttl bounds cross-instance staleness.
func NewLists(backend Cache, ttl time.Duration) *Lists {
	return &Lists{backend: backend, ttl: ttl}
}

func genKey(entity string) string {
	return "gen:" + entity
}

func (l *Lists) generation(ctx context.Context, entity string) string {
	b, err := l.backend.Get(ctx, genKey(entity))
	if err != nil {
		return "0"
	}
	return string(b)
}

// Invalidate drops every cached listing of entity.
func (l *Lists) Invalidate(ctx context.Context, entity string) {
	if l == nil {
		return
	}
	if _, err := l.backend.Incr(ctx, genKey(entity)); err != nil {
		slog.Warn("list cache invalidation failed", "category", "cache", "entity", entity, "error", err)
	}
}

// Key builds a cache key for entity under its current generation.
func (l *Lists) Key(ctx context.Context, entity string, parts ...any) string {
	k := "list:" + entity + ":" + l.generation(ctx, entity)
	for _, p := range parts {
		k += ":" + fmt.Sprint(p)
	}
	return k
}

// Cached returns the cached value for key or computes and stores it.
// Cache failures never fail the read.
func Cached[T any](ctx context.Context, l *Lists, entity string, key string, fn func() (T, error)) (T, error) {
	if l == nil {
		return fn()
	}
	full := l.Key(ctx, entity, key)

	if b, err := l.backend.Get(ctx, full); err == nil {
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			return v, nil
		}
	}

	v, err := fn()
	if err != nil {
		return v, err
	}
	if b, err := json.Marshal(v); err == nil {
		_ = l.backend.Set(ctx, full, b, l.ttl)
	}
	return v, nil
}

// Generation exposes the counter for tests and diagnostics.
func (l *Lists) Generation(ctx context.Context, entity string) int64 {
	n, _ := strconv.ParseInt(l.generation(ctx, entity), 10, 64)
	return n
}
