// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheGetSet(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute})
	defer c.Close()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get missing = %v, want ErrCacheMiss", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	got[0] = 'x'
	again, _ := c.Get(ctx, "k")
	if string(again) != "v" {
		t.Error("returned slice should be a copy")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute})
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "short", []byte("v"), 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired Get = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheMaxEntries(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute, MaxEntries: 2})
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), time.Second)
	_ = c.Set(ctx, "b", []byte("2"), time.Minute)
	_ = c.Set(ctx, "c", []byte("3"), time.Minute)

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrCacheMiss) {
		t.Error("entry closest to expiry should be evicted")
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{})
	_ = c.Close()
	if err := c.Set(context.Background(), "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set after Close = %v", err)
	}
}

func TestListsInvalidate(t *testing.T) {
	backend := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute})
	defer backend.Close()
	lists := NewLists(backend, time.Minute)
	ctx := context.Background()

	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	for range 3 {
		got, err := Cached(ctx, lists, "posts", "status=published", load)
		if err != nil || len(got) != 2 {
			t.Fatalf("Cached = %v, %v", got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("loader called %d times, want 1", calls)
	}

	lists.Invalidate(ctx, "posts")
	if _, err := Cached(ctx, lists, "posts", "status=published", load); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("loader called %d times after invalidate, want 2", calls)
	}
	if lists.Generation(ctx, "posts") != 1 {
		t.Errorf("generation = %d", lists.Generation(ctx, "posts"))
	}

	// Other entities are untouched.
	if lists.Generation(ctx, "pages") != 0 {
		t.Error("pages generation should be 0")
	}
}

func TestCachedNilLists(t *testing.T) {
	got, err := Cached(context.Background(), nil, "x", "k", func() (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Errorf("Cached(nil) = %d, %v", got, err)
	}
}

func TestCachedDoesNotStoreErrors(t *testing.T) {
	backend := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute})
	defer backend.Close()
	lists := NewLists(backend, time.Minute)
	ctx := context.Background()

	boom := errors.New("boom")
	if _, err := Cached(ctx, lists, "leads", "k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	got, err := Cached(ctx, lists, "leads", "k", func() (int, error) { return 3, nil })
	if err != nil || got != 3 {
		t.Errorf("second call = %d, %v", got, err)
	}
}
