// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/cache"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

// RedirectFilter narrows RedirectService.List.
type RedirectFilter struct {
	ListParams
	Enabled *bool `json:"enabled,omitempty"`
}

type RedirectInput struct {
	FromPath string `json:"from_path"`
	ToPath   string `json:"to_path"`
	Code     int    `json:"code"`
	Enabled  *bool  `json:"enabled"`
}

type RedirectPatch struct {
	FromPath *string `json:"from_path"`
	ToPath   *string `json:"to_path"`
	Code     *int    `json:"code"`
	Enabled  *bool   `json:"enabled"`
}

// RedirectService manages path redirect rules.
type RedirectService struct {
	Deps
}

var _ Resource[store.Redirect, RedirectFilter, RedirectInput, RedirectPatch] = (*RedirectService)(nil)

func (s *RedirectService) List(ctx context.Context, f RedirectFilter) (ListResult[store.Redirect], error) {
	f.ListParams = f.Normalize()
	return cachedList(ctx, s.Deps, EntityRedirects, f, f.ListParams, func() ([]store.Redirect, int64, error) {
		return s.Queries.ListRedirects(ctx, store.RedirectFilter{Enabled: f.Enabled, Search: f.Search, Window: f.storePage()})
	})
}

func (s *RedirectService) Get(ctx context.Context, id int64) (store.Redirect, error) {
	r, err := s.Queries.GetRedirectByID(ctx, id)
	return r, translate(err, "redirect")
}

func (s *RedirectService) Create(ctx context.Context, in RedirectInput) (store.Redirect, error) {
	r := store.Redirect{
		FromPath: cleanPath(in.FromPath),
		ToPath:   strings.TrimSpace(in.ToPath),
		Code:     in.Code,
		Enabled:  true,
	}
	if in.Enabled != nil {
		r.Enabled = *in.Enabled
	}
	if err := validateRedirect(r); err != nil {
		return store.Redirect{}, err
	}
	s.warnDuplicate(ctx, r)

	created, err := s.Queries.CreateRedirect(ctx, r)
	if err != nil {
		return store.Redirect{}, fmt.Errorf("creating redirect: %w", err)
	}
	s.invalidate(ctx, EntityRedirects)
	return created, nil
}

func (s *RedirectService) Update(ctx context.Context, id int64, patch RedirectPatch) (store.Redirect, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return store.Redirect{}, err
	}
	if patch.FromPath != nil {
		r.FromPath = cleanPath(*patch.FromPath)
	}
	if patch.ToPath != nil {
		r.ToPath = strings.TrimSpace(*patch.ToPath)
	}
	set(&r.Code, patch.Code)
	set(&r.Enabled, patch.Enabled)
	if err := validateRedirect(r); err != nil {
		return store.Redirect{}, err
	}
	s.warnDuplicate(ctx, r)

	updated, err := s.Queries.UpdateRedirect(ctx, r)
	if err != nil {
		return store.Redirect{}, translate(err, "updating redirect")
	}
	s.invalidate(ctx, EntityRedirects)
	return updated, nil
}

func (s *RedirectService) Delete(ctx context.Context, id int64) error {
	if err := s.Queries.DeleteRedirect(ctx, id); err != nil {
		return translate(err, "deleting redirect")
	}
	s.invalidate(ctx, EntityRedirects)
	return nil
}

// Toggle flips a rule between enabled and disabled.
func (s *RedirectService) Toggle(ctx context.Context, id int64) (store.Redirect, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return store.Redirect{}, err
	}
	enabled := !r.Enabled
	return s.Update(ctx, id, RedirectPatch{Enabled: &enabled})
}

// Resolve returns the first enabled rule for path, lowest id first.
func (s *RedirectService) Resolve(ctx context.Context, path string) (store.Redirect, bool, error) {
	rules, err := cache.Cached(ctx, s.Lists, EntityRedirects, "enabled", func() ([]store.Redirect, error) {
		return s.Queries.ListEnabledRedirects(ctx)
	})
	if err != nil {
		return store.Redirect{}, false, err
	}
	path = cleanPath(path)
	for _, r := range rules {
		if r.FromPath == path {
			return r, true, nil
		}
	}
	return store.Redirect{}, false, nil
}

// warnDuplicate logs when another enabled rule already claims the source path.
// Duplicates are accepted; resolution picks the oldest.
func (s *RedirectService) warnDuplicate(ctx context.Context, r store.Redirect) {
	if !r.Enabled {
		return
	}
	n, err := s.Queries.CountRedirectsFrom(ctx, r.FromPath, r.ID)
	if err != nil || n == 0 {
		return
	}
	s.logger().Warn("duplicate redirect source",
		"category", "content", "from_path", r.FromPath, "existing", n)
}

func validateRedirect(r store.Redirect) error {
	c := newChecker()
	c.localPath("from_path", r.FromPath)
	c.localPath("to_path", r.ToPath)
	switch r.Code {
	case http.StatusMovedPermanently, http.StatusFound:
	case 0:
		c.Add("code", "code is required")
	default:
		c.Add("code", "code must be 301 or 302")
	}
	if r.FromPath != "" && r.FromPath == cleanPath(r.ToPath) {
		c.Add("to_path", "to_path must differ from from_path")
	}
	return c.OrNil()
}

// cleanPath trims whitespace and trailing slashes, keeping "/" intact.
func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
