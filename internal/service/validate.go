// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/cache"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/util"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// checker accumulates field errors for one input.
type checker struct {
	*model.ValidationError
}

func newChecker() checker {
	return checker{model.NewValidationError()}
}

func (c checker) required(field, v string) bool {
	if strings.TrimSpace(v) == "" {
		c.Add(field, field+" is required")
		return false
	}
	return true
}

func (c checker) maxLen(field, v string, n int) {
	if len([]rune(v)) > n {
		c.Add(field, fmt.Sprintf("%s must be at most %d characters", field, n))
	}
}

func (c checker) slug(v string) {
	if !c.required("slug", v) {
		return
	}
	if !util.IsValidSlug(v) {
		c.Add("slug", "slug must be lowercase letters, digits and single hyphens")
	}
}

func (c checker) status(v string) {
	if !model.ValidContentStatus(v) {
		c.Add("status", "status must be draft or published")
	}
}

func (c checker) color(field, v string) {
	if !hexColor.MatchString(v) {
		c.Add(field, field+" must be a #rrggbb color")
	}
}

func (c checker) email(field, v string) {
	if v == "" {
		return
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		c.Add(field, "invalid email address")
	}
}

func (c checker) validJSON(field, v string) {
	if !c.required(field, v) {
		return
	}
	if !json.Valid([]byte(v)) {
		c.Add(field, field+" must be valid JSON")
	}
}

func (c checker) localPath(field, v string) {
	if !c.required(field, v) {
		return
	}
	if !util.IsLocalPath(v) {
		c.Add(field, field+" must start with /")
	}
}

// unique adds a slug error when taken reports a clash. Lookup failures
// are returned as-is.
func (c checker) unique(ctx context.Context, field, v string, exceptID int64, taken func(context.Context, string, int64) (bool, error)) error {
	if _, bad := c.Fields[field]; bad || v == "" {
		return nil
	}
	dup, err := taken(ctx, v, exceptID)
	if err != nil {
		return fmt.Errorf("checking %s: %w", field, err)
	}
	if dup {
		c.Add(field, field+" is already in use")
	}
	return nil
}

// slugOr returns slug, or a slug derived from fallback when slug is blank.
func slugOr(slug, fallback string) string {
	if s := strings.TrimSpace(slug); s != "" {
		return s
	}
	return util.Slugify(fallback)
}

func keyOf(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// cachedList serves a listing through the entity's list cache.
func cachedList[T any](ctx context.Context, d Deps, entity string, filter any, p ListParams, fn func() ([]T, int64, error)) (ListResult[T], error) {
	return cache.Cached(ctx, d.Lists, entity, keyOf(filter), func() (ListResult[T], error) {
		items, total, err := fn()
		if err != nil {
			return ListResult[T]{}, fmt.Errorf("listing %s: %w", entity, err)
		}
		return result(items, total, p), nil
	})
}

// set copies *src into dst when src is non-nil.
func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
