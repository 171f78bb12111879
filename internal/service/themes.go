// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

// Theme defaults applied when a preset leaves typography blank.
const (
	DefaultFontFamily   = "Inter, system-ui, sans-serif"
	DefaultBorderRadius = "0.5rem"
)

// ThemeFilter narrows ThemeService.List.
type ThemeFilter struct {
	ListParams
	Active *bool `json:"active,omitempty"`
}

type ThemeInput struct {
	Name            string `json:"name"`
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	AccentColor     string `json:"accent_color"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	FontFamily      string `json:"font_family"`
	BorderRadius    string `json:"border_radius"`
}

type ThemePatch struct {
	Name            *string `json:"name"`
	PrimaryColor    *string `json:"primary_color"`
	SecondaryColor  *string `json:"secondary_color"`
	AccentColor     *string `json:"accent_color"`
	BackgroundColor *string `json:"background_color"`
	TextColor       *string `json:"text_color"`
	FontFamily      *string `json:"font_family"`
	BorderRadius    *string `json:"border_radius"`
}

// ThemeService manages theme presets. At most one preset is active.
type ThemeService struct {
	Deps
}

var _ Resource[store.Theme, ThemeFilter, ThemeInput, ThemePatch] = (*ThemeService)(nil)

func (s *ThemeService) List(ctx context.Context, f ThemeFilter) (ListResult[store.Theme], error) {
	f.ListParams = f.Normalize()
	return cachedList(ctx, s.Deps, EntityThemes, f, f.ListParams, func() ([]store.Theme, int64, error) {
		return s.Queries.ListThemes(ctx, store.ThemeFilter{Active: f.Active, Search: f.Search, Window: f.storePage()})
	})
}

func (s *ThemeService) Get(ctx context.Context, id int64) (store.Theme, error) {
	t, err := s.Queries.GetThemeByID(ctx, id)
	return t, translate(err, "theme")
}

// Active returns the active preset or ErrNotFound when none is set.
func (s *ThemeService) Active(ctx context.Context) (store.Theme, error) {
	t, err := s.Queries.GetActiveTheme(ctx)
	return t, translate(err, "active theme")
}

func (s *ThemeService) Create(ctx context.Context, in ThemeInput) (store.Theme, error) {
	t := store.Theme{
		Name:            strings.TrimSpace(in.Name),
		PrimaryColor:    in.PrimaryColor,
		SecondaryColor:  in.SecondaryColor,
		AccentColor:     in.AccentColor,
		BackgroundColor: in.BackgroundColor,
		TextColor:       in.TextColor,
		FontFamily:      in.FontFamily,
		BorderRadius:    in.BorderRadius,
	}
	if err := s.validate(ctx, &t); err != nil {
		return store.Theme{}, err
	}
	created, err := s.Queries.CreateTheme(ctx, t)
	if err != nil {
		return store.Theme{}, fmt.Errorf("creating theme: %w", err)
	}
	s.invalidate(ctx, EntityThemes)
	return created, nil
}

func (s *ThemeService) Update(ctx context.Context, id int64, patch ThemePatch) (store.Theme, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return store.Theme{}, err
	}
	set(&t.Name, patch.Name)
	set(&t.PrimaryColor, patch.PrimaryColor)
	set(&t.SecondaryColor, patch.SecondaryColor)
	set(&t.AccentColor, patch.AccentColor)
	set(&t.BackgroundColor, patch.BackgroundColor)
	set(&t.TextColor, patch.TextColor)
	set(&t.FontFamily, patch.FontFamily)
	set(&t.BorderRadius, patch.BorderRadius)
	t.Name = strings.TrimSpace(t.Name)
	if err := s.validate(ctx, &t); err != nil {
		return store.Theme{}, err
	}

	updated, err := s.Queries.UpdateTheme(ctx, t)
	if err != nil {
		return store.Theme{}, translate(err, "updating theme")
	}
	s.invalidate(ctx, EntityThemes)
	return updated, nil
}

// Delete removes an inactive preset. The active preset must be replaced first.
func (s *ThemeService) Delete(ctx context.Context, id int64) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if t.IsActive {
		return fmt.Errorf("deleting active theme %q: %w", t.Name, model.ErrConflict)
	}
	if err := s.Queries.DeleteTheme(ctx, id); err != nil {
		return translate(err, "deleting theme")
	}
	s.invalidate(ctx, EntityThemes)
	return nil
}

// Activate makes id the only active preset in one transaction.
func (s *ThemeService) Activate(ctx context.Context, id int64) (store.Theme, error) {
	err := s.Queries.ExecTx(ctx, func(q *store.Queries) error {
		if err := q.DeactivateThemes(ctx); err != nil {
			return err
		}
		return q.SetThemeActive(ctx, id)
	})
	switch {
	case err == nil:
	case isUniqueViolation(err):
		return store.Theme{}, fmt.Errorf("activating theme %d: %w", id, model.ErrConflict)
	default:
		return store.Theme{}, translate(err, "activating theme")
	}
	s.invalidate(ctx, EntityThemes)
	return s.Get(ctx, id)
}

func (s *ThemeService) validate(ctx context.Context, t *store.Theme) error {
	if t.FontFamily == "" {
		t.FontFamily = DefaultFontFamily
	}
	if t.BorderRadius == "" {
		t.BorderRadius = DefaultBorderRadius
	}

	c := newChecker()
	c.required("name", t.Name)
	c.color("primary_color", t.PrimaryColor)
	c.color("secondary_color", t.SecondaryColor)
	c.color("accent_color", t.AccentColor)
	c.color("background_color", t.BackgroundColor)
	c.color("text_color", t.TextColor)
	c.maxLen("font_family", t.FontFamily, 120)
	if err := c.unique(ctx, "name", t.Name, t.ID, s.Queries.ThemeNameTaken); err != nil {
		return err
	}
	return c.OrNil()
}

// isUniqueViolation matches SQLite's constraint error text, which both
// drivers report the same way.
func isUniqueViolation(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return true
		}
	}
	return false
}
