// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
)

// ThemeFilter narrows ListThemes.
type ThemeFilter struct {
	Active *bool
	Search string
	Window
}

func (q *Queries) ListThemes(ctx context.Context, f ThemeFilter) ([]Theme, int64, error) {
	var w where
	w.eqBool("is_active", f.Active)
	w.search(f.Search, "name", "font_family")
	return selectPage[Theme](ctx, q, "theme_presets", w, "id DESC", f.Window)
}

func (q *Queries) GetThemeByID(ctx context.Context, id int64) (Theme, error) {
	return getByID[Theme](ctx, q, "theme_presets", id)
}

// GetActiveTheme returns the single active preset or sql.ErrNoRows.
func (q *Queries) GetActiveTheme(ctx context.Context) (Theme, error) {
	return getBy[Theme](ctx, q, "theme_presets", "is_active", true)
}

func (q *Queries) ThemeNameTaken(ctx context.Context, name string, exceptID int64) (bool, error) {
	var n int64
	err := q.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM theme_presets WHERE name = ? AND id != ?`, name, exceptID)
	return n > 0, err
}

func (q *Queries) CreateTheme(ctx context.Context, t Theme) (Theme, error) {
	t.CreatedAt, t.UpdatedAt = now(), now()
	t.IsActive = false
	return insert[Theme](ctx, q, "theme_presets", `
		INSERT INTO theme_presets (name, primary_color, secondary_color, accent_color, background_color,
			text_color, font_family, border_radius, is_active, created_at, updated_at)
		VALUES (:name, :primary_color, :secondary_color, :accent_color, :background_color,
			:text_color, :font_family, :border_radius, :is_active, :created_at, :updated_at)`, t)
}

// UpdateTheme writes visual tokens only. Activation goes through ActivateTheme.
func (q *Queries) UpdateTheme(ctx context.Context, t Theme) (Theme, error) {
	t.UpdatedAt = now()
	return update[Theme](ctx, q, "theme_presets", `
		UPDATE theme_presets SET name = :name, primary_color = :primary_color,
			secondary_color = :secondary_color, accent_color = :accent_color,
			background_color = :background_color, text_color = :text_color,
			font_family = :font_family, border_radius = :border_radius, updated_at = :updated_at
		WHERE id = :id`, t.ID, t)
}

func (q *Queries) DeleteTheme(ctx context.Context, id int64) error {
	return deleteByID(ctx, q, "theme_presets", id)
}

// DeactivateThemes clears the active flag on every preset.
func (q *Queries) DeactivateThemes(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE theme_presets SET is_active = 0, updated_at = ? WHERE is_active = 1`, now())
	return err
}

// SetThemeActive marks one preset active. Call after DeactivateThemes in the
// same transaction; the partial unique index rejects a second active row.
func (q *Queries) SetThemeActive(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE theme_presets SET is_active = 1, updated_at = ? WHERE id = ?`, now(), id)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}
