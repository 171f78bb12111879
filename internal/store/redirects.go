// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
)

// RedirectFilter narrows ListRedirects.
type RedirectFilter struct {
	Enabled *bool
	Search  string
	Window
}

func (q *Queries) ListRedirects(ctx context.Context, f RedirectFilter) ([]Redirect, int64, error) {
	var w where
	w.eqBool("enabled", f.Enabled)
	w.search(f.Search, "from_path", "to_path")
	return selectPage[Redirect](ctx, q, "redirects", w, "id DESC", f.Window)
}

// ListEnabledRedirects returns active rules oldest first, so the first match wins.
func (q *Queries) ListEnabledRedirects(ctx context.Context) ([]Redirect, error) {
	rules := []Redirect{}
	if err := q.db.SelectContext(ctx, &rules, `SELECT * FROM redirects WHERE enabled = 1 ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("listing enabled redirects: %w", err)
	}
	return rules, nil
}

func (q *Queries) GetRedirectByID(ctx context.Context, id int64) (Redirect, error) {
	return getByID[Redirect](ctx, q, "redirects", id)
}

// CountRedirectsFrom counts enabled rules with the same source path, ignoring exceptID.
func (q *Queries) CountRedirectsFrom(ctx context.Context, from string, exceptID int64) (int64, error) {
	var n int64
	err := q.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM redirects WHERE from_path = ? AND enabled = 1 AND id != ?`, from, exceptID)
	return n, err
}

func (q *Queries) CreateRedirect(ctx context.Context, r Redirect) (Redirect, error) {
	r.CreatedAt, r.UpdatedAt = now(), now()
	return insert[Redirect](ctx, q, "redirects", `
		INSERT INTO redirects (from_path, to_path, code, enabled, created_at, updated_at)
		VALUES (:from_path, :to_path, :code, :enabled, :created_at, :updated_at)`, r)
}

func (q *Queries) UpdateRedirect(ctx context.Context, r Redirect) (Redirect, error) {
	r.UpdatedAt = now()
	return update[Redirect](ctx, q, "redirects", `
		UPDATE redirects SET from_path = :from_path, to_path = :to_path, code = :code,
			enabled = :enabled, updated_at = :updated_at
		WHERE id = :id`, r.ID, r)
}

func (q *Queries) DeleteRedirect(ctx context.Context, id int64) error {
	return deleteByID(ctx, q, "redirects", id)
}
