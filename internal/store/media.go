// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "context"

// MediaFilter narrows ListMedia.
type MediaFilter struct {
	MimePrefix string
	Search     string
	Window
}

func (q *Queries) ListMedia(ctx context.Context, f MediaFilter) ([]Media, int64, error) {
	var w where
	if f.MimePrefix != "" {
		w.raw("mime_type LIKE ? ESCAPE '\\'", escapeLike(f.MimePrefix)+"%")
	}
	w.search(f.Search, "original_name", "alt_text")
	return selectPage[Media](ctx, q, "media", w, "id DESC", f.Window)
}

func (q *Queries) GetMediaByID(ctx context.Context, id int64) (Media, error) {
	return getByID[Media](ctx, q, "media", id)
}

func (q *Queries) CreateMedia(ctx context.Context, m Media) (Media, error) {
	m.CreatedAt, m.UpdatedAt = now(), now()
	return insert[Media](ctx, q, "media", `
		INSERT INTO media (uuid, filename, original_name, mime_type, size, width, height, alt_text,
			taken_at, uploaded_by, created_at, updated_at)
		VALUES (:uuid, :filename, :original_name, :mime_type, :size, :width, :height, :alt_text,
			:taken_at, :uploaded_by, :created_at, :updated_at)`, m)
}

func (q *Queries) UpdateMediaAlt(ctx context.Context, id int64, alt string) (Media, error) {
	res, err := q.db.ExecContext(ctx, `UPDATE media SET alt_text = ?, updated_at = ? WHERE id = ?`, alt, now(), id)
	if err != nil {
		return Media{}, err
	}
	if err := rowsAffected(res); err != nil {
		return Media{}, err
	}
	return q.GetMediaByID(ctx, id)
}

func (q *Queries) DeleteMedia(ctx context.Context, id int64) error {
	return deleteByID(ctx, q, "media", id)
}
