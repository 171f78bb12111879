// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// CreateEventParams holds the fields of a new audit event.
type CreateEventParams struct {
	Level      string    `db:"level"`
	Category   string    `db:"category"`
	Message    string    `db:"message"`
	UserID     *int64    `db:"user_id"`
	IPAddress  string    `db:"ip_address"`
	RequestURL string    `db:"request_url"`
	Metadata   string    `db:"metadata"`
	CreatedAt  time.Time `db:"created_at"`
}

func (q *Queries) CreateEvent(ctx context.Context, p CreateEventParams) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now()
	}
	if p.Metadata == "" {
		p.Metadata = "{}"
	}
	_, err := q.db.NamedExecContext(ctx, `
		INSERT INTO events (level, category, message, user_id, ip_address, request_url, metadata, created_at)
		VALUES (:level, :category, :message, :user_id, :ip_address, :request_url, :metadata, :created_at)`, p)
	return err
}

// EventFilter narrows ListEvents.
type EventFilter struct {
	Level    string
	Category string
	Window
}

func (q *Queries) ListEvents(ctx context.Context, f EventFilter) ([]Event, int64, error) {
	var w where
	w.eq("level", f.Level)
	w.eq("category", f.Category)
	return selectPage[Event](ctx, q, "events", w, "id DESC", f.Window)
}

// DeleteEventsBefore prunes the audit log.
func (q *Queries) DeleteEventsBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, before.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
