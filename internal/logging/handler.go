// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a custom slog handler that integrates with the Event Log system.
// It forwards logs at WARN level and above to the database-backed Event Log for auditing.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

// Attribute keys lifted into event columns instead of metadata.
const (
	KeyCategory = "category"
	KeyUserID   = "user_id"
	KeyIP       = "ip"
	KeyURL      = "url"
)

// EventLogHandler is a slog.Handler that wraps another handler and also writes
// WARN and ERROR level logs to the Event Log database.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
	attrs   []slog.Attr
}

// NewEventLogHandler wraps inner. Records at WARN and above also go to the Event Log.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a new EventLogHandler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level) || level >= h.level
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.inner.Enabled(ctx, r.Level) {
		if err := h.inner.Handle(ctx, r); err != nil {
			return err
		}
	}
	if r.Level >= h.level {
		h.writeToEventLog(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
		attrs:   append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
		attrs:   h.attrs,
	}
}

// writeToEventLog uses a background context so the event survives a
// cancelled request.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	p := store.CreateEventParams{
		Level:     eventLevel(r.Level),
		Message:   r.Message,
		CreatedAt: r.Time,
	}

	meta := make(map[string]any)
	collect := func(a slog.Attr) bool {
		switch a.Key {
		case KeyCategory:
			p.Category = a.Value.String()
		case KeyUserID:
			if id, ok := asInt64(a.Value); ok {
				p.UserID = &id
			}
		case KeyIP:
			p.IPAddress = a.Value.String()
		case KeyURL:
			p.RequestURL = a.Value.String()
		default:
			meta[a.Key] = a.Value.Resolve().Any()
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	if p.Category == "" {
		p.Category = inferCategory(r.Message)
	}
	p.Metadata = encodeMetadata(meta)

	_ = h.queries.CreateEvent(context.Background(), p)
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// inferCategory guesses a category when the record carries none.
func inferCategory(msg string) string {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") || strings.Contains(msg, "password"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "access") || strings.Contains(msg, "denied"):
		return model.EventCategoryAccess
	case strings.Contains(msg, "lead") || strings.Contains(msg, "quote"):
		return model.EventCategoryLead
	case strings.Contains(msg, "page") || strings.Contains(msg, "post") || strings.Contains(msg, "content"):
		return model.EventCategoryContent
	case strings.Contains(msg, "cache"):
		return model.EventCategoryCache
	default:
		return model.EventCategorySystem
	}
}

func asInt64(v slog.Value) (int64, bool) {
	switch v.Kind() {
	case slog.KindInt64:
		return v.Int64(), true
	case slog.KindUint64:
		return int64(v.Uint64()), true
	}
	return 0, false
}

func encodeMetadata(meta map[string]any) string {
	if len(meta) == 0 {
		return "{}"
	}
	for k, v := range meta {
		if err, ok := v.(error); ok {
			meta[k] = err.Error()
		}
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(b)
}
