// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

// EventService writes and reads the audit log.
type EventService struct {
	Deps
}

// Event describes one audit entry.
type Event struct {
	Level      string
	Category   string
	Message    string
	UserID     *int64
	IPAddress  string
	RequestURL string
	Metadata   map[string]any
}

// Log stores e. Failures are logged and returned but never fatal to callers.
func (s *EventService) Log(ctx context.Context, e Event) error {
	meta := "{}"
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			meta = string(b)
		}
	}
	err := s.Queries.CreateEvent(ctx, store.CreateEventParams{
		Level:      e.Level,
		Category:   e.Category,
		Message:    e.Message,
		UserID:     e.UserID,
		IPAddress:  e.IPAddress,
		RequestURL: e.RequestURL,
		Metadata:   meta,
	})
	if err != nil {
		s.logger().Error("failed to log event", "error", err)
	}
	return err
}

// LogAuth records a login or logout.
func (s *EventService) LogAuth(ctx context.Context, level, message string, userID *int64, ip string, meta map[string]any) error {
	return s.Log(ctx, Event{Level: level, Category: model.EventCategoryAuth, Message: message, UserID: userID, IPAddress: ip, Metadata: meta})
}

// EventFilter narrows EventService.List.
type EventFilter struct {
	ListParams
	Level    string `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
}

func (s *EventService) List(ctx context.Context, f EventFilter) (ListResult[store.Event], error) {
	f.ListParams = f.Normalize()
	items, total, err := s.Queries.ListEvents(ctx, store.EventFilter{Level: f.Level, Category: f.Category, Window: f.storePage()})
	if err != nil {
		return ListResult[store.Event]{}, err
	}
	return result(items, total, f.ListParams), nil
}

// Prune deletes events older than retention.
func (s *EventService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	return s.Queries.DeleteEventsBefore(ctx, time.Now().Add(-retention))
}
