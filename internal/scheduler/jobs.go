// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
)

// Default schedules.
const (
	EveryMinute     = "* * * * *"
	NightlyPrune    = "17 3 * * *"
	WeeklyGeoReload = "@weekly"
)

// Publisher publishes content whose scheduled time has passed.
type Publisher interface {
	PublishDue(ctx context.Context, at time.Time) (int, error)
}

// Pruner deletes audit events older than a retention window.
type Pruner interface {
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// Reloader re-reads a database file from disk.
type Reloader interface {
	Reload() error
}

// BuiltinDeps wires the site's own jobs. Nil fields skip their job.
type BuiltinDeps struct {
	Pages     Publisher
	Posts     Publisher
	Events    Pruner
	Retention time.Duration
	GeoIP     Reloader
	Logger    *slog.Logger
	Now       func() time.Time
}

// Builtin returns the jobs the server always runs.
func Builtin(d BuiltinDeps) []Job {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	var jobs []Job
	if d.Pages != nil {
		jobs = append(jobs, publishJob("publish-pages", "pages", d.Pages, d))
	}
	if d.Posts != nil {
		jobs = append(jobs, publishJob("publish-posts", "posts", d.Posts, d))
	}
	if d.Events != nil && d.Retention > 0 {
		jobs = append(jobs, Job{
			Name:        "prune-events",
			Description: "Delete audit events past the retention window",
			Schedule:    NightlyPrune,
			Run: func(ctx context.Context) error {
				n, err := d.Events.Prune(ctx, d.Retention)
				if err != nil {
					return fmt.Errorf("pruning events: %w", err)
				}
				if n > 0 {
					d.Logger.Info("pruned audit events", "count", n, "retention", d.Retention.String())
				}
				return nil
			},
		})
	}
	if d.GeoIP != nil {
		jobs = append(jobs, Job{
			Name:        "reload-geoip",
			Description: "Re-read the GeoIP country database",
			Schedule:    WeeklyGeoReload,
			Run: func(context.Context) error {
				return d.GeoIP.Reload()
			},
		})
	}
	return jobs
}

func publishJob(name, what string, p Publisher, d BuiltinDeps) Job {
	return Job{
		Name:        name,
		Description: "Publish " + what + " whose scheduled time has passed",
		Schedule:    EveryMinute,
		Run: func(ctx context.Context) error {
			n, err := p.PublishDue(ctx, d.Now())
			if err != nil {
				return fmt.Errorf("publishing scheduled %s: %w", what, err)
			}
			if n > 0 {
				d.Logger.Info("published scheduled content", "category", model.EventCategoryContent, "what", what, "count", n)
			}
			return nil
		},
	}
}
