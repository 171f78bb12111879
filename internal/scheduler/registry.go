// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// specParser accepts what cron.New accepts by default.
var specParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// registeredJob holds metadata about a scheduled job.
type registeredJob struct {
	job             Job
	defaultSchedule string
	schedule        string // effective schedule
	cronInstance    *cron.Cron
	entryID         cron.EntryID
	wrapped         func()
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DefaultSchedule string    `json:"default_schedule"`
	Schedule        string    `json:"schedule"`
	IsOverridden    bool      `json:"is_overridden"`
	LastRun         time.Time `json:"last_run"`
	NextRun         time.Time `json:"next_run"`
}

// Registry tracks scheduled jobs by name.
type Registry struct {
	logger *slog.Logger
	mu     sync.RWMutex
	jobs   map[string]*registeredJob
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger, jobs: make(map[string]*registeredJob)}
}

func (r *Registry) register(job Job, c *cron.Cron, id cron.EntryID, wrapped func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.Name] = &registeredJob{
		job:             job,
		defaultSchedule: job.Schedule,
		schedule:        job.Schedule,
		cronInstance:    c,
		entryID:         id,
		wrapped:         wrapped,
	}
	r.logger.Debug("registered scheduled job", "name", job.Name, "schedule", job.Schedule)
}

// List returns all jobs sorted by name.
func (r *Registry) List() []JobInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]JobInfo, 0, len(r.jobs))
	for _, rj := range r.jobs {
		info := JobInfo{
			Name:            rj.job.Name,
			Description:     rj.job.Description,
			DefaultSchedule: rj.defaultSchedule,
			Schedule:        rj.schedule,
			IsOverridden:    rj.schedule != rj.defaultSchedule,
		}
		if rj.cronInstance != nil {
			entry := rj.cronInstance.Entry(rj.entryID)
			info.NextRun = entry.Next
			info.LastRun = entry.Prev
		}
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// TriggerNow runs a job synchronously and returns its error.
func (r *Registry) TriggerNow(ctx context.Context, name string) error {
	r.mu.RLock()
	rj, ok := r.jobs[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}
	r.logger.Info("manually triggering job", "name", name)
	return rj.job.Run(ctx)
}

// UpdateSchedule moves a job to a new cron spec. An invalid spec leaves the
// job on its current schedule.
func (r *Registry) UpdateSchedule(name, spec string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rj, ok := r.jobs[name]
	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}
	if _, err := specParser.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	rj.cronInstance.Remove(rj.entryID)
	id, err := rj.cronInstance.AddFunc(spec, rj.wrapped)
	if err != nil {
		fallbackID, fallbackErr := rj.cronInstance.AddFunc(rj.schedule, rj.wrapped)
		if fallbackErr != nil {
			return fmt.Errorf("critical: failed to restore schedule after update failure: %w (original: %w)", fallbackErr, err)
		}
		rj.entryID = fallbackID
		return fmt.Errorf("failed to apply new schedule: %w", err)
	}
	rj.entryID = id
	rj.schedule = spec

	r.logger.Info("updated job schedule", "name", name, "schedule", spec)
	return nil
}
