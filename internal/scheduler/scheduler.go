// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the site's recurring jobs on a cron clock.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// defaultJobTimeout bounds a single run.
const defaultJobTimeout = 5 * time.Minute

// Job is one recurring task.
type Job struct {
	Name        string
	Description string
	Schedule    string // standard 5-field cron spec or @descriptor
	Run         func(ctx context.Context) error
}

// Scheduler owns the cron instance and the registry of jobs added to it.
type Scheduler struct {
	cron     *cron.Cron
	registry *Registry
	logger   *slog.Logger
	timeout  time.Duration
}

// New creates a scheduler. Panicking jobs are recovered and overlapping runs
// of the same job are skipped.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	cl := cronLogger{logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		registry: NewRegistry(logger),
		logger:   logger,
		timeout:  defaultJobTimeout,
	}
}

// Registry exposes the registered jobs.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Add schedules job.
func (s *Scheduler) Add(job Job) error {
	if job.Name == "" || job.Run == nil {
		return errors.New("job needs a name and a run function")
	}
	run := s.wrap(job)
	id, err := s.cron.AddFunc(job.Schedule, run)
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", job.Name, err)
	}
	s.registry.register(job, s.cron, id, run)
	return nil
}

// wrap gives each run its own deadline and logs the outcome.
func (s *Scheduler) wrap(job Job) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		start := time.Now()
		if err := job.Run(ctx); err != nil {
			s.logger.Error("scheduled job failed", "job", job.Name, "error", err)
			return
		}
		s.logger.Debug("scheduled job finished", "job", job.Name, "duration", time.Since(start))
	}
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop stops the clock and waits for running jobs, or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out with jobs still running")
	}
}

// cronLogger routes cron's own messages into slog.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
