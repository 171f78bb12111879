// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/scheduler"
)

func newJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect or run the scheduled jobs",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List scheduled jobs and their cron specs",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				sched, closeApp, err := openScheduler(cmd)
				if err != nil {
					return err
				}
				defer closeApp()
				out := cmd.OutOrStdout()
				for _, j := range sched.Registry().List() {
					fmt.Fprintf(out, "%-16s %-14s %s\n", j.Name, j.Schedule, j.Description)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "run <name>",
			Short: "Run one job now and exit",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				sched, closeApp, err := openScheduler(cmd)
				if err != nil {
					return err
				}
				defer closeApp()
				return sched.Registry().TriggerNow(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

// openScheduler registers the built-in jobs without starting cron.
func openScheduler(cmd *cobra.Command) (*scheduler.Scheduler, func(), error) {
	a, err := openApp()
	if err != nil {
		return nil, nil, err
	}
	svc, geo, err := a.services(cmd.Context())
	if err != nil {
		a.Close()
		return nil, nil, err
	}

	sched := scheduler.New(a.logger)
	for _, job := range scheduler.Builtin(scheduler.BuiltinDeps{
		Pages:     svc.Pages,
		Posts:     svc.Posts,
		Events:    svc.Events,
		Retention: time.Duration(a.cfg.EventRetention) * 24 * time.Hour,
		GeoIP:     reloader(geo, a.cfg.GeoIPEnabled()),
		Logger:    a.logger,
	}) {
		if err := sched.Add(job); err != nil {
			a.Close()
			return nil, nil, err
		}
	}
	return sched, a.Close, nil
}
