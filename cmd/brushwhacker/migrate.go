// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"github.com/spf13/cobra"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			// openApp migrates as part of opening.
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.logger.Info("database is up to date", "path", a.cfg.DBPath)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return store.MigrationStatus(a.db)
		},
	})
	return cmd
}
