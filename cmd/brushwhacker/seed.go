// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the first super admin, starter themes and sample content",
		Long: "Seed uses BW_ADMIN_EMAIL and BW_ADMIN_PASSWORD. It does nothing " +
			"once any user exists.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return a.seed(cmd.Context())
		},
	}
}
