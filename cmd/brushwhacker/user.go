// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage staff accounts",
	}
	cmd.AddCommand(newUserCreateCmd(), newUserListCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var in service.UserInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a staff account with a role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			svc, _, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			user, err := svc.Users.Create(cmd.Context(), in)
			if err != nil {
				var ve *model.ValidationError
				if errors.As(err, &ve) {
					return fmt.Errorf("invalid user: %s", formatFields(ve.Fields))
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) with role %s\n", user.Email, user.Name, user.Role)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Email, "email", "", "login email")
	f.StringVar(&in.Name, "name", "", "display name")
	f.StringVar(&in.Role, "role", "", "one of: "+roleNames())
	f.StringVar(&in.Password, "password", "", "initial password")
	for _, name := range []string{"email", "name", "role", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staff accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			svc, _, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			users, err := svc.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, u := range users {
				fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, u.Name)
			}
			return nil
		},
	}
}

func roleNames() string {
	names := make([]string, 0, len(model.AllRoles))
	for _, r := range model.AllRoles {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}

func formatFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}
