// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleSuperAdmin, true},
		{RoleAdmin, true},
		{RoleEditor, true},
		{RoleSales, true},
		{"", false},
		{"owner", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLeadStatusTransitionsArePermissive(t *testing.T) {
	for _, from := range LeadStatuses {
		for _, to := range LeadStatuses {
			if !from.CanTransition(to) {
				t.Errorf("%s -> %s should be allowed", from, to)
			}
		}
	}
	if LeadNew.CanTransition("Archived") {
		t.Error("transition to unknown status should be rejected")
	}
}

func TestValidationError(t *testing.T) {
	ve := NewValidationError()
	if ve.OrNil() != nil {
		t.Fatal("empty ValidationError should be nil")
	}
	ve.Add("title", "Title is required")
	ve.Add("title", "ignored")
	ve.Add("slug", "Slug is required")

	err := fmt.Errorf("creating post: %w", ve.OrNil())
	got, ok := IsValidation(err)
	if !ok {
		t.Fatal("IsValidation should unwrap")
	}
	if got.Fields["title"] != "Title is required" {
		t.Errorf("title = %q", got.Fields["title"])
	}
	if want := "validation failed: slug: Slug is required; title: Title is required"; got.Error() != want {
		t.Errorf("Error() = %q, want %q", got.Error(), want)
	}
}

func TestAuthErrorIs(t *testing.T) {
	unauth := &AuthError{Path: "/admin/leads"}
	if !errors.Is(unauth, ErrUnauthenticated) || errors.Is(unauth, ErrForbidden) {
		t.Error("unauthenticated AuthError should match ErrUnauthenticated only")
	}
	denied := &AuthError{Authenticated: true, Role: RoleSales, Path: "/admin/cms"}
	if !errors.Is(denied, ErrForbidden) || errors.Is(denied, ErrUnauthenticated) {
		t.Error("forbidden AuthError should match ErrForbidden only")
	}
}
