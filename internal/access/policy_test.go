// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package access

import (
	"errors"
	"testing"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/nav"
)

func TestAllow(t *testing.T) {
	p := New(nav.Default())

	tests := []struct {
		name string
		role model.Role
		path string
		want bool
	}{
		{"sales dashboard", model.RoleSales, "/admin", true},
		{"sales leads", model.RoleSales, "/admin/leads", true},
		{"sales lead detail", model.RoleSales, "/admin/leads/17", true},
		{"sales projects", model.RoleSales, "/admin/crm/projects", true},
		{"sales crm landing", model.RoleSales, "/admin/crm", true},
		{"sales cms", model.RoleSales, "/admin/cms", false},
		{"sales cms pages", model.RoleSales, "/admin/cms/pages", false},
		{"sales cms themes", model.RoleSales, "/admin/cms/themes/2/edit", false},
		{"sales branding", model.RoleSales, "/admin/branding", false},
		{"editor pages", model.RoleEditor, "/admin/cms/pages", true},
		{"editor templates", model.RoleEditor, "/admin/cms/templates", true},
		{"editor blocks", model.RoleEditor, "/admin/cms/blocks", true},
		{"editor posts", model.RoleEditor, "/admin/cms/posts/new", true},
		{"editor media", model.RoleEditor, "/admin/cms/media", true},
		{"editor themes", model.RoleEditor, "/admin/cms/themes", true},
		{"editor redirects", model.RoleEditor, "/admin/cms/redirects", true},
		{"editor leads", model.RoleEditor, "/admin/leads", false},
		{"editor branding", model.RoleEditor, "/admin/branding", false},
		{"admin branding", model.RoleAdmin, "/admin/branding", true},
		{"admin users", model.RoleAdmin, "/admin/users", false},
		{"super admin users", model.RoleSuperAdmin, "/admin/users/3", true},
		{"trailing slash", model.RoleSales, "/admin/leads/", true},
		{"no segment prefix", model.RoleSales, "/admin/leadsexport", false},
		{"root not a prefix", model.RoleSales, "/admin/secret", false},
		{"unauthenticated root", "", "/admin", false},
		{"unauthenticated leads", "", "/admin/leads", false},
		{"unknown role", "owner", "/admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Allow(tt.role, tt.path); got != tt.want {
				t.Errorf("Allow(%q, %q) = %v, want %v", tt.role, tt.path, got, tt.want)
			}
		})
	}
}

// Every role may reach a path iff it equals or sits under one of its
// reachable paths, or it is the dashboard.
func TestAllowMatchesAllowedPaths(t *testing.T) {
	p := New(nav.Default())
	probes := []string{
		"/admin", "/admin/leads", "/admin/leads/1", "/admin/crm", "/admin/crm/pipeline",
		"/admin/cms", "/admin/cms/pages/9", "/admin/testimonials", "/admin/branding",
		"/admin/users", "/admin/other", "/admin/crmx",
	}

	for _, role := range model.AllRoles {
		allowed := p.AllowedPaths(role)
		for _, path := range probes {
			want := path == nav.AdminRoot
			for _, a := range allowed {
				if a != nav.AdminRoot && nav.Under(path, a) {
					want = true
				}
			}
			if got := p.Allow(role, path); got != want {
				t.Errorf("Allow(%s, %s) = %v, want %v", role, path, got, want)
			}
		}
	}
}

func TestAllowedPathsGroupBase(t *testing.T) {
	tree := nav.Tree{
		nav.Group("Ops", "/admin/ops", "", []model.Role{model.RoleAdmin},
			nav.Leaf("Only editors", "/admin/ops/edit", "", model.RoleEditor),
		),
	}
	p := New(tree)

	// A group listing the role but with no permitted child adds nothing.
	if got := p.AllowedPaths(model.RoleAdmin); len(got) != 0 {
		t.Errorf("admin paths = %v, want none", got)
	}
	// A permitted child makes the group's landing page reachable.
	got := p.AllowedPaths(model.RoleEditor)
	if len(got) != 2 || got[0] != "/admin/ops" || got[1] != "/admin/ops/edit" {
		t.Errorf("editor paths = %v", got)
	}
	if !p.Allow(model.RoleEditor, "/admin/ops") {
		t.Error("editor should reach group landing")
	}
}

func TestCheck(t *testing.T) {
	p := New(nav.Default())

	if err := p.Check(model.RoleAdmin, "/admin/leads"); err != nil {
		t.Errorf("Check = %v, want nil", err)
	}
	if err := p.Check("", "/admin/leads"); !errors.Is(err, model.ErrUnauthenticated) {
		t.Errorf("Check unauthenticated = %v", err)
	}
	if err := p.Check(model.RoleSales, "/admin/cms"); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("Check forbidden = %v", err)
	}
}
