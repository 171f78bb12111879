// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package access decides which admin paths a role may open.
// The allow-list is derived from the navigation tree, so a destination
// is reachable exactly when it is visible in the sidebar.
package access

import (
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/nav"
)

// Policy holds precomputed allow-lists per role.
type Policy struct {
	root    string
	allowed map[model.Role][]string
}

// New builds a policy from tree. The tree is read once; Policy is safe for
// concurrent use afterwards.
func New(tree nav.Tree) *Policy {
	p := &Policy{
		root:    nav.AdminRoot,
		allowed: make(map[model.Role][]string, len(model.AllRoles)),
	}
	for _, role := range model.AllRoles {
		p.allowed[role] = reachable(tree, role)
	}
	return p
}

// reachable walks tree in declaration order: permitted leaves contribute
// their path, groups contribute their base path once any child is permitted.
func reachable(tree nav.Tree, role model.Role) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		p = nav.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, e := range tree {
		if !e.IsGroup() {
			if e.Permits(role) {
				add(e.Path)
			}
			continue
		}
		children := e.VisibleChildren(role)
		if len(children) == 0 {
			continue
		}
		add(e.Path)
		for _, c := range children {
			add(c.Path)
		}
	}
	return out
}

// AllowedPaths returns the paths reachable by role. Unknown roles get none.
func (p *Policy) AllowedPaths(role model.Role) []string {
	paths := p.allowed[role]
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}

// Allow reports whether role may open path. An empty or unknown role is
// treated as unauthenticated and always denied.
func (p *Policy) Allow(role model.Role, path string) bool {
	if !role.Valid() {
		return false
	}
	path = nav.Clean(path)
	if path == p.root {
		return true
	}
	for _, a := range p.allowed[role] {
		if a == p.root {
			// The dashboard never grants its sub-paths.
			continue
		}
		if nav.Under(path, a) {
			return true
		}
	}
	return false
}

// Check is Allow returning a typed error suitable for handlers.
func (p *Policy) Check(role model.Role, path string) error {
	if !role.Valid() {
		return &model.AuthError{Path: path}
	}
	if !p.Allow(role, path) {
		return &model.AuthError{Authenticated: true, Role: role, Path: path}
	}
	return nil
}
