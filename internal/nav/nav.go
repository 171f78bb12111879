// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package nav declares the admin sidebar and filters it per role.
package nav

import (
	"slices"
	"strings"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
)

// AdminRoot is the dashboard path every staff role may open.
const AdminRoot = "/admin"

// Kind distinguishes leaves from groups.
type Kind int

// Entry kinds.
const (
	KindLeaf Kind = iota
	KindGroup
)

// Entry is one sidebar item. For groups, Path is the base path and
// Children holds the nested leaves.
type Entry struct {
	Kind     Kind
	Title    string
	Path     string
	Icon     string
	Roles    []model.Role
	Children []Entry
}

// Leaf builds a leaf entry.
func Leaf(title, path, icon string, roles ...model.Role) Entry {
	return Entry{Kind: KindLeaf, Title: title, Path: path, Icon: icon, Roles: roles}
}

// Group builds a group entry.
func Group(title, basePath, icon string, roles []model.Role, children ...Entry) Entry {
	return Entry{Kind: KindGroup, Title: title, Path: basePath, Icon: icon, Roles: roles, Children: children}
}

// IsGroup reports whether e is a group.
func (e Entry) IsGroup() bool {
	return e.Kind == KindGroup
}

// Permits reports whether role is listed on the entry itself.
func (e Entry) Permits(role model.Role) bool {
	return slices.Contains(e.Roles, role)
}

// VisibleChildren returns the children role may see, in declaration order.
func (e Entry) VisibleChildren(role model.Role) []Entry {
	var out []Entry
	for _, c := range e.Children {
		if c.Permits(role) {
			out = append(out, c)
		}
	}
	return out
}

// Tree is an ordered list of top-level entries.
type Tree []Entry

// Visible returns the entries role may see. A group is kept when the role
// is on the group or on any child; its children are always filtered by
// their own roles, so a group may come back with no children.
func (t Tree) Visible(role model.Role) Tree {
	if !role.Valid() {
		return nil
	}
	var out Tree
	for _, e := range t {
		if !e.IsGroup() {
			if e.Permits(role) {
				out = append(out, e)
			}
			continue
		}
		children := e.VisibleChildren(role)
		if !e.Permits(role) && len(children) == 0 {
			continue
		}
		g := e
		g.Children = children
		out = append(out, g)
	}
	return out
}

// Find returns the entry (leaf or group) whose path matches exactly.
func (t Tree) Find(path string) (Entry, bool) {
	for _, e := range t {
		if e.Path == path {
			return e, true
		}
		for _, c := range e.Children {
			if c.Path == path {
				return c, true
			}
		}
	}
	return Entry{}, false
}

// Active returns the title of the deepest entry containing path, for headings.
func (t Tree) Active(path string) string {
	e, _ := t.ActiveEntry(path)
	return e.Title
}

// ActiveEntry returns the deepest entry whose path contains path.
func (t Tree) ActiveEntry(path string) (Entry, bool) {
	var found Entry
	best := -1
	for _, e := range t {
		candidates := append([]Entry{e}, e.Children...)
		for _, c := range candidates {
			if Under(path, c.Path) && len(c.Path) > best {
				best = len(c.Path)
				found = c
			}
		}
	}
	return found, best >= 0
}

// Under reports whether path equals base or is nested below it on a
// segment boundary. "/admin/leadsx" is not under "/admin/leads".
func Under(path, base string) bool {
	path = Clean(path)
	base = Clean(base)
	if path == base {
		return true
	}
	if base == "/" {
		return strings.HasPrefix(path, "/")
	}
	return strings.HasPrefix(path, base+"/")
}

// Clean strips trailing slashes, keeping "/" intact.
func Clean(p string) string {
	if p == "" {
		return "/"
	}
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = p[:len(p)-1]
	}
	return p
}

var (
	everyone  = []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleEditor, model.RoleSales}
	salesDesk = []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleSales}
	contentOp = []model.Role{model.RoleSuperAdmin, model.RoleAdmin, model.RoleEditor}
	managers  = []model.Role{model.RoleSuperAdmin, model.RoleAdmin}
)

// Default is the admin sidebar.
func Default() Tree {
	return Tree{
		Leaf("Dashboard", AdminRoot, "gauge", everyone...),
		Leaf("Leads", "/admin/leads", "inbox", salesDesk...),
		Group("CRM", "/admin/crm", "briefcase", salesDesk,
			Leaf("Projects", "/admin/crm/projects", "hammer", salesDesk...),
			Leaf("Pipeline", "/admin/crm/pipeline", "columns", salesDesk...),
		),
		Group("Content", "/admin/cms", "layers", contentOp,
			Leaf("Pages", "/admin/cms/pages", "file", contentOp...),
			Leaf("Templates", "/admin/cms/templates", "layout", contentOp...),
			Leaf("Blocks", "/admin/cms/blocks", "grid", contentOp...),
			Leaf("Blog Posts", "/admin/cms/posts", "pen", contentOp...),
			Leaf("Media", "/admin/cms/media", "image", contentOp...),
			Leaf("Themes", "/admin/cms/themes", "palette", contentOp...),
			Leaf("Redirects", "/admin/cms/redirects", "shuffle", contentOp...),
		),
		Leaf("Testimonials", "/admin/testimonials", "quote", contentOp...),
		Leaf("Branding", "/admin/branding", "brush", managers...),
		Leaf("Users", "/admin/users", "users", model.RoleSuperAdmin),
	}
}
