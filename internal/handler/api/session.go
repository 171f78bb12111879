// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/middleware"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/nav"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/session"
)

// SessionUser is the public view of the logged-in account.
type SessionUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	RoleLabel string `json:"role_label"`
}

// NavItem is one sidebar entry as seen by the current role.
type NavItem struct {
	Title    string    `json:"title"`
	Path     string    `json:"path"`
	Icon     string    `json:"icon"`
	Group    bool      `json:"group,omitempty"`
	Expanded bool      `json:"expanded,omitempty"`
	Children []NavItem `json:"children,omitempty"`
}

// SessionResponse answers GET /api/admin/session.
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`
	Nav           []NavItem    `json:"nav,omitempty"`
	AllowedPaths  []string     `json:"allowed_paths,omitempty"`
}

// Session reports the caller's identity. A missing or stale session is not
// an error: it answers 200 with authenticated=false.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteJSON(w, http.StatusOK, SessionResponse{Authenticated: false})
		return
	}

	role := model.Role(user.Role)
	current := r.URL.Query().Get("path")
	var expansion nav.Expansion
	if h.sessions != nil {
		expansion = session.Expansion(r.Context(), h.sessions)
	}

	WriteJSON(w, http.StatusOK, SessionResponse{
		Authenticated: true,
		User: &SessionUser{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			RoleLabel: role.Label(),
		},
		Nav:          navItems(h.tree.Visible(role), expansion, current),
		AllowedPaths: h.policy.AllowedPaths(role),
	})
}

func navItems(entries nav.Tree, x nav.Expansion, current string) []NavItem {
	items := make([]NavItem, 0, len(entries))
	for _, e := range entries {
		item := NavItem{Title: e.Title, Path: e.Path, Icon: e.Icon}
		if e.IsGroup() {
			item.Group = true
			item.Expanded = x.IsExpanded(e, current)
			item.Children = navItems(e.Children, x, current)
		}
		items = append(items, item)
	}
	return items
}
