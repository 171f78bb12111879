// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/middleware"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/nav"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/session"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views/admin"
)

// dashboardLeads is how many recent leads the dashboard lists.
const dashboardLeads = 5

// AdminRoutes returns the /admin router. Every page is guarded by the access
// policy on its own path; the nav toggle only needs a signed-in user.
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.NoStore)

	r.Post(RouteNavToggle, h.ToggleNav)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAccess(middleware.AccessConfig{
			Policy: h.policy,
			Deny:   middleware.HTMLDenier(http.HandlerFunc(h.denied)),
			Logger: h.logger,
		}))
		r.Get(RouteRoot, h.Dashboard)
		r.Get("/*", h.Section)
	})
	return r
}

func (h *Handler) pageContext(r *http.Request, title string) admin.PageContext {
	user := middleware.GetUser(r)
	pc := admin.PageContext{
		Title: title,
		Path:  nav.Clean(r.URL.Path),
	}
	if user != nil {
		pc.User = *user
		pc.Nav = h.tree.Visible(model.Role(user.Role))
	}
	if h.sessions != nil {
		pc.Expansion = session.Expansion(r.Context(), h.sessions)
		pc.Flash, pc.FlashType = session.PopFlash(r.Context(), h.sessions)
	}
	return pc
}

// Dashboard shows the lead pipeline to roles that can see leads.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(r, "Dashboard")
	var d admin.DashboardData

	if h.policy.Allow(pc.Role(), "/admin/leads") {
		stats, err := h.svc.Leads.Stats(r.Context())
		if err != nil {
			h.logger.Error("loading lead stats", "error", err)
		} else {
			d.Stats = &stats
		}
		recent, err := h.svc.Leads.List(r.Context(), service.LeadFilter{ListParams: service.ListParams{PerPage: dashboardLeads}})
		if err != nil {
			h.logger.Error("loading recent leads", "error", err)
		}
		d.Recent = recent.Items
	}

	views.Render(w, http.StatusOK, admin.Dashboard(pc, d))
}

// Section renders the workspace for any admin nav entry the policy let through.
func (h *Handler) Section(w http.ResponseWriter, r *http.Request) {
	path := nav.Clean(r.URL.Path)
	entry, ok := h.tree.Find(path)
	if !ok {
		h.adminNotFound(w, r)
		return
	}
	views.Render(w, http.StatusOK, admin.Workspace(h.pageContext(r, entry.Title), entry, workspaceAPI[entry.Path]))
}

// denied answers a signed-in user the policy turned away. Paths the nav tree
// does not know are reported missing rather than forbidden.
func (h *Handler) denied(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.tree.Find(nav.Clean(r.URL.Path)); !ok {
		h.adminNotFound(w, r)
		return
	}
	h.Forbidden(w, r)
}

func (h *Handler) adminNotFound(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusNotFound, admin.NotFound(h.pageContext(r, "Not found")))
}

// Forbidden renders the insufficient-permissions page.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusForbidden, admin.Forbidden(h.pageContext(r, "Insufficient permissions")))
}

type toggleResponse struct {
	Group    string `json:"group"`
	Expanded bool   `json:"expanded"`
}

// ToggleNav flips a sidebar group and remembers the choice in the session.
// Scripted callers get JSON; the no-JS form gets a redirect back.
func (h *Handler) ToggleNav(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		http.Redirect(w, r, middleware.LoginURL(nav.AdminRoot), http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	current := nav.Clean(r.PostFormValue("current"))
	if !nav.Under(current, nav.AdminRoot) {
		current = nav.AdminRoot
	}
	group, ok := h.tree.Visible(model.Role(user.Role)).Find(r.PostFormValue("group"))
	if !ok || !group.IsGroup() {
		http.Error(w, "Unknown nav group", http.StatusBadRequest)
		return
	}

	open := session.ToggleGroup(r.Context(), h.sessions, group, current)

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(toggleResponse{Group: group.Path, Expanded: open}); err != nil {
			h.logger.Error("encoding toggle response", "error", err)
		}
		return
	}
	http.Redirect(w, r, current, http.StatusSeeOther)
}
