// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler serves the server-rendered site: public marketing pages,
// the quote form, staff login and the admin shell.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	g "github.com/maragudk/gomponents"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/access"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/middleware"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/nav"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views/public"
)

// Handler holds what the HTML handlers share.
type Handler struct {
	svc        *service.Services
	policy     *access.Policy
	tree       nav.Tree
	sessions   *scs.SessionManager
	protection *middleware.LoginProtection
	logger     *slog.Logger
	baseURL    string
	isDev      bool
}

// Config wires a Handler.
type Config struct {
	Services        *service.Services
	Policy          *access.Policy
	Tree            nav.Tree
	Sessions        *scs.SessionManager
	LoginProtection *middleware.LoginProtection
	Logger          *slog.Logger
	BaseURL         string
	IsDev           bool
}

// New creates the HTML handler.
func New(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Handler{
		svc:        cfg.Services,
		policy:     cfg.Policy,
		tree:       cfg.Tree,
		sessions:   cfg.Sessions,
		protection: cfg.LoginProtection,
		logger:     cfg.Logger,
		baseURL:    cfg.BaseURL,
		isDev:      cfg.IsDev,
	}
}

// pageInfo fills the public chrome. A missing theme falls back to the
// stylesheet defaults.
func (h *Handler) pageInfo(r *http.Request, title, description string) public.PageInfo {
	p := public.PageInfo{
		Title:       title,
		Description: description,
		Path:        r.URL.Path,
		BaseURL:     h.baseURL,
	}
	theme, err := h.svc.Public.ActiveTheme(r.Context())
	switch {
	case err == nil:
		p.Theme = &theme
	case !errors.Is(err, model.ErrNotFound):
		h.logger.Error("loading active theme", "error", err)
	}
	return p
}

// render writes a 200 page.
func (h *Handler) render(w http.ResponseWriter, node g.Node) {
	views.Render(w, http.StatusOK, node)
}

// NotFound renders the public 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusNotFound, public.NotFound(h.pageInfo(r, "Page not found", "")))
}

// fail renders a missing entity as 404 and anything else as a logged 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, model.ErrNotFound) {
		h.NotFound(w, r)
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	h.logger.Error("page render failed", "path", r.URL.Path, "error", err)
	views.Render(w, http.StatusInternalServerError, public.ServerError(h.pageInfo(r, "Error", "")))
}

// degrade logs a failed secondary read; the page renders without that section.
func (h *Handler) degrade(r *http.Request, what string, err error) {
	if err != nil {
		h.logger.Error("public read failed", "what", what, "path", r.URL.Path, "error", err)
	}
}
