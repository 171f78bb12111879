// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/middleware"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/nav"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
)

// PublicConfig configures the anonymous API.
type PublicConfig struct {
	AllowedOrigins []string
	QuoteLimit     func(http.Handler) http.Handler
}

// PublicRoutes serves published content to anonymous callers.
func (h *Handler) PublicRoutes(cfg PublicConfig) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/posts", h.publicPosts)
	r.Get("/posts/{slug}", h.publicPost)
	r.Get("/projects", h.publicProjects)
	r.Get("/projects/{slug}", h.publicProject)
	r.Get("/testimonials", h.publicTestimonials)
	r.Get("/pages/{slug}", h.publicPage)
	r.Get("/theme", h.publicTheme)
	r.Get("/services", h.publicServices)
	r.Get("/services/{slug}", h.publicService)
	r.Get("/service-areas", h.publicAreas)
	r.Get("/service-areas/{slug}", h.publicArea)
	r.Get("/resolve", h.resolve)

	quote := http.HandlerFunc(h.submitQuote)
	if cfg.QuoteLimit != nil {
		r.Method(http.MethodPost, "/quote", cfg.QuoteLimit(quote))
	} else {
		r.Post("/quote", quote)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Resource not found")
	})
	return r
}

func (h *Handler) publicPosts(w http.ResponseWriter, r *http.Request) {
	q := service.PostQuery{
		ListParams: listParams(r),
		Category:   r.URL.Query().Get("category"),
		Tag:        r.URL.Query().Get("tag"),
	}
	res, err := h.svc.Public.Posts(r.Context(), q)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteList(w, res)
}

func (h *Handler) publicPost(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Public.Post(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, view, nil)
}

func (h *Handler) publicProjects(w http.ResponseWriter, r *http.Request) {
	q := service.ProjectQuery{
		ListParams:  listParams(r),
		County:      r.URL.Query().Get("county"),
		ServiceSlug: r.URL.Query().Get("service"),
	}
	res, err := h.svc.Public.Projects(r.Context(), q)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteList(w, res)
}

func (h *Handler) publicProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Public.Project(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, p, nil)
}

func (h *Handler) publicTestimonials(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			WriteBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	items, err := h.svc.Public.Testimonials(r.Context(), limit)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, items, nil)
}

func (h *Handler) publicPage(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Public.Page(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, view, nil)
}

func (h *Handler) publicTheme(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Public.ActiveTheme(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, t, nil)
}

func (h *Handler) publicServices(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.svc.Public.Services(), nil)
}

func (h *Handler) publicService(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Public.Service(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, view, nil)
}

func (h *Handler) publicAreas(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.svc.Public.Areas(), nil)
}

func (h *Handler) publicArea(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Public.ServiceArea(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, view, nil)
}

// resolution tells a headless front end what to do with a path.
type resolution struct {
	Kind     string               `json:"kind"` // redirect, page or not_found
	Path     string               `json:"path"`
	Redirect *service.Redirection `json:"redirect,omitempty"`
	Page     *service.PageView    `json:"page,omitempty"`
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("path")
	if raw == "" {
		WriteBadRequest(w, "path is required")
		return
	}
	if raw[0] != '/' {
		raw = "/" + raw
	}
	p := nav.Clean(raw)

	red, ok, err := h.svc.Public.ResolveRedirect(r.Context(), p)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if ok {
		WriteSuccess(w, resolution{Kind: "redirect", Path: p, Redirect: &red}, nil)
		return
	}

	slug := p[1:]
	if slug == "" {
		slug = "home"
	}
	view, err := h.svc.Public.Page(r.Context(), slug)
	switch {
	case err == nil:
		WriteSuccess(w, resolution{Kind: "page", Path: p, Page: &view}, nil)
	case errors.Is(err, model.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, Response{Data: resolution{Kind: "not_found", Path: p}})
	default:
		WriteServiceError(w, r, err)
	}
}

// quoteReceipt is all a visitor learns about the stored lead.
type quoteReceipt struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

func (h *Handler) submitQuote(w http.ResponseWriter, r *http.Request) {
	var in service.QuoteRequest
	if err := decodeJSON(r, &in); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	lead, err := h.svc.Leads.Create(r.Context(), in, service.Client{
		IP:        middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteCreated(w, quoteReceipt{Reference: lead.Reference, Status: lead.Status})
}
