// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/access"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/middleware"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/nav"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	svc      *service.Services
	policy   *access.Policy
	tree     nav.Tree
	sessions *scs.SessionManager
	logger   *slog.Logger
}

// Config wires a Handler.
type Config struct {
	Services *service.Services
	Policy   *access.Policy
	Tree     nav.Tree
	Sessions *scs.SessionManager
	Logger   *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Handler{
		svc:      cfg.Services,
		policy:   cfg.Policy,
		tree:     cfg.Tree,
		sessions: cfg.Sessions,
		logger:   cfg.Logger,
	}
}

// guard gates a resource by the admin nav path that owns it.
func (h *Handler) guard(navPath string) func(http.Handler) http.Handler {
	return middleware.RequireAccess(middleware.AccessConfig{
		Policy: h.policy,
		Path:   middleware.NavPath(navPath),
		Deny:   Deny,
		Logger: h.logger,
	})
}

// AdminRoutes returns the /api/admin router. The caller installs session
// loading, user loading and CSRF protection in front of it.
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.NoStore)

	r.Get("/session", h.Session)

	r.Route("/pages", func(r chi.Router) {
		r.Use(h.guard("/admin/cms/pages"))
		mountCRUD[store.Page, service.PageFilter, service.PageInput, service.PagePatch](r, h.svc.Pages, pageFilter)
		publishRoute[store.Page](r, h.svc.Pages)
		r.Get("/{id}/versions", h.pageVersions)
		r.Post("/{id}/versions/{versionId}/restore", h.restorePage)
	})
	r.Route("/templates", func(r chi.Router) {
		r.Use(h.guard("/admin/cms/templates"))
		mountCRUD[store.Template, service.TemplateFilter, service.TemplateInput, service.TemplatePatch](r, h.svc.Templates, templateFilter)
		publishRoute[store.Template](r, h.svc.Templates)
	})
	r.Route("/blocks", func(r chi.Router) {
		r.Use(h.guard("/admin/cms/blocks"))
		mountCRUD[store.Block, service.BlockFilter, service.BlockInput, service.BlockPatch](r, h.svc.Blocks, blockFilter)
		publishRoute[store.Block](r, h.svc.Blocks)
	})
	r.Route("/posts", func(r chi.Router) {
		r.Use(h.guard("/admin/cms/posts"))
		mountCRUD[store.Post, service.PostFilter, service.PostInput, service.PostPatch](r, h.svc.Posts, postFilter)
		publishRoute[store.Post](r, h.svc.Posts)
		r.Get("/categories", h.postCategories)
	})
	r.Route("/redirects", func(r chi.Router) {
		r.Use(h.guard("/admin/cms/redirects"))
		mountCRUD[store.Redirect, service.RedirectFilter, service.RedirectInput, service.RedirectPatch](r, h.svc.Redirects, redirectFilter)
		r.Post("/{id}/toggle", action(func(r *http.Request, id int64) (store.Redirect, error) {
			return h.svc.Redirects.Toggle(r.Context(), id)
		}))
	})
	r.Route("/themes", func(r chi.Router) {
		r.Use(h.guard("/admin/cms/themes"))
		mountCRUD[store.Theme, service.ThemeFilter, service.ThemeInput, service.ThemePatch](r, h.svc.Themes, themeFilter)
		r.Post("/{id}/activate", action(func(r *http.Request, id int64) (store.Theme, error) {
			return h.svc.Themes.Activate(r.Context(), id)
		}))
	})
	r.Route("/media", func(r chi.Router) {
		r.Use(h.guard("/admin/cms/media"))
		r.Get("/", h.listMedia)
		r.Post("/", h.uploadMedia)
		r.Get("/{id}", h.getMedia)
		r.Patch("/{id}", h.updateMedia)
		r.Delete("/{id}", h.deleteMedia)
	})
	r.Route("/testimonials", func(r chi.Router) {
		r.Use(h.guard("/admin/testimonials"))
		mountCRUD[store.Testimonial, service.TestimonialFilter, service.TestimonialInput, service.TestimonialPatch](r, h.svc.Testimonials, testimonialFilter)
		publishRoute[store.Testimonial](r, h.svc.Testimonials)
	})
	r.Route("/projects", func(r chi.Router) {
		r.Use(h.guard("/admin/crm/projects"))
		mountCRUD[store.Project, service.ProjectFilter, service.ProjectInput, service.ProjectPatch](r, h.svc.Projects, projectFilter)
		publishRoute[store.Project](r, h.svc.Projects)
	})
	r.Route("/leads", func(r chi.Router) {
		r.Use(h.guard("/admin/leads"))
		r.Get("/", h.listLeads)
		r.Get("/export", h.exportLeads)
		r.Get("/stats", h.leadStats)
		r.Get("/{id}", h.getLead)
		r.Patch("/{id}", h.updateLead)
		r.Post("/{id}/convert", h.convertLead)
	})
	r.Route("/users", func(r chi.Router) {
		r.Use(h.guard("/admin/users"))
		r.Get("/", h.listUsers)
	})
	r.Route("/events", func(r chi.Router) {
		r.Use(h.guard("/admin/users"))
		r.Get("/", h.listEvents)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Unknown API route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})
	return r
}

func pageFilter(r *http.Request) service.PageFilter {
	return service.PageFilter{ListParams: listParams(r), Status: r.URL.Query().Get("status")}
}

func templateFilter(r *http.Request) service.TemplateFilter {
	return service.TemplateFilter{ListParams: listParams(r), Status: r.URL.Query().Get("status")}
}

func blockFilter(r *http.Request) service.BlockFilter {
	q := r.URL.Query()
	return service.BlockFilter{ListParams: listParams(r), Status: q.Get("status"), Type: q.Get("type")}
}

func postFilter(r *http.Request) service.PostFilter {
	q := r.URL.Query()
	return service.PostFilter{ListParams: listParams(r), Status: q.Get("status"), Category: q.Get("category"), Tag: q.Get("tag")}
}

func redirectFilter(r *http.Request) service.RedirectFilter {
	return service.RedirectFilter{ListParams: listParams(r), Enabled: boolQuery(r, "enabled")}
}

func themeFilter(r *http.Request) service.ThemeFilter {
	return service.ThemeFilter{ListParams: listParams(r), Active: boolQuery(r, "active")}
}

func testimonialFilter(r *http.Request) service.TestimonialFilter {
	return service.TestimonialFilter{ListParams: listParams(r), Publish: boolQuery(r, "publish"), ServiceSlug: r.URL.Query().Get("service")}
}

func projectFilter(r *http.Request) service.ProjectFilter {
	q := r.URL.Query()
	return service.ProjectFilter{
		ListParams:  listParams(r),
		Status:      q.Get("status"),
		Stage:       q.Get("stage"),
		County:      q.Get("county"),
		ServiceSlug: q.Get("service"),
	}
}

func (h *Handler) pageVersions(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	versions, err := h.svc.Pages.Versions(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, versions, nil)
}

func (h *Handler) restorePage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	versionID, err := idParam(r, "versionId")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	page, err := h.svc.Pages.Restore(r.Context(), id, versionID)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, page, nil)
}

func (h *Handler) postCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Posts.Categories(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, cats, nil)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Users.List(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, users, nil)
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.svc.Events.List(r.Context(), service.EventFilter{
		ListParams: listParams(r),
		Level:      q.Get("level"),
		Category:   q.Get("category"),
	})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteList(w, res)
}
