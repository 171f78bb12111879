// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/seo"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
)

// sitemapProjects bounds the portfolio pages listed in the sitemap.
const sitemapProjects = service.MaxPerPage

// Sitemap serves /sitemap.xml from the catalog and published content.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	b := seo.NewSitemapBuilder(h.baseURL)
	b.AddStatic()
	b.AddCatalog(h.svc.Public.Catalog)

	pages, err := h.svc.Public.PublishedPages(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	b.AddPages(pages)

	posts, err := h.svc.Public.Posts(ctx, service.PostQuery{ListParams: service.ListParams{PerPage: service.MaxPerPage}})
	h.degrade(r, "sitemap posts", err)
	b.AddPosts(posts.Items)

	projects, err := h.svc.Public.Projects(ctx, service.ProjectQuery{ListParams: service.ListParams{PerPage: sitemapProjects}})
	h.degrade(r, "sitemap projects", err)
	b.AddProjects(projects.Items)

	data, err := b.Build()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

// Robots serves /robots.txt. Non-production deployments ask crawlers to stay out.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	body := seo.BuildRobots(seo.RobotsConfig{SiteURL: h.baseURL, DisallowAll: h.isDev})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(body))
}
