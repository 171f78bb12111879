// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/seo"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views/public"
)

// homeListSize caps each section on the landing page.
const homeListSize = 3

// Home renders the landing page. Each content section is optional.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := public.HomeData{Services: h.svc.Public.Services()}

	projects, err := h.svc.Public.Projects(ctx, service.ProjectQuery{ListParams: service.ListParams{PerPage: homeListSize}})
	h.degrade(r, "projects", err)
	d.Projects = projects.Items

	d.Testimonials, err = h.svc.Public.Testimonials(ctx, homeListSize)
	h.degrade(r, "testimonials", err)

	posts, err := h.svc.Public.Posts(ctx, service.PostQuery{ListParams: service.ListParams{PerPage: homeListSize}})
	h.degrade(r, "posts", err)
	d.Posts = posts.Items

	p := h.pageInfo(r, "", "Land clearing, forestry mulching and stump grinding by a local crew.")
	p.JSONLD = seo.LocalBusiness(views.SiteName, h.baseURL, h.svc.Public.Catalog)
	h.render(w, public.Home(p, d))
}

func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	h.render(w, public.Services(h.pageInfo(r, "Services", "Everything we do, from brush hogging to storm cleanup."), h.svc.Public.Services()))
}

func (h *Handler) Service(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Public.Service(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, public.Service(h.pageInfo(r, v.Service.Name, v.Service.Summary), v))
}

func (h *Handler) Pricing(w http.ResponseWriter, r *http.Request) {
	h.render(w, public.Pricing(h.pageInfo(r, "Pricing", "Typical price ranges for land clearing work."), h.svc.Public.Pricing()))
}

func (h *Handler) ServiceAreas(w http.ResponseWriter, r *http.Request) {
	h.render(w, public.ServiceAreas(h.pageInfo(r, "Service Areas", "Counties we serve."), h.svc.Public.Areas()))
}

func (h *Handler) ServiceArea(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Public.ServiceArea(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, public.ServiceArea(h.pageInfo(r, v.Area.Name, v.Area.Blurb), v))
}

func (h *Handler) Blog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := service.PostQuery{
		ListParams: service.ListParams{Page: pageParam(r), Search: r.URL.Query().Get("q")}.Normalize(),
		Category:   r.URL.Query().Get("category"),
		Tag:        r.URL.Query().Get("tag"),
	}
	posts, err := h.svc.Public.Posts(ctx, q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	categories, err := h.svc.Public.Categories(ctx)
	h.degrade(r, "categories", err)

	h.render(w, public.Blog(h.pageInfo(r, "Blog", "Land management tips and project stories."), public.BlogData{
		Posts:      posts,
		Category:   q.Category,
		Categories: categories,
	}))
}

func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Public.Post(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p := h.pageInfo(r, v.Post.Title, seo.Description(v.Post.Excerpt, v.Post.Content))
	p.JSONLD = seo.Article(v.Post, views.SiteName, h.baseURL)
	h.render(w, public.Post(p, v))
}

func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	q := service.ProjectQuery{
		ListParams:  service.ListParams{Page: pageParam(r)}.Normalize(),
		County:      r.URL.Query().Get("county"),
		ServiceSlug: r.URL.Query().Get("service"),
	}
	res, err := h.svc.Public.Projects(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, public.Projects(h.pageInfo(r, "Projects", "Before and after photos from recent jobs."), res))
}

func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	pr, err := h.svc.Public.Project(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, public.Project(h.pageInfo(r, pr.Title, seo.Description("", pr.Description)), pr))
}

// CMSPage serves /{slug} from published CMS pages; anything else is a 404.
func (h *Handler) CMSPage(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Public.Page(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	title := v.Page.MetaTitle
	if title == "" {
		title = v.Page.Title
	}
	h.render(w, public.CMSPage(h.pageInfo(r, title, seo.Description(v.Page.MetaDescription, v.Page.Content)), v))
}

func pageParam(r *http.Request) int {
	n, _ := strconv.Atoi(r.URL.Query().Get("page"))
	return n
}
