// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/cache"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/markdown"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/marketing"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

const (
	relatedPostLimit    = 3
	showcaseLimit       = 6
	contentPlaceholder  = "{{content}}"
	defaultTestimonials = 6
)

// DefaultTheme is served when no preset is active.
var DefaultTheme = store.Theme{
	Name:            "Default",
	PrimaryColor:    "#2f5d3a",
	SecondaryColor:  "#8b5e34",
	AccentColor:     "#e0a526",
	BackgroundColor: "#fbfaf7",
	TextColor:       "#1f2421",
	FontFamily:      DefaultFontFamily,
	BorderRadius:    DefaultBorderRadius,
}

// PostQuery narrows the public blog listing.
type PostQuery struct {
	ListParams
	Category string `json:"category,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

// PostView is a published post with its rendered body.
type PostView struct {
	Post    store.Post   `json:"post"`
	HTML    string       `json:"html"`
	Related []store.Post `json:"related"`
}

// PageView is a published page resolved for rendering.
type PageView struct {
	Page     store.Page      `json:"page"`
	HTML     string          `json:"html"`
	Template *store.Template `json:"template,omitempty"`
	Blocks   []store.Block   `json:"blocks"`
}

// ProjectQuery narrows the public portfolio.
type ProjectQuery struct {
	ListParams
	County      string `json:"county,omitempty"`
	ServiceSlug string `json:"service,omitempty"`
}

// PublicProject is a portfolio entry as visitors see it. Client names and
// the originating lead stay in the CRM.
type PublicProject struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	County         string     `json:"county"`
	ServiceSlug    string     `json:"service_slug"`
	Acreage        string     `json:"acreage"`
	Description    string     `json:"description"`
	BeforeImageURL string     `json:"before_image_url"`
	AfterImageURL  string     `json:"after_image_url"`
	Stage          string     `json:"stage"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func newPublicProject(p store.Project) PublicProject {
	return PublicProject{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		County:         p.County,
		ServiceSlug:    p.ServiceSlug,
		Acreage:        p.Acreage,
		Description:    p.Description,
		BeforeImageURL: p.BeforeImageURL,
		AfterImageURL:  p.AfterImageURL,
		Stage:          p.Stage,
		CompletedAt:    p.CompletedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ServiceView joins a catalog service with published work.
type ServiceView struct {
	Service      marketing.Service   `json:"service"`
	Projects     []PublicProject     `json:"projects"`
	Testimonials []store.Testimonial `json:"testimonials"`
}

// AreaView joins a service area with published work in that county.
type AreaView struct {
	Area         marketing.Area      `json:"area"`
	Services     []marketing.Service `json:"services"`
	Projects     []PublicProject     `json:"projects"`
	Testimonials []store.Testimonial `json:"testimonials"`
}

// Redirection is the outcome of a redirect lookup.
type Redirection struct {
	To   string `json:"to"`
	Code int    `json:"code"`
}

// PublicService resolves what anonymous visitors may see. Drafts and
// unpublished items never leave this service.
type PublicService struct {
	Deps
	Catalog   *marketing.Catalog
	Redirects *RedirectService
}

func NewPublicService(d Deps, catalog *marketing.Catalog) *PublicService {
	return &PublicService{Deps: d, Catalog: catalog, Redirects: &RedirectService{Deps: d}}
}

// Posts lists published posts, newest first.
func (s *PublicService) Posts(ctx context.Context, q PostQuery) (ListResult[store.Post], error) {
	q.ListParams = q.Normalize()
	key := struct {
		PostQuery
		Public bool
	}{q, true}
	return cachedList(ctx, s.Deps, EntityPosts, key, q.ListParams, func() ([]store.Post, int64, error) {
		return s.Queries.ListPosts(ctx, store.PostFilter{
			Status:   model.StatusPublished,
			Category: q.Category,
			Tag:      q.Tag,
			Search:   q.Search,
			Window:   q.storePage(),
		})
	})
}

// Post returns a published post with up to three related posts.
func (s *PublicService) Post(ctx context.Context, slug string) (PostView, error) {
	p, err := s.Queries.GetPostBySlug(ctx, slug)
	if err != nil {
		return PostView{}, translate(err, "post")
	}
	if p.Status != model.StatusPublished {
		return PostView{}, fmt.Errorf("post %q: %w", slug, model.ErrNotFound)
	}

	html, err := markdown.ToHTML(p.Content)
	if err != nil {
		return PostView{}, fmt.Errorf("rendering post: %w", err)
	}
	related, err := s.related(ctx, p)
	if err != nil {
		return PostView{}, err
	}
	return PostView{Post: p, HTML: html, Related: related}, nil
}

func (s *PublicService) related(ctx context.Context, p store.Post) ([]store.Post, error) {
	if p.Category == "" {
		return []store.Post{}, nil
	}
	posts, _, err := s.Queries.ListPosts(ctx, store.PostFilter{
		Status:    model.StatusPublished,
		Category:  p.Category,
		ExcludeID: p.ID,
		Window:    store.Window{Limit: relatedPostLimit},
	})
	if err != nil {
		return nil, fmt.Errorf("related posts: %w", err)
	}
	return posts, nil
}

// Categories lists categories of published posts.
func (s *PublicService) Categories(ctx context.Context) ([]string, error) {
	return cache.Cached(ctx, s.Lists, EntityPosts, "categories", func() ([]string, error) {
		return s.Queries.ListPostCategories(ctx)
	})
}

// Page resolves a published page with its template and published blocks.
func (s *PublicService) Page(ctx context.Context, slug string) (PageView, error) {
	p, err := s.Queries.GetPageBySlug(ctx, slug)
	if err != nil {
		return PageView{}, translate(err, "page")
	}
	if p.Status != model.StatusPublished {
		return PageView{}, fmt.Errorf("page %q: %w", slug, model.ErrNotFound)
	}

	body, err := markdown.ToHTML(p.Content)
	if err != nil {
		return PageView{}, fmt.Errorf("rendering page: %w", err)
	}
	view := PageView{Page: p, HTML: body, Blocks: []store.Block{}}

	if p.TemplateID != nil {
		t, err := s.Queries.GetTemplateByID(ctx, *p.TemplateID)
		switch {
		case err == nil && t.Status == model.StatusPublished:
			view.Template = &t
			if strings.Contains(t.Layout, contentPlaceholder) {
				view.HTML = markdown.Sanitize(strings.ReplaceAll(t.Layout, contentPlaceholder, body))
			}
		case err != nil && !isNotFound(err):
			return PageView{}, fmt.Errorf("loading template: %w", err)
		}
	}

	for _, id := range p.BlockIDs {
		b, err := s.Queries.GetBlockByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return PageView{}, fmt.Errorf("loading block %d: %w", id, err)
		}
		if b.Status == model.StatusPublished {
			view.Blocks = append(view.Blocks, b)
		}
	}
	return view, nil
}

// PublishedPages lists every published page, used for the sitemap.
func (s *PublicService) PublishedPages(ctx context.Context) ([]store.Page, error) {
	pages, _, err := s.Queries.ListPages(ctx, store.PageFilter{Status: model.StatusPublished})
	return pages, err
}

// Projects lists published portfolio projects.
func (s *PublicService) Projects(ctx context.Context, q ProjectQuery) (ListResult[PublicProject], error) {
	q.ListParams = q.Normalize()
	key := struct {
		ProjectQuery
		Public bool
	}{q, true}
	return cachedList(ctx, s.Deps, EntityProjects, key, q.ListParams, func() ([]PublicProject, int64, error) {
		rows, total, err := s.Queries.ListProjects(ctx, store.ProjectFilter{
			Status:      model.StatusPublished,
			County:      q.County,
			ServiceSlug: q.ServiceSlug,
			Search:      q.Search,
			Window:      q.storePage(),
		})
		if err != nil {
			return nil, 0, err
		}
		items := make([]PublicProject, len(rows))
		for i, p := range rows {
			items[i] = newPublicProject(p)
		}
		return items, total, nil
	})
}

// Project returns a published project by slug.
func (s *PublicService) Project(ctx context.Context, slug string) (PublicProject, error) {
	p, err := s.Queries.GetProjectBySlug(ctx, slug)
	if err != nil {
		return PublicProject{}, translate(err, "project")
	}
	if p.Status != model.StatusPublished {
		return PublicProject{}, fmt.Errorf("project %q: %w", slug, model.ErrNotFound)
	}
	return newPublicProject(p), nil
}

// Testimonials returns up to limit published testimonials, newest first.
func (s *PublicService) Testimonials(ctx context.Context, limit int) ([]store.Testimonial, error) {
	if limit <= 0 {
		limit = defaultTestimonials
	}
	return s.testimonials(ctx, "", limit)
}

func (s *PublicService) testimonials(ctx context.Context, serviceSlug string, limit int) ([]store.Testimonial, error) {
	published := true
	res, err := cachedList(ctx, s.Deps, EntityTestimonials,
		struct {
			Service string
			Limit   int
			Public  bool
		}{serviceSlug, limit, true},
		ListParams{Page: 1, PerPage: limit},
		func() ([]store.Testimonial, int64, error) {
			return s.Queries.ListTestimonials(ctx, store.TestimonialFilter{
				Publish:     &published,
				ServiceSlug: serviceSlug,
				Window:      store.Window{Limit: limit},
			})
		})
	return res.Items, err
}

// ActiveTheme returns the active preset, or DefaultTheme when none is active.
func (s *PublicService) ActiveTheme(ctx context.Context) (store.Theme, error) {
	return cache.Cached(ctx, s.Lists, EntityThemes, "active", func() (store.Theme, error) {
		t, err := s.Queries.GetActiveTheme(ctx)
		if isNotFound(err) {
			return DefaultTheme, nil
		}
		return t, err
	})
}

// Services lists the catalog services.
func (s *PublicService) Services() []marketing.Service {
	return s.Catalog.Services
}

// Areas lists the catalog service areas.
func (s *PublicService) Areas() []marketing.Area {
	return s.Catalog.Areas
}

// Pricing lists the catalog pricing tiers.
func (s *PublicService) Pricing() []marketing.PricingTier {
	return s.Catalog.Pricing
}

// Service joins a catalog service with its published projects and testimonials.
func (s *PublicService) Service(ctx context.Context, slug string) (ServiceView, error) {
	svc, ok := s.Catalog.Service(slug)
	if !ok {
		return ServiceView{}, fmt.Errorf("service %q: %w", slug, model.ErrNotFound)
	}
	projects, err := s.Projects(ctx, ProjectQuery{ListParams: ListParams{PerPage: showcaseLimit}, ServiceSlug: slug})
	if err != nil {
		return ServiceView{}, err
	}
	testimonials, err := s.testimonials(ctx, slug, showcaseLimit)
	if err != nil {
		return ServiceView{}, err
	}
	return ServiceView{Service: svc, Projects: projects.Items, Testimonials: testimonials}, nil
}

// ServiceArea joins a service area with published projects in its county.
// Testimonials are matched on the county or one of its towns.
func (s *PublicService) ServiceArea(ctx context.Context, slug string) (AreaView, error) {
	area, ok := s.Catalog.Area(slug)
	if !ok {
		return AreaView{}, fmt.Errorf("service area %q: %w", slug, model.ErrNotFound)
	}
	projects, err := s.Projects(ctx, ProjectQuery{ListParams: ListParams{PerPage: showcaseLimit}, County: area.County})
	if err != nil {
		return AreaView{}, err
	}
	all, err := s.testimonials(ctx, "", 50)
	if err != nil {
		return AreaView{}, err
	}

	local := []store.Testimonial{}
	for _, t := range all {
		if mentionsArea(t.Location, area) {
			local = append(local, t)
		}
		if len(local) == showcaseLimit {
			break
		}
	}
	return AreaView{Area: area, Services: s.Catalog.Services, Projects: projects.Items, Testimonials: local}, nil
}

func mentionsArea(location string, a marketing.Area) bool {
	loc := strings.ToLower(location)
	if loc == "" {
		return false
	}
	if strings.Contains(loc, strings.ToLower(a.County)) {
		return true
	}
	for _, town := range a.Towns {
		if strings.Contains(loc, strings.ToLower(town)) {
			return true
		}
	}
	return false
}

// ResolveRedirect returns the target for path when an enabled rule matches.
func (s *PublicService) ResolveRedirect(ctx context.Context, path string) (Redirection, bool, error) {
	r, ok, err := s.Redirects.Resolve(ctx, path)
	if err != nil || !ok {
		return Redirection{}, false, err
	}
	return Redirection{To: r.ToPath, Code: r.Code}, true, nil
}
