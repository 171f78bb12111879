// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/util"
)

// TestimonialFilter narrows TestimonialService.List.
type TestimonialFilter struct {
	ListParams
	Publish     *bool  `json:"publish,omitempty"`
	ServiceSlug string `json:"service_slug,omitempty"`
}

type TestimonialInput struct {
	AuthorName  string `json:"author_name"`
	Location    string `json:"location"`
	Quote       string `json:"quote"`
	Rating      int    `json:"rating"`
	ServiceSlug string `json:"service_slug"`
	Publish     bool   `json:"publish"`
}

type TestimonialPatch struct {
	AuthorName  *string `json:"author_name"`
	Location    *string `json:"location"`
	Quote       *string `json:"quote"`
	Rating      *int    `json:"rating"`
	ServiceSlug *string `json:"service_slug"`
	Publish     *bool   `json:"publish"`
}

// TestimonialService manages customer testimonials.
type TestimonialService struct {
	Deps
}

var _ Resource[store.Testimonial, TestimonialFilter, TestimonialInput, TestimonialPatch] = (*TestimonialService)(nil)

func (s *TestimonialService) List(ctx context.Context, f TestimonialFilter) (ListResult[store.Testimonial], error) {
	f.ListParams = f.Normalize()
	return cachedList(ctx, s.Deps, EntityTestimonials, f, f.ListParams, func() ([]store.Testimonial, int64, error) {
		return s.Queries.ListTestimonials(ctx, store.TestimonialFilter{
			Publish:     f.Publish,
			ServiceSlug: f.ServiceSlug,
			Search:      f.Search,
			Window:      f.storePage(),
		})
	})
}

func (s *TestimonialService) Get(ctx context.Context, id int64) (store.Testimonial, error) {
	t, err := s.Queries.GetTestimonialByID(ctx, id)
	return t, translate(err, "testimonial")
}

func (s *TestimonialService) Create(ctx context.Context, in TestimonialInput) (store.Testimonial, error) {
	t := store.Testimonial{
		AuthorName:  strings.TrimSpace(in.AuthorName),
		Location:    strings.TrimSpace(in.Location),
		Quote:       strings.TrimSpace(in.Quote),
		Rating:      in.Rating,
		ServiceSlug: in.ServiceSlug,
		Publish:     in.Publish,
	}
	if err := validateTestimonial(t); err != nil {
		return store.Testimonial{}, err
	}
	created, err := s.Queries.CreateTestimonial(ctx, t)
	if err != nil {
		return store.Testimonial{}, fmt.Errorf("creating testimonial: %w", err)
	}
	s.invalidate(ctx, EntityTestimonials)
	return created, nil
}

func (s *TestimonialService) Update(ctx context.Context, id int64, patch TestimonialPatch) (store.Testimonial, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return store.Testimonial{}, err
	}
	set(&t.AuthorName, patch.AuthorName)
	set(&t.Location, patch.Location)
	set(&t.Quote, patch.Quote)
	set(&t.Rating, patch.Rating)
	set(&t.ServiceSlug, patch.ServiceSlug)
	set(&t.Publish, patch.Publish)
	if err := validateTestimonial(t); err != nil {
		return store.Testimonial{}, err
	}

	updated, err := s.Queries.UpdateTestimonial(ctx, t)
	if err != nil {
		return store.Testimonial{}, translate(err, "updating testimonial")
	}
	s.invalidate(ctx, EntityTestimonials)
	return updated, nil
}

func (s *TestimonialService) Delete(ctx context.Context, id int64) error {
	if err := s.Queries.DeleteTestimonial(ctx, id); err != nil {
		return translate(err, "deleting testimonial")
	}
	s.invalidate(ctx, EntityTestimonials)
	return nil
}

// TogglePublish flips the publish flag.
func (s *TestimonialService) TogglePublish(ctx context.Context, id int64) (store.Testimonial, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return store.Testimonial{}, err
	}
	publish := !t.Publish
	return s.Update(ctx, id, TestimonialPatch{Publish: &publish})
}

func validateTestimonial(t store.Testimonial) error {
	c := newChecker()
	c.required("author_name", t.AuthorName)
	c.required("quote", t.Quote)
	c.maxLen("quote", t.Quote, 2000)
	if t.Rating < 1 || t.Rating > 5 {
		c.Add("rating", "rating must be between 1 and 5")
	}
	if t.ServiceSlug != "" && !util.IsValidSlug(t.ServiceSlug) {
		c.Add("service_slug", "invalid service slug")
	}
	return c.OrNil()
}

// ProjectFilter narrows ProjectService.List.
type ProjectFilter struct {
	ListParams
	Status      string `json:"status,omitempty"`
	Stage       string `json:"stage,omitempty"`
	County      string `json:"county,omitempty"`
	ServiceSlug string `json:"service_slug,omitempty"`
}

type ProjectInput struct {
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	ClientName     string `json:"client_name"`
	County         string `json:"county"`
	ServiceSlug    string `json:"service_slug"`
	Acreage        string `json:"acreage"`
	Description    string `json:"description"`
	BeforeImageURL string `json:"before_image_url"`
	AfterImageURL  string `json:"after_image_url"`
	Stage          string `json:"stage"`
	Status         string `json:"status"`
	LeadID         *int64 `json:"lead_id"`
}

type ProjectPatch struct {
	Title          *string `json:"title"`
	Slug           *string `json:"slug"`
	ClientName     *string `json:"client_name"`
	County         *string `json:"county"`
	ServiceSlug    *string `json:"service_slug"`
	Acreage        *string `json:"acreage"`
	Description    *string `json:"description"`
	BeforeImageURL *string `json:"before_image_url"`
	AfterImageURL  *string `json:"after_image_url"`
	Stage          *string `json:"stage"`
	Status         *string `json:"status"`
}

// ProjectService manages CRM projects, which double as the public portfolio.
type ProjectService struct {
	Deps
}

var _ Resource[store.Project, ProjectFilter, ProjectInput, ProjectPatch] = (*ProjectService)(nil)

func (s *ProjectService) List(ctx context.Context, f ProjectFilter) (ListResult[store.Project], error) {
	f.ListParams = f.Normalize()
	return cachedList(ctx, s.Deps, EntityProjects, f, f.ListParams, func() ([]store.Project, int64, error) {
		return s.Queries.ListProjects(ctx, store.ProjectFilter{
			Status:      f.Status,
			Stage:       f.Stage,
			County:      f.County,
			ServiceSlug: f.ServiceSlug,
			Search:      f.Search,
			Window:      f.storePage(),
		})
	})
}

func (s *ProjectService) Get(ctx context.Context, id int64) (store.Project, error) {
	p, err := s.Queries.GetProjectByID(ctx, id)
	return p, translate(err, "project")
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (store.Project, error) {
	p := store.Project{
		Title:          strings.TrimSpace(in.Title),
		Slug:           slugOr(in.Slug, in.Title),
		ClientName:     in.ClientName,
		County:         strings.TrimSpace(in.County),
		ServiceSlug:    in.ServiceSlug,
		Acreage:        in.Acreage,
		Description:    in.Description,
		BeforeImageURL: in.BeforeImageURL,
		AfterImageURL:  in.AfterImageURL,
		Stage:          in.Stage,
		Status:         in.Status,
		LeadID:         in.LeadID,
	}
	if p.Stage == "" {
		p.Stage = model.StagePlanned
	}
	if p.Status == "" {
		p.Status = model.StatusDraft
	}
	if err := s.validate(ctx, &p); err != nil {
		return store.Project{}, err
	}
	stampCompleted(&p)

	created, err := s.Queries.CreateProject(ctx, p)
	if err != nil {
		return store.Project{}, fmt.Errorf("creating project: %w", err)
	}
	s.invalidate(ctx, EntityProjects)
	return created, nil
}

func (s *ProjectService) Update(ctx context.Context, id int64, patch ProjectPatch) (store.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return store.Project{}, err
	}
	set(&p.Title, patch.Title)
	set(&p.Slug, patch.Slug)
	set(&p.ClientName, patch.ClientName)
	set(&p.County, patch.County)
	set(&p.ServiceSlug, patch.ServiceSlug)
	set(&p.Acreage, patch.Acreage)
	set(&p.Description, patch.Description)
	set(&p.BeforeImageURL, patch.BeforeImageURL)
	set(&p.AfterImageURL, patch.AfterImageURL)
	set(&p.Stage, patch.Stage)
	set(&p.Status, patch.Status)
	if err := s.validate(ctx, &p); err != nil {
		return store.Project{}, err
	}
	stampCompleted(&p)

	updated, err := s.Queries.UpdateProject(ctx, p)
	if err != nil {
		return store.Project{}, translate(err, "updating project")
	}
	s.invalidate(ctx, EntityProjects)
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.Queries.DeleteProject(ctx, id); err != nil {
		return translate(err, "deleting project")
	}
	s.invalidate(ctx, EntityProjects)
	return nil
}

func (s *ProjectService) TogglePublish(ctx context.Context, id int64) (store.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return store.Project{}, err
	}
	status := flip(p.Status)
	return s.Update(ctx, id, ProjectPatch{Status: &status})
}

func (s *ProjectService) validate(ctx context.Context, p *store.Project) error {
	c := newChecker()
	c.required("title", p.Title)
	c.slug(p.Slug)
	c.required("county", p.County)
	c.status(p.Status)
	if !model.ValidStage(p.Stage) {
		c.Add("stage", "unknown project stage")
	}
	if err := c.unique(ctx, "slug", p.Slug, p.ID, s.Queries.ProjectSlugTaken); err != nil {
		return err
	}
	return c.OrNil()
}

// stampCompleted records when a project first reaches the completed stage.
func stampCompleted(p *store.Project) {
	if p.Stage == model.StageCompleted && p.CompletedAt == nil {
		t := time.Now().UTC()
		p.CompletedAt = &t
	}
}
