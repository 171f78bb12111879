// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
)

// TestimonialFilter narrows ListTestimonials.
type TestimonialFilter struct {
	Publish     *bool
	ServiceSlug string
	Search      string
	Window
}

func (q *Queries) ListTestimonials(ctx context.Context, f TestimonialFilter) ([]Testimonial, int64, error) {
	var w where
	w.eqBool("publish", f.Publish)
	w.eq("service_slug", f.ServiceSlug)
	w.search(f.Search, "author_name", "location", "quote")
	return selectPage[Testimonial](ctx, q, "testimonials", w, "id DESC", f.Window)
}

func (q *Queries) GetTestimonialByID(ctx context.Context, id int64) (Testimonial, error) {
	return getByID[Testimonial](ctx, q, "testimonials", id)
}

func (q *Queries) CreateTestimonial(ctx context.Context, t Testimonial) (Testimonial, error) {
	t.CreatedAt, t.UpdatedAt = now(), now()
	return insert[Testimonial](ctx, q, "testimonials", `
		INSERT INTO testimonials (author_name, location, quote, rating, service_slug, publish, created_at, updated_at)
		VALUES (:author_name, :location, :quote, :rating, :service_slug, :publish, :created_at, :updated_at)`, t)
}

func (q *Queries) UpdateTestimonial(ctx context.Context, t Testimonial) (Testimonial, error) {
	t.UpdatedAt = now()
	return update[Testimonial](ctx, q, "testimonials", `
		UPDATE testimonials SET author_name = :author_name, location = :location, quote = :quote,
			rating = :rating, service_slug = :service_slug, publish = :publish, updated_at = :updated_at
		WHERE id = :id`, t.ID, t)
}

func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) error {
	return deleteByID(ctx, q, "testimonials", id)
}

// ProjectFilter narrows ListProjects.
type ProjectFilter struct {
	Status      string
	Stage       string
	County      string
	ServiceSlug string
	Search      string
	Window
}

func (q *Queries) ListProjects(ctx context.Context, f ProjectFilter) ([]Project, int64, error) {
	var w where
	w.eq("status", f.Status)
	w.eq("stage", f.Stage)
	w.eq("county", f.County)
	w.eq("service_slug", f.ServiceSlug)
	w.search(f.Search, "title", "client_name", "description")
	return selectPage[Project](ctx, q, "projects", w, "id DESC", f.Window)
}

func (q *Queries) GetProjectByID(ctx context.Context, id int64) (Project, error) {
	return getByID[Project](ctx, q, "projects", id)
}

func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (Project, error) {
	return getBy[Project](ctx, q, "projects", "slug", slug)
}

func (q *Queries) GetProjectByLead(ctx context.Context, leadID int64) (Project, error) {
	return getBy[Project](ctx, q, "projects", "lead_id", leadID)
}

func (q *Queries) ProjectSlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	return slugTaken(ctx, q, "projects", slug, exceptID)
}

func (q *Queries) CreateProject(ctx context.Context, p Project) (Project, error) {
	p.CreatedAt, p.UpdatedAt = now(), now()
	return insert[Project](ctx, q, "projects", `
		INSERT INTO projects (title, slug, client_name, county, service_slug, acreage, description,
			before_image_url, after_image_url, stage, status, lead_id, completed_at, created_at, updated_at)
		VALUES (:title, :slug, :client_name, :county, :service_slug, :acreage, :description,
			:before_image_url, :after_image_url, :stage, :status, :lead_id, :completed_at, :created_at, :updated_at)`, p)
}

func (q *Queries) UpdateProject(ctx context.Context, p Project) (Project, error) {
	p.UpdatedAt = now()
	return update[Project](ctx, q, "projects", `
		UPDATE projects SET title = :title, slug = :slug, client_name = :client_name, county = :county,
			service_slug = :service_slug, acreage = :acreage, description = :description,
			before_image_url = :before_image_url, after_image_url = :after_image_url, stage = :stage,
			status = :status, lead_id = :lead_id, completed_at = :completed_at, updated_at = :updated_at
		WHERE id = :id`, p.ID, p)
}

func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	return deleteByID(ctx, q, "projects", id)
}

// LeadFilter narrows ListLeads.
type LeadFilter struct {
	Status  string
	County  string
	Service string
	Search  string
	Window
}

func (q *Queries) ListLeads(ctx context.Context, f LeadFilter) ([]Lead, int64, error) {
	var w where
	w.eq("status", f.Status)
	w.eq("county", f.County)
	w.jsonContains("services", f.Service)
	w.search(f.Search, "name", "email", "phone", "message", "reference")
	return selectPage[Lead](ctx, q, "leads", w, "created_at DESC, id DESC", f.Window)
}

func (q *Queries) GetLeadByID(ctx context.Context, id int64) (Lead, error) {
	return getByID[Lead](ctx, q, "leads", id)
}

func (q *Queries) CreateLead(ctx context.Context, l Lead) (Lead, error) {
	l.CreatedAt, l.UpdatedAt = now(), now()
	return insert[Lead](ctx, q, "leads", `
		INSERT INTO leads (reference, name, email, phone, county, services, timeline, acreage, message,
			status, notes, ip_address, device, country, created_at, updated_at)
		VALUES (:reference, :name, :email, :phone, :county, :services, :timeline, :acreage, :message,
			:status, :notes, :ip_address, :device, :country, :created_at, :updated_at)`, l)
}

// UpdateLeadPipeline writes the staff-editable fields of a lead.
func (q *Queries) UpdateLeadPipeline(ctx context.Context, l Lead) (Lead, error) {
	l.UpdatedAt = now()
	return update[Lead](ctx, q, "leads", `
		UPDATE leads SET status = :status, notes = :notes, updated_at = :updated_at
		WHERE id = :id`, l.ID, l)
}

// LeadStatusCount is one row of CountLeadsByStatus.
type LeadStatusCount struct {
	Status string `db:"status"`
	Count  int64  `db:"n"`
}

func (q *Queries) CountLeadsByStatus(ctx context.Context) ([]LeadStatusCount, error) {
	rows := []LeadStatusCount{}
	if err := q.db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS n FROM leads GROUP BY status`); err != nil {
		return nil, fmt.Errorf("counting leads: %w", err)
	}
	return rows, nil
}
