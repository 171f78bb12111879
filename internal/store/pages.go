// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

// PageFilter narrows ListPages. Zero fields are ignored.
type PageFilter struct {
	Status string
	Search string
	Window
}

func (q *Queries) ListPages(ctx context.Context, f PageFilter) ([]Page, int64, error) {
	var w where
	w.eq("status", f.Status)
	w.search(f.Search, "title", "slug", "content")
	return selectPage[Page](ctx, q, "pages", w, "id DESC", f.Window)
}

func (q *Queries) GetPageByID(ctx context.Context, id int64) (Page, error) {
	return getByID[Page](ctx, q, "pages", id)
}

func (q *Queries) GetPageBySlug(ctx context.Context, slug string) (Page, error) {
	return getBy[Page](ctx, q, "pages", "slug", slug)
}

func (q *Queries) PageSlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	return slugTaken(ctx, q, "pages", slug, exceptID)
}

func (q *Queries) CreatePage(ctx context.Context, p Page) (Page, error) {
	p.CreatedAt, p.UpdatedAt = now(), now()
	return insert[Page](ctx, q, "pages", `
		INSERT INTO pages (title, slug, content, template_id, block_ids, meta_title, meta_description,
			status, published_at, scheduled_at, created_at, updated_at)
		VALUES (:title, :slug, :content, :template_id, :block_ids, :meta_title, :meta_description,
			:status, :published_at, :scheduled_at, :created_at, :updated_at)`, p)
}

func (q *Queries) UpdatePage(ctx context.Context, p Page) (Page, error) {
	p.UpdatedAt = now()
	return update[Page](ctx, q, "pages", `
		UPDATE pages SET title = :title, slug = :slug, content = :content, template_id = :template_id,
			block_ids = :block_ids, meta_title = :meta_title, meta_description = :meta_description,
			status = :status, published_at = :published_at, scheduled_at = :scheduled_at,
			updated_at = :updated_at
		WHERE id = :id`, p.ID, p)
}

func (q *Queries) DeletePage(ctx context.Context, id int64) error {
	return deleteByID(ctx, q, "pages", id)
}

// ListDuePages returns drafts whose scheduled time has passed.
func (q *Queries) ListDuePages(ctx context.Context, at time.Time) ([]Page, error) {
	var pages []Page
	err := q.db.SelectContext(ctx, &pages,
		`SELECT * FROM pages WHERE status = 'draft' AND scheduled_at IS NOT NULL AND scheduled_at <= ? ORDER BY id`, at.UTC())
	if err != nil {
		return nil, fmt.Errorf("listing due pages: %w", err)
	}
	return pages, nil
}

func (q *Queries) CreatePageVersion(ctx context.Context, v PageVersion) (PageVersion, error) {
	v.CreatedAt = now()
	return insert[PageVersion](ctx, q, "page_versions", `
		INSERT INTO page_versions (page_id, title, content, status, changed_by, created_at)
		VALUES (:page_id, :title, :content, :status, :changed_by, :created_at)`, v)
}

func (q *Queries) ListPageVersions(ctx context.Context, pageID int64) ([]PageVersion, error) {
	versions := []PageVersion{}
	err := q.db.SelectContext(ctx, &versions,
		`SELECT * FROM page_versions WHERE page_id = ? ORDER BY id DESC`, pageID)
	if err != nil {
		return nil, fmt.Errorf("listing page versions: %w", err)
	}
	return versions, nil
}

func (q *Queries) GetPageVersion(ctx context.Context, pageID, versionID int64) (PageVersion, error) {
	var v PageVersion
	err := q.db.GetContext(ctx, &v,
		`SELECT * FROM page_versions WHERE id = ? AND page_id = ?`, versionID, pageID)
	return v, err
}

// TemplateFilter narrows ListTemplates.
type TemplateFilter struct {
	Status string
	Search string
	Window
}

func (q *Queries) ListTemplates(ctx context.Context, f TemplateFilter) ([]Template, int64, error) {
	var w where
	w.eq("status", f.Status)
	w.search(f.Search, "name", "slug", "description")
	return selectPage[Template](ctx, q, "templates", w, "id DESC", f.Window)
}

func (q *Queries) GetTemplateByID(ctx context.Context, id int64) (Template, error) {
	return getByID[Template](ctx, q, "templates", id)
}

func (q *Queries) TemplateSlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	return slugTaken(ctx, q, "templates", slug, exceptID)
}

func (q *Queries) CreateTemplate(ctx context.Context, t Template) (Template, error) {
	t.CreatedAt, t.UpdatedAt = now(), now()
	return insert[Template](ctx, q, "templates", `
		INSERT INTO templates (name, slug, description, layout, status, created_at, updated_at)
		VALUES (:name, :slug, :description, :layout, :status, :created_at, :updated_at)`, t)
}

func (q *Queries) UpdateTemplate(ctx context.Context, t Template) (Template, error) {
	t.UpdatedAt = now()
	return update[Template](ctx, q, "templates", `
		UPDATE templates SET name = :name, slug = :slug, description = :description, layout = :layout,
			status = :status, updated_at = :updated_at
		WHERE id = :id`, t.ID, t)
}

func (q *Queries) DeleteTemplate(ctx context.Context, id int64) error {
	return deleteByID(ctx, q, "templates", id)
}

// BlockFilter narrows ListBlocks.
type BlockFilter struct {
	Status string
	Type   string
	Search string
	Window
}

func (q *Queries) ListBlocks(ctx context.Context, f BlockFilter) ([]Block, int64, error) {
	var w where
	w.eq("status", f.Status)
	w.eq("type", f.Type)
	w.search(f.Search, "name", "content")
	return selectPage[Block](ctx, q, "blocks", w, "id DESC", f.Window)
}

func (q *Queries) GetBlockByID(ctx context.Context, id int64) (Block, error) {
	return getByID[Block](ctx, q, "blocks", id)
}

func (q *Queries) CreateBlock(ctx context.Context, b Block) (Block, error) {
	b.CreatedAt, b.UpdatedAt = now(), now()
	return insert[Block](ctx, q, "blocks", `
		INSERT INTO blocks (name, type, content, status, created_at, updated_at)
		VALUES (:name, :type, :content, :status, :created_at, :updated_at)`, b)
}

func (q *Queries) UpdateBlock(ctx context.Context, b Block) (Block, error) {
	b.UpdatedAt = now()
	return update[Block](ctx, q, "blocks", `
		UPDATE blocks SET name = :name, type = :type, content = :content, status = :status,
			updated_at = :updated_at
		WHERE id = :id`, b.ID, b)
}

func (q *Queries) DeleteBlock(ctx context.Context, id int64) error {
	return deleteByID(ctx, q, "blocks", id)
}
