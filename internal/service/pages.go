// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

// PageFilter narrows PageService.List.
type PageFilter struct {
	ListParams
	Status string `json:"status,omitempty"`
}

type PageInput struct {
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	TemplateID      *int64     `json:"template_id"`
	BlockIDs        []int64    `json:"block_ids"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	Status          string     `json:"status"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
}

// PagePatch is a partial update. A TemplateID of 0 detaches the template and
// ClearSchedule drops a pending publish time.
type PagePatch struct {
	Title           *string    `json:"title"`
	Slug            *string    `json:"slug"`
	Content         *string    `json:"content"`
	TemplateID      *int64     `json:"template_id"`
	BlockIDs        *[]int64   `json:"block_ids"`
	MetaTitle       *string    `json:"meta_title"`
	MetaDescription *string    `json:"meta_description"`
	Status          *string    `json:"status"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	ClearSchedule   bool       `json:"clear_schedule"`
}

// PageService manages CMS pages and their version history.
type PageService struct {
	Deps
}

var _ Resource[store.Page, PageFilter, PageInput, PagePatch] = (*PageService)(nil)

func (s *PageService) List(ctx context.Context, f PageFilter) (ListResult[store.Page], error) {
	f.ListParams = f.Normalize()
	return cachedList(ctx, s.Deps, EntityPages, f, f.ListParams, func() ([]store.Page, int64, error) {
		return s.Queries.ListPages(ctx, store.PageFilter{Status: f.Status, Search: f.Search, Window: f.storePage()})
	})
}

func (s *PageService) Get(ctx context.Context, id int64) (store.Page, error) {
	p, err := s.Queries.GetPageByID(ctx, id)
	return p, translate(err, "page")
}

func (s *PageService) Create(ctx context.Context, in PageInput) (store.Page, error) {
	p := store.Page{
		Title:           in.Title,
		Slug:            slugOr(in.Slug, in.Title),
		Content:         in.Content,
		TemplateID:      in.TemplateID,
		BlockIDs:        in.BlockIDs,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		Status:          in.Status,
		ScheduledAt:     in.ScheduledAt,
	}
	if p.Status == "" {
		p.Status = model.StatusDraft
	}
	if err := s.validate(ctx, &p); err != nil {
		return store.Page{}, err
	}
	stampPublished(p.Status, &p.PublishedAt)
	settleSchedule(p.Status, false, &p.ScheduledAt)

	created, err := s.Queries.CreatePage(ctx, p)
	if err != nil {
		return store.Page{}, fmt.Errorf("creating page: %w", err)
	}
	s.invalidate(ctx, EntityPages)
	return created, nil
}

// Update merges patch into the page, snapshotting the previous state first.
func (s *PageService) Update(ctx context.Context, id int64, patch PagePatch) (store.Page, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return store.Page{}, err
	}
	prev := p

	set(&p.Title, patch.Title)
	set(&p.Slug, patch.Slug)
	set(&p.Content, patch.Content)
	set(&p.MetaTitle, patch.MetaTitle)
	set(&p.MetaDescription, patch.MetaDescription)
	set(&p.Status, patch.Status)
	if patch.TemplateID != nil {
		p.TemplateID = patch.TemplateID
		if *patch.TemplateID == 0 {
			p.TemplateID = nil
		}
	}
	if patch.BlockIDs != nil {
		p.BlockIDs = *patch.BlockIDs
	}
	if patch.ScheduledAt != nil {
		p.ScheduledAt = patch.ScheduledAt
	}

	if err := s.validate(ctx, &p); err != nil {
		return store.Page{}, err
	}
	stampPublished(p.Status, &p.PublishedAt)
	settleSchedule(p.Status, patch.ClearSchedule, &p.ScheduledAt)
	return s.write(ctx, prev, p)
}

func (s *PageService) write(ctx context.Context, prev, next store.Page) (store.Page, error) {
	if _, err := s.Queries.CreatePageVersion(ctx, store.PageVersion{
		PageID:    prev.ID,
		Title:     prev.Title,
		Content:   prev.Content,
		Status:    prev.Status,
		ChangedBy: ActorFrom(ctx),
	}); err != nil {
		return store.Page{}, fmt.Errorf("snapshotting page: %w", err)
	}

	updated, err := s.Queries.UpdatePage(ctx, next)
	if err != nil {
		return store.Page{}, translate(err, "updating page")
	}
	s.invalidate(ctx, EntityPages)
	return updated, nil
}

func (s *PageService) Delete(ctx context.Context, id int64) error {
	if err := s.Queries.DeletePage(ctx, id); err != nil {
		return translate(err, "deleting page")
	}
	s.invalidate(ctx, EntityPages)
	return nil
}

// TogglePublish flips the page between draft and published.
func (s *PageService) TogglePublish(ctx context.Context, id int64) (store.Page, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return store.Page{}, err
	}
	status := flip(p.Status)
	return s.Update(ctx, id, PagePatch{Status: &status})
}

// Versions lists snapshots of a page, newest first.
func (s *PageService) Versions(ctx context.Context, pageID int64) ([]store.PageVersion, error) {
	if _, err := s.Get(ctx, pageID); err != nil {
		return nil, err
	}
	return s.Queries.ListPageVersions(ctx, pageID)
}

// Restore copies a version's title, content and status back onto the page.
// The current state is itself snapshotted, so restores can be undone.
func (s *PageService) Restore(ctx context.Context, pageID, versionID int64) (store.Page, error) {
	v, err := s.Queries.GetPageVersion(ctx, pageID, versionID)
	if err != nil {
		return store.Page{}, translate(err, "page version")
	}
	return s.Update(ctx, pageID, PagePatch{Title: &v.Title, Content: &v.Content, Status: &v.Status})
}

// PublishDue publishes pages whose schedule has passed.
func (s *PageService) PublishDue(ctx context.Context, at time.Time) (int, error) {
	due, err := s.Queries.ListDuePages(ctx, at)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range due {
		status := model.StatusPublished
		if _, err := s.Update(ctx, p.ID, PagePatch{Status: &status}); err != nil {
			s.logger().Error("failed to publish scheduled page", "page_id", p.ID, "error", err)
			continue
		}
		n++
	}
	return n, nil
}

func (s *PageService) validate(ctx context.Context, p *store.Page) error {
	c := newChecker()
	c.required("title", p.Title)
	c.maxLen("title", p.Title, 200)
	c.slug(p.Slug)
	c.status(p.Status)
	c.maxLen("meta_description", p.MetaDescription, 320)

	if p.TemplateID != nil {
		if _, err := s.Queries.GetTemplateByID(ctx, *p.TemplateID); err != nil {
			c.Add("template_id", "template does not exist")
		}
	}
	for _, id := range p.BlockIDs {
		if _, err := s.Queries.GetBlockByID(ctx, id); err != nil {
			c.Add("block_ids", fmt.Sprintf("block %d does not exist", id))
		}
	}
	if err := c.unique(ctx, "slug", p.Slug, p.ID, s.Queries.PageSlugTaken); err != nil {
		return err
	}
	return c.OrNil()
}

// TemplateFilter narrows TemplateService.List.
type TemplateFilter struct {
	ListParams
	Status string `json:"status,omitempty"`
}

type TemplateInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Layout      string `json:"layout"`
	Status      string `json:"status"`
}

type TemplatePatch struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Layout      *string `json:"layout"`
	Status      *string `json:"status"`
}

// TemplateService manages page templates.
type TemplateService struct {
	Deps
}

var _ Resource[store.Template, TemplateFilter, TemplateInput, TemplatePatch] = (*TemplateService)(nil)

func (s *TemplateService) List(ctx context.Context, f TemplateFilter) (ListResult[store.Template], error) {
	f.ListParams = f.Normalize()
	return cachedList(ctx, s.Deps, EntityTemplates, f, f.ListParams, func() ([]store.Template, int64, error) {
		return s.Queries.ListTemplates(ctx, store.TemplateFilter{Status: f.Status, Search: f.Search, Window: f.storePage()})
	})
}

func (s *TemplateService) Get(ctx context.Context, id int64) (store.Template, error) {
	t, err := s.Queries.GetTemplateByID(ctx, id)
	return t, translate(err, "template")
}

func (s *TemplateService) Create(ctx context.Context, in TemplateInput) (store.Template, error) {
	t := store.Template{
		Name:        in.Name,
		Slug:        slugOr(in.Slug, in.Name),
		Description: in.Description,
		Layout:      in.Layout,
		Status:      in.Status,
	}
	if t.Status == "" {
		t.Status = model.StatusDraft
	}
	if err := s.validate(ctx, &t); err != nil {
		return store.Template{}, err
	}
	created, err := s.Queries.CreateTemplate(ctx, t)
	if err != nil {
		return store.Template{}, fmt.Errorf("creating template: %w", err)
	}
	s.invalidate(ctx, EntityTemplates)
	return created, nil
}

func (s *TemplateService) Update(ctx context.Context, id int64, patch TemplatePatch) (store.Template, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return store.Template{}, err
	}
	set(&t.Name, patch.Name)
	set(&t.Slug, patch.Slug)
	set(&t.Description, patch.Description)
	set(&t.Layout, patch.Layout)
	set(&t.Status, patch.Status)
	if err := s.validate(ctx, &t); err != nil {
		return store.Template{}, err
	}

	updated, err := s.Queries.UpdateTemplate(ctx, t)
	if err != nil {
		return store.Template{}, translate(err, "updating template")
	}
	s.invalidate(ctx, EntityTemplates)
	s.invalidate(ctx, EntityPages)
	return updated, nil
}

// Delete removes a template. Pages using it fall back to no template.
func (s *TemplateService) Delete(ctx context.Context, id int64) error {
	if err := s.Queries.DeleteTemplate(ctx, id); err != nil {
		return translate(err, "deleting template")
	}
	s.invalidate(ctx, EntityTemplates)
	s.invalidate(ctx, EntityPages)
	return nil
}

func (s *TemplateService) TogglePublish(ctx context.Context, id int64) (store.Template, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return store.Template{}, err
	}
	status := flip(t.Status)
	return s.Update(ctx, id, TemplatePatch{Status: &status})
}

func (s *TemplateService) validate(ctx context.Context, t *store.Template) error {
	c := newChecker()
	c.required("name", t.Name)
	c.slug(t.Slug)
	c.required("layout", t.Layout)
	c.status(t.Status)
	if err := c.unique(ctx, "slug", t.Slug, t.ID, s.Queries.TemplateSlugTaken); err != nil {
		return err
	}
	return c.OrNil()
}

// BlockFilter narrows BlockService.List.
type BlockFilter struct {
	ListParams
	Status string `json:"status,omitempty"`
	Type   string `json:"type,omitempty"`
}

type BlockInput struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

type BlockPatch struct {
	Name    *string `json:"name"`
	Type    *string `json:"type"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

// BlockService manages reusable content blocks.
type BlockService struct {
	Deps
}

var _ Resource[store.Block, BlockFilter, BlockInput, BlockPatch] = (*BlockService)(nil)

func (s *BlockService) List(ctx context.Context, f BlockFilter) (ListResult[store.Block], error) {
	f.ListParams = f.Normalize()
	return cachedList(ctx, s.Deps, EntityBlocks, f, f.ListParams, func() ([]store.Block, int64, error) {
		return s.Queries.ListBlocks(ctx, store.BlockFilter{Status: f.Status, Type: f.Type, Search: f.Search, Window: f.storePage()})
	})
}

func (s *BlockService) Get(ctx context.Context, id int64) (store.Block, error) {
	b, err := s.Queries.GetBlockByID(ctx, id)
	return b, translate(err, "block")
}

func (s *BlockService) Create(ctx context.Context, in BlockInput) (store.Block, error) {
	b := store.Block{Name: in.Name, Type: in.Type, Content: in.Content, Status: in.Status}
	if b.Status == "" {
		b.Status = model.StatusDraft
	}
	if err := validateBlock(b); err != nil {
		return store.Block{}, err
	}
	created, err := s.Queries.CreateBlock(ctx, b)
	if err != nil {
		return store.Block{}, fmt.Errorf("creating block: %w", err)
	}
	s.invalidate(ctx, EntityBlocks)
	return created, nil
}

func (s *BlockService) Update(ctx context.Context, id int64, patch BlockPatch) (store.Block, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return store.Block{}, err
	}
	set(&b.Name, patch.Name)
	set(&b.Type, patch.Type)
	set(&b.Content, patch.Content)
	set(&b.Status, patch.Status)
	if err := validateBlock(b); err != nil {
		return store.Block{}, err
	}

	updated, err := s.Queries.UpdateBlock(ctx, b)
	if err != nil {
		return store.Block{}, translate(err, "updating block")
	}
	s.invalidate(ctx, EntityBlocks)
	s.invalidate(ctx, EntityPages)
	return updated, nil
}

func (s *BlockService) Delete(ctx context.Context, id int64) error {
	if err := s.Queries.DeleteBlock(ctx, id); err != nil {
		return translate(err, "deleting block")
	}
	s.invalidate(ctx, EntityBlocks)
	s.invalidate(ctx, EntityPages)
	return nil
}

func (s *BlockService) TogglePublish(ctx context.Context, id int64) (store.Block, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return store.Block{}, err
	}
	status := flip(b.Status)
	return s.Update(ctx, id, BlockPatch{Status: &status})
}

func validateBlock(b store.Block) error {
	c := newChecker()
	c.required("name", b.Name)
	if c.required("type", b.Type) && !model.ValidBlockType(b.Type) {
		c.Add("type", "unknown block type")
	}
	c.validJSON("content", b.Content)
	c.status(b.Status)
	return c.OrNil()
}

// flip returns the opposite content status.
func flip(status string) string {
	if status == model.StatusPublished {
		return model.StatusDraft
	}
	return model.StatusPublished
}

// settleSchedule drops the pending publish time once the item is published,
// so unpublishing it later does not let the scheduler bring it back.
func settleSchedule(status string, clear bool, at **time.Time) {
	if clear || status == model.StatusPublished {
		*at = nil
	}
}

// stampPublished sets the first-publish time.
func stampPublished(status string, at **time.Time) {
	if status == model.StatusPublished && *at == nil {
		t := time.Now().UTC()
		*at = &t
	}
}
