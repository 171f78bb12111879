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
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

const excerptLength = 200

// PostFilter narrows PostService.List.
type PostFilter struct {
	ListParams
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

type PostInput struct {
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	Category      string     `json:"category"`
	Tags          string     `json:"tags"`
	CoverImageURL string     `json:"cover_image_url"`
	AuthorName    string     `json:"author_name"`
	Status        string     `json:"status"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
}

type PostPatch struct {
	Title         *string    `json:"title"`
	Slug          *string    `json:"slug"`
	Excerpt       *string    `json:"excerpt"`
	Content       *string    `json:"content"`
	Category      *string    `json:"category"`
	Tags          *string    `json:"tags"`
	CoverImageURL *string    `json:"cover_image_url"`
	AuthorName    *string    `json:"author_name"`
	Status        *string    `json:"status"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
	ClearSchedule bool       `json:"clear_schedule"`
}

// PostService manages blog posts.
type PostService struct {
	Deps
}

var (
	_ Resource[store.Post, PostFilter, PostInput, PostPatch] = (*PostService)(nil)
	_ Publisher[store.Post]                                  = (*PostService)(nil)
)

func (s *PostService) List(ctx context.Context, f PostFilter) (ListResult[store.Post], error) {
	f.ListParams = f.Normalize()
	return cachedList(ctx, s.Deps, EntityPosts, f, f.ListParams, func() ([]store.Post, int64, error) {
		return s.Queries.ListPosts(ctx, store.PostFilter{
			Status:   f.Status,
			Category: f.Category,
			Tag:      f.Tag,
			Search:   f.Search,
			Window:   f.storePage(),
		})
	})
}

func (s *PostService) Get(ctx context.Context, id int64) (store.Post, error) {
	p, err := s.Queries.GetPostByID(ctx, id)
	return p, translate(err, "post")
}

func (s *PostService) Create(ctx context.Context, in PostInput) (store.Post, error) {
	p := store.Post{
		Title:         in.Title,
		Slug:          slugOr(in.Slug, in.Title),
		Excerpt:       in.Excerpt,
		Content:       in.Content,
		Category:      strings.TrimSpace(in.Category),
		Tags:          normalizeTags(in.Tags),
		CoverImageURL: in.CoverImageURL,
		AuthorName:    in.AuthorName,
		Status:        in.Status,
		ScheduledAt:   in.ScheduledAt,
	}
	if p.Status == "" {
		p.Status = model.StatusDraft
	}
	if err := s.validate(ctx, &p); err != nil {
		return store.Post{}, err
	}
	if p.Excerpt == "" {
		p.Excerpt = markdown.Excerpt(p.Content, excerptLength)
	}
	stampPublished(p.Status, &p.PublishedAt)
	settleSchedule(p.Status, false, &p.ScheduledAt)

	created, err := s.Queries.CreatePost(ctx, p)
	if err != nil {
		return store.Post{}, fmt.Errorf("creating post: %w", err)
	}
	s.invalidate(ctx, EntityPosts)
	return created, nil
}

func (s *PostService) Update(ctx context.Context, id int64, patch PostPatch) (store.Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return store.Post{}, err
	}
	set(&p.Title, patch.Title)
	set(&p.Slug, patch.Slug)
	set(&p.Excerpt, patch.Excerpt)
	set(&p.Content, patch.Content)
	set(&p.Category, patch.Category)
	set(&p.CoverImageURL, patch.CoverImageURL)
	set(&p.AuthorName, patch.AuthorName)
	set(&p.Status, patch.Status)
	if patch.Tags != nil {
		p.Tags = normalizeTags(*patch.Tags)
	}
	if patch.ScheduledAt != nil {
		p.ScheduledAt = patch.ScheduledAt
	}
	p.Category = strings.TrimSpace(p.Category)

	if err := s.validate(ctx, &p); err != nil {
		return store.Post{}, err
	}
	stampPublished(p.Status, &p.PublishedAt)
	settleSchedule(p.Status, patch.ClearSchedule, &p.ScheduledAt)

	updated, err := s.Queries.UpdatePost(ctx, p)
	if err != nil {
		return store.Post{}, translate(err, "updating post")
	}
	s.invalidate(ctx, EntityPosts)
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.Queries.DeletePost(ctx, id); err != nil {
		return translate(err, "deleting post")
	}
	s.invalidate(ctx, EntityPosts)
	return nil
}

func (s *PostService) TogglePublish(ctx context.Context, id int64) (store.Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return store.Post{}, err
	}
	status := flip(p.Status)
	return s.Update(ctx, id, PostPatch{Status: &status})
}

// Categories lists categories in use by published posts.
func (s *PostService) Categories(ctx context.Context) ([]string, error) {
	return cache.Cached(ctx, s.Lists, EntityPosts, "categories", func() ([]string, error) {
		return s.Queries.ListPostCategories(ctx)
	})
}

// PublishDue publishes drafts whose schedule has passed.
func (s *PostService) PublishDue(ctx context.Context, at time.Time) (int, error) {
	due, err := s.Queries.ListDuePosts(ctx, at)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range due {
		status := model.StatusPublished
		if _, err := s.Update(ctx, p.ID, PostPatch{Status: &status}); err != nil {
			s.logger().Error("failed to publish scheduled post", "post_id", p.ID, "error", err)
			continue
		}
		n++
	}
	return n, nil
}

func (s *PostService) validate(ctx context.Context, p *store.Post) error {
	c := newChecker()
	c.required("title", p.Title)
	c.maxLen("title", p.Title, 200)
	c.slug(p.Slug)
	c.required("content", p.Content)
	c.status(p.Status)
	c.maxLen("excerpt", p.Excerpt, 500)
	if err := c.unique(ctx, "slug", p.Slug, p.ID, s.Queries.PostSlugTaken); err != nil {
		return err
	}
	return c.OrNil()
}

// normalizeTags trims each comma-separated tag and drops empties.
func normalizeTags(tags string) string {
	parts := strings.Split(tags, ",")
	out := parts[:0]
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}
