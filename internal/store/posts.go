// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

// PostFilter narrows ListPosts. ExcludeID drops one post, used for related lists.
type PostFilter struct {
	Status    string
	Category  string
	Tag       string
	Search    string
	ExcludeID int64
	Window
}

func (q *Queries) ListPosts(ctx context.Context, f PostFilter) ([]Post, int64, error) {
	var w where
	w.eq("status", f.Status)
	w.eq("category", f.Category)
	if f.Tag != "" {
		w.raw("(',' || REPLACE(LOWER(tags), ' ', '') || ',') LIKE ? ESCAPE '\\'", "%,"+escapeLike(normalizeTag(f.Tag))+",%")
	}
	w.search(f.Search, "title", "excerpt", "content", "tags")
	if f.ExcludeID > 0 {
		w.raw("id != ?", f.ExcludeID)
	}
	order := "id DESC"
	if f.Status != "" {
		order = "COALESCE(published_at, created_at) DESC, id DESC"
	}
	return selectPage[Post](ctx, q, "posts", w, order, f.Window)
}

func normalizeTag(t string) string {
	out := make([]rune, 0, len(t))
	for _, r := range t {
		if r == ' ' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

func (q *Queries) GetPostByID(ctx context.Context, id int64) (Post, error) {
	return getByID[Post](ctx, q, "posts", id)
}

func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (Post, error) {
	return getBy[Post](ctx, q, "posts", "slug", slug)
}

func (q *Queries) PostSlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	return slugTaken(ctx, q, "posts", slug, exceptID)
}

func (q *Queries) CreatePost(ctx context.Context, p Post) (Post, error) {
	p.CreatedAt, p.UpdatedAt = now(), now()
	return insert[Post](ctx, q, "posts", `
		INSERT INTO posts (title, slug, excerpt, content, category, tags, cover_image_url, author_name,
			status, published_at, scheduled_at, created_at, updated_at)
		VALUES (:title, :slug, :excerpt, :content, :category, :tags, :cover_image_url, :author_name,
			:status, :published_at, :scheduled_at, :created_at, :updated_at)`, p)
}

func (q *Queries) UpdatePost(ctx context.Context, p Post) (Post, error) {
	p.UpdatedAt = now()
	return update[Post](ctx, q, "posts", `
		UPDATE posts SET title = :title, slug = :slug, excerpt = :excerpt, content = :content,
			category = :category, tags = :tags, cover_image_url = :cover_image_url,
			author_name = :author_name, status = :status, published_at = :published_at,
			scheduled_at = :scheduled_at, updated_at = :updated_at
		WHERE id = :id`, p.ID, p)
}

func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	return deleteByID(ctx, q, "posts", id)
}

// ListPostCategories returns distinct categories of published posts.
func (q *Queries) ListPostCategories(ctx context.Context) ([]string, error) {
	cats := []string{}
	err := q.db.SelectContext(ctx, &cats,
		`SELECT DISTINCT category FROM posts WHERE status = 'published' AND category != '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return cats, nil
}

// ListDuePosts returns drafts whose scheduled time has passed.
func (q *Queries) ListDuePosts(ctx context.Context, at time.Time) ([]Post, error) {
	var posts []Post
	err := q.db.SelectContext(ctx, &posts,
		`SELECT * FROM posts WHERE status = 'draft' AND scheduled_at IS NOT NULL AND scheduled_at <= ? ORDER BY id`, at.UTC())
	if err != nil {
		return nil, fmt.Errorf("listing due posts: %w", err)
	}
	return posts, nil
}
