// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the lifecycle rules for every BrushWhacker entity:
// validation, publish toggles, version snapshots, list caching and the
// published-only view served to visitors.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/cache"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/marketing"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

// Entity names used for cache generations and log attributes.
const (
	EntityPages        = "pages"
	EntityTemplates    = "templates"
	EntityBlocks       = "blocks"
	EntityPosts        = "posts"
	EntityRedirects    = "redirects"
	EntityThemes       = "themes"
	EntityTestimonials = "testimonials"
	EntityProjects     = "projects"
	EntityLeads        = "leads"
	EntityMedia        = "media"
)

// Resource is the CRUD contract every entity store satisfies.
// F is the entity's filter, C its create input and U its partial update.
type Resource[T, F, C, U any] interface {
	List(ctx context.Context, f F) (ListResult[T], error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, in C) (T, error)
	Update(ctx context.Context, id int64, patch U) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Publisher is implemented by entities with a draft/published switch.
type Publisher[T any] interface {
	TogglePublish(ctx context.Context, id int64) (T, error)
}

// Deps are shared by every service.
type Deps struct {
	Queries *store.Queries
	Lists   *cache.Lists
	Logger  *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// Services bundles one instance of each service.
type Services struct {
	Pages        *PageService
	Templates    *TemplateService
	Blocks       *BlockService
	Posts        *PostService
	Redirects    *RedirectService
	Themes       *ThemeService
	Testimonials *TestimonialService
	Projects     *ProjectService
	Leads        *LeadService
	Media        *MediaService
	Users        *UserService
	Events       *EventService
	Public       *PublicService
}

// Options configure the services that touch the catalog or the filesystem.
type Options struct {
	Catalog   *marketing.Catalog
	Countries CountryResolver
	UploadDir string
}

// NewServices wires every service over the same dependencies.
func NewServices(d Deps, opts Options) *Services {
	return &Services{
		Pages:        &PageService{Deps: d},
		Templates:    &TemplateService{Deps: d},
		Blocks:       &BlockService{Deps: d},
		Posts:        &PostService{Deps: d},
		Redirects:    &RedirectService{Deps: d},
		Themes:       &ThemeService{Deps: d},
		Testimonials: &TestimonialService{Deps: d},
		Projects:     &ProjectService{Deps: d},
		Leads:        NewLeadService(d, LeadDeps{Catalog: opts.Catalog, Countries: opts.Countries}),
		Media:        NewMediaService(d, opts.UploadDir),
		Users:        &UserService{Deps: d},
		Events:       &EventService{Deps: d},
		Public:       NewPublicService(d, opts.Catalog),
	}
}

// translate maps store errors onto the domain taxonomy.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", what, model.ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

func (d Deps) invalidate(ctx context.Context, entity string) {
	d.Lists.Invalidate(ctx, entity)
}

type actorKey struct{}

// WithActor records the staff user performing a mutation.
func WithActor(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns the acting user id, if any.
func ActorFrom(ctx context.Context) *int64 {
	if id, ok := ctx.Value(actorKey{}).(int64); ok && id > 0 {
		return &id
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, model.ErrNotFound)
}
