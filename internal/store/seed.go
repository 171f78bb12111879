// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/auth"
)

// SeedOptions controls the initial account created by Seed.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Seed creates the first super admin plus starter themes and content.
// It does nothing once any user exists.
func Seed(ctx context.Context, db *sql.DB, opts SeedOptions) error {
	q := New(db)

	n, err := q.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if n > 0 {
		slog.Info("users already exist, skipping seed")
		return nil
	}
	if len(opts.AdminPassword) < auth.MinPasswordLength {
		return fmt.Errorf("seed admin password must be at least %d characters", auth.MinPasswordLength)
	}

	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return q.ExecTx(ctx, func(tx *Queries) error {
		user, err := tx.CreateUser(ctx, User{
			Email:        opts.AdminEmail,
			Name:         opts.AdminName,
			PasswordHash: hash,
			Role:         "super_admin",
		})
		if err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}

		if err := seedThemes(ctx, tx); err != nil {
			return err
		}
		if err := seedContent(ctx, tx); err != nil {
			return err
		}

		slog.Info("seeded database", "admin_id", user.ID, "email", user.Email)
		return nil
	})
}

func seedThemes(ctx context.Context, q *Queries) error {
	presets := []Theme{
		{Name: "Timberline", PrimaryColor: "#2f5d32", SecondaryColor: "#8a5a2b", AccentColor: "#f2a900",
			BackgroundColor: "#fbfaf6", TextColor: "#1f2421", FontFamily: "Inter, sans-serif", BorderRadius: "6px"},
		{Name: "Red Clay", PrimaryColor: "#9c3d22", SecondaryColor: "#3b3b3b", AccentColor: "#e0b04b",
			BackgroundColor: "#ffffff", TextColor: "#222222", FontFamily: "Roboto Slab, serif", BorderRadius: "2px"},
	}
	for i, p := range presets {
		t, err := q.CreateTheme(ctx, p)
		if err != nil {
			return fmt.Errorf("creating theme %q: %w", p.Name, err)
		}
		if i == 0 {
			if err := q.SetThemeActive(ctx, t.ID); err != nil {
				return fmt.Errorf("activating theme: %w", err)
			}
		}
	}
	return nil
}

func seedContent(ctx context.Context, q *Queries) error {
	published := time.Now().UTC()

	posts := []Post{
		{Title: "What to Expect After a Storm Cleanup", Slug: "storm-cleanup-what-to-expect",
			Excerpt: "How we triage downed timber and debris after severe weather.",
			Content: "## First 48 hours\n\nWe start with access routes, then hazardous leaners.",
			Category: "Storm Cleanup", Tags: "storms, debris", AuthorName: "BrushWhacker Crew",
			Status: "published", PublishedAt: &published},
		{Title: "Forestry Mulching vs. Traditional Clearing", Slug: "forestry-mulching-vs-clearing",
			Excerpt: "Why mulching leaves the soil healthier.",
			Content: "Mulching grinds vegetation in place and protects topsoil from erosion.",
			Category: "Land Clearing", Tags: "mulching", AuthorName: "BrushWhacker Crew",
			Status: "published", PublishedAt: &published},
	}
	for _, p := range posts {
		if _, err := q.CreatePost(ctx, p); err != nil {
			return fmt.Errorf("creating post %q: %w", p.Slug, err)
		}
	}

	testimonials := []Testimonial{
		{AuthorName: "Dana R.", Location: "Pike County", Quote: "They cleared five acres in two days and left it spotless.",
			Rating: 5, ServiceSlug: "forestry-mulching", Publish: true},
		{AuthorName: "Marcus T.", Location: "Walker County", Quote: "Fast response after the storm. Fair price.",
			Rating: 5, ServiceSlug: "storm-cleanup", Publish: true},
	}
	for _, t := range testimonials {
		if _, err := q.CreateTestimonial(ctx, t); err != nil {
			return fmt.Errorf("creating testimonial: %w", err)
		}
	}

	if _, err := q.CreatePage(ctx, Page{
		Title: "About Us", Slug: "about", Status: "published", PublishedAt: &published,
		Content:   "We are a family-owned land clearing outfit serving the region since 2009.",
		MetaTitle: "About BrushWhacker",
	}); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("creating about page: %w", err)
	}
	return nil
}
