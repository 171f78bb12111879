// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// testDB creates a migrated database in a temp directory.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "brushwhacker-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestCreateAndGetUser(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	u, err := q.CreateUser(ctx, User{Email: "crew@example.com", Name: "Crew", PasswordHash: "x", Role: "sales"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == 0 || u.CreatedAt.IsZero() {
		t.Fatalf("user not populated: %+v", u)
	}

	got, err := q.GetUserByEmail(ctx, "crew@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != u.ID || got.Role != "sales" {
		t.Errorf("got %+v", got)
	}

	if _, err := q.CreateUser(ctx, User{Email: "x@example.com", Name: "X", PasswordHash: "x", Role: "owner"}); err == nil {
		t.Error("unknown role should violate the check constraint")
	}
}

func TestListPostsConjunctiveFilters(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	mk := func(slug, status, category string) Post {
		p, err := q.CreatePost(ctx, Post{Title: slug, Slug: slug, Content: "body", Status: status, Category: category})
		if err != nil {
			t.Fatalf("CreatePost(%s): %v", slug, err)
		}
		return p
	}
	mk("draft-x", "draft", "X")
	want := mk("pub-x", "published", "X")
	mk("pub-y", "published", "Y")

	got, total, err := q.ListPosts(ctx, PostFilter{Status: "published", Category: "X"})
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if total != 1 || len(got) != 1 || got[0].ID != want.ID {
		t.Fatalf("got %d/%v, want only %d", total, got, want.ID)
	}

	all, total, err := q.ListPosts(ctx, PostFilter{})
	if err != nil || total != 3 || len(all) != 3 {
		t.Fatalf("unfiltered list = %d items, total %d, err %v", len(all), total, err)
	}

	paged, total, err := q.ListPosts(ctx, PostFilter{Window: Window{Limit: 2, Offset: 2}})
	if err != nil || total != 3 || len(paged) != 1 {
		t.Fatalf("second page = %d items, total %d, err %v", len(paged), total, err)
	}
}

func TestListPostsSearchAndTag(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	if _, err := q.CreatePost(ctx, Post{Title: "Storm Debris 101", Slug: "storm", Content: "x", Tags: "Storms, Debris", Status: "published"}); err != nil {
		t.Fatal(err)
	}
	if _, err := q.CreatePost(ctx, Post{Title: "Mulching", Slug: "mulch", Content: "100% forestry", Status: "published"}); err != nil {
		t.Fatal(err)
	}

	got, _, err := q.ListPosts(ctx, PostFilter{Search: "DEBRIS"})
	if err != nil || len(got) != 1 || got[0].Slug != "storm" {
		t.Fatalf("search = %v, %v", got, err)
	}
	got, _, err = q.ListPosts(ctx, PostFilter{Search: "100%"})
	if err != nil || len(got) != 1 || got[0].Slug != "mulch" {
		t.Fatalf("literal percent search = %v, %v", got, err)
	}
	got, _, err = q.ListPosts(ctx, PostFilter{Tag: "debris"})
	if err != nil || len(got) != 1 {
		t.Fatalf("tag filter = %v, %v", got, err)
	}
}

func TestDeleteMissingReturnsNoRows(t *testing.T) {
	q := New(testDB(t))
	if err := q.DeletePost(context.Background(), 999); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("DeletePost = %v, want sql.ErrNoRows", err)
	}
	if _, err := q.UpdateTemplate(context.Background(), Template{ID: 999, Name: "x", Slug: "x", Layout: "x"}); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("UpdateTemplate = %v, want sql.ErrNoRows", err)
	}
}

func TestSingleActiveThemeIndex(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	a, err := q.CreateTheme(ctx, Theme{Name: "A", PrimaryColor: "#000000", SecondaryColor: "#000000", AccentColor: "#000000", BackgroundColor: "#ffffff", TextColor: "#000000"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := q.CreateTheme(ctx, Theme{Name: "B", PrimaryColor: "#000000", SecondaryColor: "#000000", AccentColor: "#000000", BackgroundColor: "#ffffff", TextColor: "#000000"})
	if err != nil {
		t.Fatal(err)
	}

	if err := q.SetThemeActive(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if err := q.SetThemeActive(ctx, b.ID); err == nil {
		t.Fatal("second active theme should violate the unique index")
	}

	err = q.ExecTx(ctx, func(tx *Queries) error {
		if err := tx.DeactivateThemes(ctx); err != nil {
			return err
		}
		return tx.SetThemeActive(ctx, b.ID)
	})
	if err != nil {
		t.Fatalf("activation tx: %v", err)
	}
	active, err := q.GetActiveTheme(ctx)
	if err != nil || active.ID != b.ID {
		t.Fatalf("active = %+v, %v", active, err)
	}
}

func TestLeadsOrderAndServiceFilter(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	first, err := q.CreateLead(ctx, Lead{Reference: "A1", Name: "Ann", County: "Pike", Services: StringList{"forestry-mulching"}, Timeline: "asap", Status: "New"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := q.CreateLead(ctx, Lead{Reference: "B2", Name: "Bob", County: "Pike", Services: StringList{"land-clearing", "stump-grinding"}, Timeline: "flexible", Status: "New"})
	if err != nil {
		t.Fatal(err)
	}

	all, _, err := q.ListLeads(ctx, LeadFilter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("ListLeads = %v, %v", all, err)
	}
	if all[0].ID != second.ID || all[1].ID != first.ID {
		t.Errorf("leads should be newest first, got %d then %d", all[0].ID, all[1].ID)
	}
	if len(all[0].Services) != 2 {
		t.Errorf("services not decoded: %v", all[0].Services)
	}

	got, _, err := q.ListLeads(ctx, LeadFilter{Service: "stump-grinding", County: "Pike"})
	if err != nil || len(got) != 1 || got[0].ID != second.ID {
		t.Fatalf("service filter = %v, %v", got, err)
	}
}

func TestEnabledRedirectsOldestFirst(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	r1, _ := q.CreateRedirect(ctx, Redirect{FromPath: "/old", ToPath: "/new", Code: 301, Enabled: true})
	_, _ = q.CreateRedirect(ctx, Redirect{FromPath: "/old", ToPath: "/newer", Code: 302, Enabled: true})
	_, _ = q.CreateRedirect(ctx, Redirect{FromPath: "/off", ToPath: "/x", Code: 301, Enabled: false})

	rules, err := q.ListEnabledRedirects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 2 || rules[0].ID != r1.ID {
		t.Fatalf("rules = %+v", rules)
	}
	n, err := q.CountRedirectsFrom(ctx, "/old", r1.ID)
	if err != nil || n != 1 {
		t.Errorf("CountRedirectsFrom = %d, %v", n, err)
	}
}

func TestDuePosts(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	due, _ := q.CreatePost(ctx, Post{Title: "due", Slug: "due", Content: "x", Status: "draft", ScheduledAt: &past})
	_, _ = q.CreatePost(ctx, Post{Title: "later", Slug: "later", Content: "x", Status: "draft", ScheduledAt: &future})

	got, err := q.ListDuePosts(ctx, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != due.ID {
		t.Fatalf("due posts = %+v", got)
	}
}

func TestPageVersions(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	p, err := q.CreatePage(ctx, Page{Title: "About", Slug: "about", Status: "draft", BlockIDs: IDList{3, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.BlockIDs) != 2 || p.BlockIDs[0] != 3 {
		t.Errorf("block ids = %v", p.BlockIDs)
	}
	if _, err := q.CreatePageVersion(ctx, PageVersion{PageID: p.ID, Title: p.Title, Status: p.Status}); err != nil {
		t.Fatal(err)
	}
	versions, err := q.ListPageVersions(ctx, p.ID)
	if err != nil || len(versions) != 1 {
		t.Fatalf("versions = %v, %v", versions, err)
	}

	if err := q.DeletePage(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	versions, _ = q.ListPageVersions(ctx, p.ID)
	if len(versions) != 0 {
		t.Error("versions should cascade with their page")
	}
}
