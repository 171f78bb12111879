// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/cache"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/marketing"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/testutil"
)

func newTestServices(t *testing.T) *Services {
	t.Helper()
	db := testutil.TestDB(t)
	mem := cache.NewMemoryCache(cache.MemoryOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })

	catalog, err := marketing.Default()
	if err != nil {
		t.Fatalf("marketing.Default: %v", err)
	}

	return NewServices(Deps{
		Queries: store.New(db),
		Lists:   cache.NewLists(mem, time.Minute),
		Logger:  testutil.DiscardLogger(),
	}, Options{Catalog: catalog, UploadDir: t.TempDir()})
}

func ptr[T any](v T) *T { return &v }

func requireFields(t *testing.T, err error, fields ...string) {
	t.Helper()
	ve, ok := model.IsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range fields {
		if _, ok := ve.Fields[f]; !ok {
			t.Errorf("ve.Fields = %v, want key %q", ve.Fields, f)
		}
	}
}

func TestPageCreateValidation(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.Pages.Create(ctx, PageInput{Slug: "Bad Slug!", Status: "archived"})
	requireFields(t, err, "title", "slug", "status")

	_, err = s.Pages.Create(ctx, PageInput{Title: "About", TemplateID: ptr(int64(999))})
	requireFields(t, err, "template_id")
}

func TestPageSlugDerivedAndUnique(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	p, err := s.Pages.Create(ctx, PageInput{Title: "Land Clearing FAQ"})
	if err != nil {
		t.Fatalf("Pages.Create: %v", err)
	}
	if p.Slug != "land-clearing-faq" {
		t.Errorf("p.Slug = %q, want %q", p.Slug, "land-clearing-faq")
	}
	if p.Status != model.StatusDraft {
		t.Errorf("p.Status = %v, want %v", p.Status, model.StatusDraft)
	}
	if p.PublishedAt != nil {
		t.Errorf("p.PublishedAt = %v, want nil", p.PublishedAt)
	}

	_, err = s.Pages.Create(ctx, PageInput{Title: "Other", Slug: "land-clearing-faq"})
	requireFields(t, err, "slug")
}

func TestPageVersionsAndRestore(t *testing.T) {
	s := newTestServices(t)
	ctx := WithActor(context.Background(), 0)

	p, err := s.Pages.Create(ctx, PageInput{Title: "Original", Content: "first"})
	if err != nil {
		t.Fatalf("Pages.Create: %v", err)
	}

	_, err = s.Pages.Update(ctx, p.ID, PagePatch{Title: ptr("Edited"), Content: ptr("second")})
	if err != nil {
		t.Fatalf("Pages.Update: %v", err)
	}

	versions, err := s.Pages.Versions(ctx, p.ID)
	if err != nil {
		t.Fatalf("Pages.Versions: %v", err)
	}
	if len(versions) != 1 {
		t.Fatalf("len(versions) = %d, want %d", len(versions), 1)
	}
	if versions[0].Title != "Original" {
		t.Errorf("versions[0].Title = %q, want %q", versions[0].Title, "Original")
	}
	if versions[0].Content != "first" {
		t.Errorf("versions[0].Content = %q, want %q", versions[0].Content, "first")
	}

	restored, err := s.Pages.Restore(ctx, p.ID, versions[0].ID)
	if err != nil {
		t.Fatalf("Pages.Restore: %v", err)
	}
	if restored.Title != "Original" {
		t.Errorf("restored.Title = %q, want %q", restored.Title, "Original")
	}
	if restored.Content != "first" {
		t.Errorf("restored.Content = %q, want %q", restored.Content, "first")
	}

	versions, err = s.Pages.Versions(ctx, p.ID)
	if err != nil {
		t.Fatalf("Pages.Versions: %v", err)
	}
	if len(versions) != 2 {
		t.Errorf("len(versions) = %d, want %d; restore snapshots the edited state first", len(versions), 2)
	}

	_, err = s.Pages.Restore(ctx, p.ID, 9999)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err = %v, want %v", err, model.ErrNotFound)
	}
}

func TestTogglePublishStampsOnce(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	p, err := s.Posts.Create(ctx, PostInput{Title: "Mulching 101", Content: "Body text"})
	if err != nil {
		t.Fatalf("Posts.Create: %v", err)
	}
	if len(p.Excerpt) == 0 {
		t.Error("p.Excerpt is empty")
	}

	p, err = s.Posts.TogglePublish(ctx, p.ID)
	if err != nil {
		t.Fatalf("Posts.TogglePublish: %v", err)
	}
	if p.Status != model.StatusPublished {
		t.Errorf("p.Status = %v, want %v", p.Status, model.StatusPublished)
	}
	if p.PublishedAt == nil {
		t.Fatal("p.PublishedAt is nil")
	}
	first := *p.PublishedAt

	p, err = s.Posts.TogglePublish(ctx, p.ID)
	if err != nil {
		t.Fatalf("Posts.TogglePublish: %v", err)
	}
	if p.Status != model.StatusDraft {
		t.Errorf("p.Status = %v, want %v", p.Status, model.StatusDraft)
	}

	p, err = s.Posts.TogglePublish(ctx, p.ID)
	if err != nil {
		t.Fatalf("Posts.TogglePublish: %v", err)
	}
	if p.PublishedAt == nil {
		t.Fatal("p.PublishedAt is nil")
	}
	if !first.Equal(*p.PublishedAt) {
		t.Errorf("published_at is kept on republish")
	}
}

func TestScheduledPostStaysUnpublished(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	now := time.Now().UTC()

	p, err := s.Posts.Create(ctx, PostInput{Title: "Spring burn season", Content: "Body", ScheduledAt: ptr(now.Add(-time.Hour))})
	if err != nil {
		t.Fatalf("Posts.Create: %v", err)
	}

	n, err := s.Posts.PublishDue(ctx, now)
	if err != nil {
		t.Fatalf("Posts.PublishDue: %v", err)
	}
	if n != 1 {
		t.Fatalf("PublishDue published %d posts, want 1", n)
	}
	p, err = s.Posts.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Posts.Get: %v", err)
	}
	if p.Status != model.StatusPublished {
		t.Errorf("p.Status = %q, want %q", p.Status, model.StatusPublished)
	}
	if p.ScheduledAt != nil {
		t.Errorf("p.ScheduledAt = %v after publishing, want nil", p.ScheduledAt)
	}

	p, err = s.Posts.TogglePublish(ctx, p.ID)
	if err != nil {
		t.Fatalf("Posts.TogglePublish: %v", err)
	}
	if p.Status != model.StatusDraft {
		t.Fatalf("p.Status = %q, want %q", p.Status, model.StatusDraft)
	}

	n, err = s.Posts.PublishDue(ctx, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Posts.PublishDue: %v", err)
	}
	if n != 0 {
		t.Errorf("second PublishDue published %d posts, want 0", n)
	}
	p, err = s.Posts.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Posts.Get: %v", err)
	}
	if p.Status != model.StatusDraft {
		t.Errorf("unpublished post came back as %q", p.Status)
	}
}

func TestScheduledPageStaysUnpublished(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	now := time.Now().UTC()

	p, err := s.Pages.Create(ctx, PageInput{Title: "Fall specials", Content: "Body", ScheduledAt: ptr(now.Add(-time.Hour))})
	if err != nil {
		t.Fatalf("Pages.Create: %v", err)
	}

	n, err := s.Pages.PublishDue(ctx, now)
	if err != nil {
		t.Fatalf("Pages.PublishDue: %v", err)
	}
	if n != 1 {
		t.Fatalf("PublishDue published %d pages, want 1", n)
	}
	p, err = s.Pages.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Pages.Get: %v", err)
	}
	if p.ScheduledAt != nil {
		t.Errorf("p.ScheduledAt = %v after publishing, want nil", p.ScheduledAt)
	}

	if _, err := s.Pages.TogglePublish(ctx, p.ID); err != nil {
		t.Fatalf("Pages.TogglePublish: %v", err)
	}
	n, err = s.Pages.PublishDue(ctx, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Pages.PublishDue: %v", err)
	}
	if n != 0 {
		t.Errorf("second PublishDue published %d pages, want 0", n)
	}
	p, err = s.Pages.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Pages.Get: %v", err)
	}
	if p.Status != model.StatusDraft {
		t.Errorf("unpublished page came back as %q", p.Status)
	}
}

func TestClearSchedule(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	now := time.Now().UTC()

	post, err := s.Posts.Create(ctx, PostInput{Title: "Drought notes", Content: "Body", ScheduledAt: ptr(now.Add(time.Hour))})
	if err != nil {
		t.Fatalf("Posts.Create: %v", err)
	}
	if post.ScheduledAt == nil {
		t.Fatal("post.ScheduledAt is nil")
	}
	post, err = s.Posts.Update(ctx, post.ID, PostPatch{ClearSchedule: true})
	if err != nil {
		t.Fatalf("Posts.Update: %v", err)
	}
	if post.ScheduledAt != nil {
		t.Errorf("post.ScheduledAt = %v, want nil", post.ScheduledAt)
	}

	page, err := s.Pages.Create(ctx, PageInput{Title: "Winter hours", Content: "Body", ScheduledAt: ptr(now.Add(-time.Hour))})
	if err != nil {
		t.Fatalf("Pages.Create: %v", err)
	}
	if _, err := s.Pages.Update(ctx, page.ID, PagePatch{ClearSchedule: true}); err != nil {
		t.Fatalf("Pages.Update: %v", err)
	}
	n, err := s.Pages.PublishDue(ctx, now)
	if err != nil {
		t.Fatalf("Pages.PublishDue: %v", err)
	}
	if n != 0 {
		t.Errorf("PublishDue published %d pages after the schedule was cleared, want 0", n)
	}
}

func TestNotFoundIsTranslated(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	checks := map[string]error{
		"page get":           func() error { _, err := s.Pages.Get(ctx, 42); return err }(),
		"post update":        func() error { _, err := s.Posts.Update(ctx, 42, PostPatch{}); return err }(),
		"block delete":       s.Blocks.Delete(ctx, 42),
		"template toggle":    func() error { _, err := s.Templates.TogglePublish(ctx, 42); return err }(),
		"testimonial delete": s.Testimonials.Delete(ctx, 42),
		"project get":        func() error { _, err := s.Projects.Get(ctx, 42); return err }(),
		"redirect toggle":    func() error { _, err := s.Redirects.Toggle(ctx, 42); return err }(),
		"theme activate":     func() error { _, err := s.Themes.Activate(ctx, 42); return err }(),
		"lead get":           func() error { _, err := s.Leads.Get(ctx, 42); return err }(),
	}
	for name, err := range checks {
		t.Run(name, func(t *testing.T) {
			if !errors.Is(err, model.ErrNotFound) {
				t.Errorf("err = %v, want %v", err, model.ErrNotFound)
			}
		})
	}
}

func TestListReadAfterWrite(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	res, err := s.Testimonials.List(ctx, TestimonialFilter{})
	if err != nil {
		t.Fatalf("Testimonials.List: %v", err)
	}
	if res.Total != 0 {
		t.Errorf("res.Total = %v, want 0", res.Total)
	}

	_, err = s.Testimonials.Create(ctx, TestimonialInput{AuthorName: "Dale", Quote: "Great crew", Rating: 5})
	if err != nil {
		t.Fatalf("Testimonials.Create: %v", err)
	}

	res, err = s.Testimonials.List(ctx, TestimonialFilter{})
	if err != nil {
		t.Fatalf("Testimonials.List: %v", err)
	}
	if res.Total != 1 {
		t.Errorf("res.Total = %v, want %v; create invalidates cached listing", res.Total, 1)
	}
	if len(res.Items) != 1 {
		t.Errorf("len(res.Items) = %d, want %d", len(res.Items), 1)
	}
}

func TestListPagination(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Projects.Create(ctx, ProjectInput{Title: "Job " + string(rune('A'+i)), County: "Pike"})
		if err != nil {
			t.Fatalf("Projects.Create: %v", err)
		}
	}
	res, err := s.Projects.List(ctx, ProjectFilter{ListParams: ListParams{Page: 2, PerPage: 2}})
	if err != nil {
		t.Fatalf("Projects.List: %v", err)
	}
	if res.Total != 5 {
		t.Errorf("res.Total = %v, want %v", res.Total, 5)
	}
	if len(res.Items) != 2 {
		t.Errorf("len(res.Items) = %d, want %d", len(res.Items), 2)
	}
	if res.Pages() != 3 {
		t.Errorf("res.Pages() = %v, want %v", res.Pages(), 3)
	}
	if res.Items[0].Title != "Job C" {
		t.Errorf("res.Items[0].Title = %q, want %q; id DESC puts the third-newest first on page two", res.Items[0].Title, "Job C")
	}
}

func TestBlockValidation(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.Blocks.Create(ctx, BlockInput{Name: "Hero", Type: "carousel", Content: "{not json"})
	requireFields(t, err, "type", "content")

	b, err := s.Blocks.Create(ctx, BlockInput{Name: "Hero", Type: "hero", Content: `{"heading":"Clear land fast"}`})
	if err != nil {
		t.Fatalf("Blocks.Create: %v", err)
	}

	_, err = s.Blocks.Update(ctx, b.ID, BlockPatch{Content: ptr("")})
	requireFields(t, err, "content")
}

func TestTemplateRequiresLayout(t *testing.T) {
	s := newTestServices(t)
	_, err := s.Templates.Create(context.Background(), TemplateInput{Name: "Landing"})
	requireFields(t, err, "layout")
}

func TestTestimonialRating(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	for _, rating := range []int{0, 6} {
		_, err := s.Testimonials.Create(ctx, TestimonialInput{AuthorName: "A", Quote: "Q", Rating: rating})
		requireFields(t, err, "rating")
	}
}

func TestRedirectRules(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.Redirects.Create(ctx, RedirectInput{FromPath: "old", ToPath: "/new", Code: 307})
	requireFields(t, err, "from_path", "code")

	_, err = s.Redirects.Create(ctx, RedirectInput{FromPath: "/same", ToPath: "/same/", Code: 302})
	requireFields(t, err, "to_path")

	_, err = s.Redirects.Create(ctx, RedirectInput{FromPath: "/no-code", ToPath: "/services"})
	requireFields(t, err, "code")
	if ve, ok := model.IsValidation(err); ok && ve.Fields["code"] != "code is required" {
		t.Errorf("code error = %q, want %q", ve.Fields["code"], "code is required")
	}

	first, err := s.Redirects.Create(ctx, RedirectInput{FromPath: "/services/mulching/", ToPath: "/services/forestry-mulching", Code: 301})
	if err != nil {
		t.Fatalf("Redirects.Create: %v", err)
	}
	if first.FromPath != "/services/mulching" {
		t.Errorf("first.FromPath = %q, want %q", first.FromPath, "/services/mulching")
	}
	if first.Code != 301 {
		t.Errorf("first.Code = %d, want 301", first.Code)
	}

	_, err = s.Redirects.Create(ctx, RedirectInput{FromPath: "/services/mulching", ToPath: "/elsewhere", Code: 302})
	if err != nil {
		t.Fatalf("Redirects.Create: %v; duplicates are accepted", err)
	}

	to, ok, err := s.Public.ResolveRedirect(ctx, "/services/mulching")
	if err != nil {
		t.Fatalf("Public.ResolveRedirect: %v", err)
	}
	if !ok {
		t.Fatal("ResolveRedirect(/services/mulching) found no rule")
	}
	if !reflect.DeepEqual(to, Redirection{To: "/services/forestry-mulching", Code: 301}) {
		t.Errorf("to = %v, want %v; lowest id wins", to, Redirection{To: "/services/forestry-mulching", Code: 301})
	}

	_, err = s.Redirects.Toggle(ctx, first.ID)
	if err != nil {
		t.Fatalf("Redirects.Toggle: %v", err)
	}
	to, ok, err = s.Public.ResolveRedirect(ctx, "/services/mulching")
	if err != nil {
		t.Fatalf("Public.ResolveRedirect: %v", err)
	}
	if !ok {
		t.Fatal("ResolveRedirect(/services/mulching) found no rule after toggle")
	}
	if to.To != "/elsewhere" {
		t.Errorf("to.To = %q, want %q; disabled rules are skipped", to.To, "/elsewhere")
	}

	_, ok, err = s.Public.ResolveRedirect(ctx, "/nothing-here")
	if err != nil {
		t.Fatalf("Public.ResolveRedirect: %v", err)
	}
	if ok {
		t.Error("ResolveRedirect(/nothing-here) found a rule")
	}
}

func TestThemeActivation(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	in := ThemeInput{
		PrimaryColor: "#112233", SecondaryColor: "#445566", AccentColor: "#778899",
		BackgroundColor: "#ffffff", TextColor: "#000000",
	}
	in.Name = "Pine"
	pine, err := s.Themes.Create(ctx, in)
	if err != nil {
		t.Fatalf("Themes.Create: %v", err)
	}
	if pine.IsActive {
		t.Error("pine.IsActive should be false")
	}
	if pine.FontFamily != DefaultFontFamily {
		t.Errorf("pine.FontFamily = %v, want %v", pine.FontFamily, DefaultFontFamily)
	}

	in.Name = "Clay"
	clay, err := s.Themes.Create(ctx, in)
	if err != nil {
		t.Fatalf("Themes.Create: %v", err)
	}

	_, err = s.Themes.Create(ctx, in)
	requireFields(t, err, "name")

	_, err = s.Themes.Activate(ctx, pine.ID)
	if err != nil {
		t.Fatalf("Themes.Activate: %v", err)
	}
	active, err := s.Themes.Activate(ctx, clay.ID)
	if err != nil {
		t.Fatalf("Themes.Activate: %v", err)
	}
	if !active.IsActive {
		t.Error("active.IsActive should be true")
	}

	onlyActive := true
	res, err := s.Themes.List(ctx, ThemeFilter{Active: &onlyActive})
	if err != nil {
		t.Fatalf("Themes.List: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("len(res.Items) = %d, want %d", len(res.Items), 1)
	}
	if res.Items[0].ID != clay.ID {
		t.Errorf("res.Items[0].ID = %v, want %v", res.Items[0].ID, clay.ID)
	}

	err = s.Themes.Delete(ctx, clay.ID)
	if !errors.Is(err, model.ErrConflict) {
		t.Errorf("err = %v, want %v", err, model.ErrConflict)
	}
	if err := s.Themes.Delete(ctx, pine.ID); err != nil {
		t.Errorf("s.Themes.Delete(ctx, pine.ID): %v", err)
	}

	_, err = s.Themes.Create(ctx, ThemeInput{Name: "Bad", PrimaryColor: "red"})
	requireFields(t, err, "primary_color", "text_color")
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("constraint failed: UNIQUE constraint failed: theme_presets.is_active (2067)"), true},
		{errors.New("database is locked"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := isUniqueViolation(tt.err); got != tt.want {
			t.Errorf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestProjectCompletedStamp(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	p, err := s.Projects.Create(ctx, ProjectInput{Title: "Back forty", County: "Lee", Stage: "finished"})
	requireFields(t, err, "stage")

	p, err = s.Projects.Create(ctx, ProjectInput{Title: "Back forty", County: "Lee"})
	if err != nil {
		t.Fatalf("Projects.Create: %v", err)
	}
	if p.Stage != model.StagePlanned {
		t.Errorf("p.Stage = %v, want %v", p.Stage, model.StagePlanned)
	}
	if p.CompletedAt != nil {
		t.Errorf("p.CompletedAt = %v, want nil", p.CompletedAt)
	}

	p, err = s.Projects.Update(ctx, p.ID, ProjectPatch{Stage: ptr(model.StageCompleted)})
	if err != nil {
		t.Fatalf("Projects.Update: %v", err)
	}
	if p.CompletedAt == nil {
		t.Error("p.CompletedAt is nil")
	}
}

func TestUserAuthenticate(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.Users.Create(ctx, UserInput{Email: "bad", Name: "", Role: "owner", Password: "short"})
	requireFields(t, err, "email", "name", "role", "password")

	u, err := s.Users.Create(ctx, UserInput{Email: "Crew@Example.com", Name: "Crew", Role: "sales", Password: "long-enough-pw"})
	if err != nil {
		t.Fatalf("Users.Create: %v", err)
	}
	if u.Email != "crew@example.com" {
		t.Errorf("u.Email = %q, want %q", u.Email, "crew@example.com")
	}

	_, err = s.Users.Create(ctx, UserInput{Email: "crew@example.com", Name: "Again", Role: "sales", Password: "long-enough-pw"})
	requireFields(t, err, "email")

	got, err := s.Users.Authenticate(ctx, "CREW@example.com", "long-enough-pw")
	if err != nil {
		t.Fatalf("Users.Authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("got.ID = %v, want %v", got.ID, u.ID)
	}

	_, err = s.Users.Authenticate(ctx, "crew@example.com", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want %v", err, ErrInvalidCredentials)
	}
	_, err = s.Users.Authenticate(ctx, "nobody@example.com", "whatever-pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestListParamsNormalize(t *testing.T) {
	p := ListParams{Search: "  brush ", Page: -3, PerPage: 1000}.Normalize()
	if !reflect.DeepEqual(p, ListParams{Search: "brush", Page: 1, PerPage: MaxPerPage}) {
		t.Errorf("p = %v, want %v", p, ListParams{Search: "brush", Page: 1, PerPage: MaxPerPage})
	}
	var zero ListParams
	if got := zero.Normalize().PerPage; got != DefaultPerPage {
		t.Errorf("zero Normalize().PerPage = %d, want %d", got, DefaultPerPage)
	}
}
