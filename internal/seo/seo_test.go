// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/marketing"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

func TestSitemapBuilder(t *testing.T) {
	catalog, err := marketing.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	updated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	b := NewSitemapBuilder("https://brushwhacker.example/")
	b.AddStatic()
	b.AddCatalog(catalog)
	b.AddPages([]store.Page{{Slug: "about", UpdatedAt: updated}})
	b.AddPosts([]store.Post{{Slug: "spring-mulching", UpdatedAt: updated}})
	b.AddProjects([]service.PublicProject{{Slug: "pike-pasture"}})
	b.Add("/about", time.Time{}, ChangeFreqDaily, "0.1") // duplicate ignored

	want := 1 + 6 + len(catalog.Services) + len(catalog.Areas) + 3
	if b.Len() != want {
		t.Fatalf("Len = %d, want %d", b.Len(), want)
	}

	out, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.HasPrefix(string(out), xml.Header) {
		t.Error("missing XML header")
	}

	var doc Sitemap
	if err := xml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("sitemap is not valid XML: %v", err)
	}
	locs := make(map[string]SitemapURL)
	for _, u := range doc.URLs {
		locs[u.Loc] = u
	}

	tests := []struct {
		loc     string
		lastMod string
	}{
		{"https://brushwhacker.example/", ""},
		{"https://brushwhacker.example/services/land-clearing", ""},
		{"https://brushwhacker.example/service-areas/pike-county", ""},
		{"https://brushwhacker.example/about", "2026-03-01T12:00:00Z"},
		{"https://brushwhacker.example/blog/spring-mulching", "2026-03-01T12:00:00Z"},
		{"https://brushwhacker.example/projects/pike-pasture", ""},
	}
	for _, tt := range tests {
		u, ok := locs[tt.loc]
		if !ok {
			t.Errorf("missing %s", tt.loc)
			continue
		}
		if u.LastMod != tt.lastMod {
			t.Errorf("%s lastmod = %q, want %q", tt.loc, u.LastMod, tt.lastMod)
		}
	}
	if locs["https://brushwhacker.example/about"].Priority != "0.6" {
		t.Error("duplicate Add must not replace the first entry")
	}
}

func TestBuildRobots(t *testing.T) {
	tests := []struct {
		name     string
		cfg      RobotsConfig
		contains []string
		excludes []string
	}{
		{
			name:     "production",
			cfg:      RobotsConfig{SiteURL: "https://brushwhacker.example/"},
			contains: []string{"User-agent: *", "Disallow: /admin\n", "Disallow: /api/\n", "Allow: /", "Sitemap: https://brushwhacker.example/sitemap.xml"},
			excludes: []string{"Disallow: /\n"},
		},
		{
			name:     "staging blocks everything",
			cfg:      RobotsConfig{SiteURL: "https://staging.example", DisallowAll: true},
			contains: []string{"Disallow: /\n"},
			excludes: []string{"Sitemap:", "Allow: /"},
		},
		{
			name:     "extra paths",
			cfg:      RobotsConfig{DisallowPaths: []string{"/uploads/private"}},
			contains: []string{"Disallow: /uploads/private"},
			excludes: []string{"Sitemap:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildRobots(tt.cfg)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("robots.txt missing %q:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("robots.txt should not contain %q:\n%s", s, got)
				}
			}
		})
	}
}

func TestDescription(t *testing.T) {
	if got := Description("  Explicit summary ", "# Body"); got != "Explicit summary" {
		t.Errorf("explicit = %q", got)
	}
	if got := Description("", "We **clear** land."); got != "We clear land." {
		t.Errorf("excerpt = %q", got)
	}
	long := strings.Repeat("word ", 60)
	if got := Description(long, ""); len([]rune(got)) > DescriptionLength+1 || !strings.HasSuffix(got, "…") {
		t.Errorf("long description not truncated: %q", got)
	}
}

func TestJSONLD(t *testing.T) {
	catalog, err := marketing.Default()
	if err != nil {
		t.Fatal(err)
	}

	var biz BusinessSchema
	if err := json.Unmarshal([]byte(LocalBusiness("BrushWhacker", "https://bw.example", catalog)), &biz); err != nil {
		t.Fatalf("LocalBusiness JSON: %v", err)
	}
	if biz.Type != "LocalBusiness" || biz.URL != "https://bw.example/" {
		t.Errorf("business = %+v", biz)
	}
	if len(biz.AreaServed) != len(catalog.Areas) || biz.Offers == nil || len(biz.Offers.Items) != len(catalog.Services) {
		t.Errorf("areas/offers not populated: %+v", biz)
	}

	published := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	raw := Article(store.Post{
		Title:         "</script><script>alert(1)</script>",
		Slug:          "storm-prep",
		CoverImageURL: "/uploads/cover.jpg",
		AuthorName:    "Jo",
		PublishedAt:   &published,
	}, "BrushWhacker", "https://bw.example/")
	if strings.Contains(raw, "</script>") {
		t.Errorf("JSON-LD must not contain a raw closing script tag: %s", raw)
	}
	var art ArticleSchema
	if err := json.Unmarshal([]byte(raw), &art); err != nil {
		t.Fatalf("Article JSON: %v", err)
	}
	if art.URL != "https://bw.example/blog/storm-prep" || art.Image != "https://bw.example/uploads/cover.jpg" {
		t.Errorf("article urls = %q %q", art.URL, art.Image)
	}
	if art.DatePublished != "2026-04-02T00:00:00Z" || art.Author == nil || art.Author.Name != "Jo" {
		t.Errorf("article = %+v", art)
	}
}
