// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds sitemap.xml, robots.txt and structured data for the
// public site.
package seo

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/marketing"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequency values used by the site.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap is the complete document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder collects public URLs. Paths are joined onto siteURL.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
	seen    map[string]bool
}

// NewSitemapBuilder creates a builder for siteURL.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		seen:    make(map[string]bool),
	}
}

// Add appends path once; later duplicates are ignored.
func (b *SitemapBuilder) Add(path string, lastMod time.Time, freq ChangeFreq, priority string) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	loc := b.siteURL + path
	if path == "/" {
		loc = b.siteURL + "/"
	}
	if b.seen[loc] {
		return
	}
	b.seen[loc] = true

	u := SitemapURL{Loc: loc, ChangeFreq: freq, Priority: priority}
	if !lastMod.IsZero() {
		u.LastMod = lastMod.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
}

// AddStatic adds the fixed marketing pages.
func (b *SitemapBuilder) AddStatic() {
	b.Add("/", time.Time{}, ChangeFreqDaily, "1.0")
	for _, p := range []string{"/services", "/service-areas", "/pricing", "/projects", "/blog", "/quote"} {
		b.Add(p, time.Time{}, ChangeFreqWeekly, "0.8")
	}
}

// AddCatalog adds a page per service and service area.
func (b *SitemapBuilder) AddCatalog(c *marketing.Catalog) {
	if c == nil {
		return
	}
	for _, s := range c.Services {
		b.Add("/services/"+s.Slug, time.Time{}, ChangeFreqMonthly, "0.7")
	}
	for _, a := range c.Areas {
		b.Add("/service-areas/"+a.Slug, time.Time{}, ChangeFreqMonthly, "0.7")
	}
}

// AddPages adds published CMS pages at /{slug}.
func (b *SitemapBuilder) AddPages(pages []store.Page) {
	for _, p := range pages {
		b.Add("/"+p.Slug, p.UpdatedAt, ChangeFreqWeekly, "0.6")
	}
}

// AddPosts adds published blog posts.
func (b *SitemapBuilder) AddPosts(posts []store.Post) {
	for _, p := range posts {
		b.Add("/blog/"+p.Slug, p.UpdatedAt, ChangeFreqMonthly, "0.6")
	}
}

// AddProjects adds published portfolio projects.
func (b *SitemapBuilder) AddProjects(projects []service.PublicProject) {
	for _, p := range projects {
		b.Add("/projects/"+p.Slug, p.UpdatedAt, ChangeFreqMonthly, "0.5")
	}
}

// Len reports how many URLs were collected.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}
