// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/marketing"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/markdown"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

// DescriptionLength is the longest meta description we emit.
const DescriptionLength = 160

// Description prefers the editor's explicit text and otherwise excerpts body.
func Description(explicit, body string) string {
	if d := strings.TrimSpace(explicit); d != "" {
		return truncateText(d, DescriptionLength)
	}
	return markdown.Excerpt(body, DescriptionLength)
}

// BusinessSchema is schema.org LocalBusiness JSON-LD for the home page.
type BusinessSchema struct {
	Context    string        `json:"@context"`
	Type       string        `json:"@type"`
	Name       string        `json:"name"`
	URL        string        `json:"url"`
	AreaServed []PlaceSchema `json:"areaServed,omitempty"`
	Offers     *OfferCatalog `json:"hasOfferCatalog,omitempty"`
}

// PlaceSchema names a county served.
type PlaceSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// OfferCatalog lists the services offered.
type OfferCatalog struct {
	Type  string        `json:"@type"`
	Name  string        `json:"name"`
	Items []OfferSchema `json:"itemListElement"`
}

// OfferSchema is one service.
type OfferSchema struct {
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ArticleSchema is schema.org BlogPosting JSON-LD for a post.
type ArticleSchema struct {
	Context       string       `json:"@context"`
	Type          string       `json:"@type"`
	Headline      string       `json:"headline"`
	Description   string       `json:"description,omitempty"`
	URL           string       `json:"url"`
	Image         string       `json:"image,omitempty"`
	DatePublished string       `json:"datePublished,omitempty"`
	DateModified  string       `json:"dateModified,omitempty"`
	Author        *PlaceSchema `json:"author,omitempty"`
	Publisher     *PlaceSchema `json:"publisher,omitempty"`
}

// LocalBusiness builds the business JSON-LD from the catalog.
func LocalBusiness(name, siteURL string, c *marketing.Catalog) string {
	s := BusinessSchema{
		Context: "https://schema.org",
		Type:    "LocalBusiness",
		Name:    name,
		URL:     strings.TrimSuffix(siteURL, "/") + "/",
	}
	if c != nil {
		for _, a := range c.Areas {
			s.AreaServed = append(s.AreaServed, PlaceSchema{Type: "AdministrativeArea", Name: a.Name})
		}
		if len(c.Services) > 0 {
			s.Offers = &OfferCatalog{Type: "OfferCatalog", Name: "Services"}
			for _, svc := range c.Services {
				s.Offers.Items = append(s.Offers.Items, OfferSchema{Type: "Offer", Name: svc.Name, Description: svc.Summary})
			}
		}
	}
	return marshalJSONLD(s)
}

// Article builds BlogPosting JSON-LD for a published post.
func Article(p store.Post, siteName, siteURL string) string {
	siteURL = strings.TrimSuffix(siteURL, "/")
	a := ArticleSchema{
		Context:     "https://schema.org",
		Type:        "BlogPosting",
		Headline:    p.Title,
		Description: Description(p.Excerpt, p.Content),
		URL:         siteURL + "/blog/" + p.Slug,
		Image:       makeAbsoluteURL(p.CoverImageURL, siteURL),
		Publisher:   &PlaceSchema{Type: "Organization", Name: siteName},
	}
	if p.PublishedAt != nil {
		a.DatePublished = p.PublishedAt.UTC().Format(time.RFC3339)
	}
	if !p.UpdatedAt.IsZero() {
		a.DateModified = p.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if p.AuthorName != "" {
		a.Author = &PlaceSchema{Type: "Person", Name: p.AuthorName}
	}
	return marshalJSONLD(a)
}

// marshalJSONLD encodes v for a <script type="application/ld+json"> body.
// encoding/json escapes <, > and & so the result cannot close the script.
func marshalJSONLD(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// truncateText truncates text to maxLen runes at a word boundary.
func truncateText(text string, maxLen int) string {
	r := []rune(strings.TrimSpace(text))
	if len(r) <= maxLen {
		return string(r)
	}

	truncated := string(r[:maxLen])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated) + "…"
}

// makeAbsoluteURL prefixes relative URLs with siteURL.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
