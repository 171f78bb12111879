// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markdown renders staff-authored markdown to sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	policy = newPolicy()
	tags   = regexp.MustCompile(`<[^>]*>`)
	spaces = regexp.MustCompile(`\s+`)
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// ToHTML converts src to HTML and strips anything outside the UGC policy.
func ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return policy.Sanitize(buf.String()), nil
}

// Sanitize cleans HTML that did not come from ToHTML.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}

// Excerpt returns up to n runes of plain text from src, cut at a word boundary.
func Excerpt(src string, n int) string {
	html, err := ToHTML(src)
	if err != nil {
		html = src
	}
	text := strings.TrimSpace(spaces.ReplaceAllString(tags.ReplaceAllString(html, " "), " "))
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	cut := string(r[:n])
	if i := strings.LastIndex(cut, " "); i > n/2 {
		cut = cut[:i]
	}
	return cut + "…"
}
