// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds small helpers for slugs, paths and request parsing.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	stripMarks   = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify turns a title into a URL slug: "Café Stump Grinding!" -> "cafe-stump-grinding".
// Non-Latin scripts are transliterated first.
func Slugify(s string) string {
	s, _, _ = transform.String(stripMarks, s)
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValidSlug reports whether s is lowercase alphanumerics separated by single hyphens.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
