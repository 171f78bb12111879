// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	html, err := ToHTML("## Storm Prep\n\nClear **gutters** first.")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(html, `<h2 id="storm-prep">Storm Prep</h2>`) {
		t.Errorf("html missing %q", `<h2 id="storm-prep">Storm Prep</h2>`)
	}
	if !strings.Contains(html, "<strong>gutters</strong>") {
		t.Errorf("html missing %q", "<strong>gutters</strong>")
	}
}

func TestToHTMLStripsScripts(t *testing.T) {
	html, err := ToHTML("hello <script>alert(1)</script> [x](javascript:alert(1))")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.Contains(html, "<script") {
		t.Errorf("html should not contain %q", "<script")
	}
	if strings.Contains(html, "javascript:") {
		t.Errorf("html should not contain %q", "javascript:")
	}
}

func TestToHTMLTables(t *testing.T) {
	html, err := ToHTML("| Acres | Days |\n|---|---|\n| 5 | 2 |")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("html missing %q", "<table>")
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("Short **text**", 50); got != "Short text" {
		t.Errorf("Excerpt(short) = %q, want %q", got, "Short text")
	}

	long := strings.Repeat("mulch ", 40)
	got := Excerpt(long, 30)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Excerpt(long) = %q, want trailing ellipsis", got)
	}
	if len([]rune(got)) > 31 {
		t.Errorf("Excerpt(long) has %d runes, want <= 31", len([]rune(got)))
	}
}
