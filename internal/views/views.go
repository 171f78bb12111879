// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package views holds the gomponents building blocks shared by the public
// site and the admin shell.
package views

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

// SiteName is shown in titles and headers.
const SiteName = "BrushWhacker"

// Render writes node as an HTML document with the given status.
func Render(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		slog.Error("rendering view", "error", err)
	}
}

// RenderTo is Render without HTTP, for tests and previews.
func RenderTo(w io.Writer, node g.Node) error {
	return node.Render(w)
}

// PageTitle builds "<page> | BrushWhacker".
func PageTitle(page string) string {
	if page == "" {
		return SiteName
	}
	return page + " | " + SiteName
}

// Date formats t for humans; zero and nil times render empty.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// Money renders a whole-dollar amount with thousands separators.
func Money(dollars int) string {
	s := fmt.Sprintf("%d", dollars)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return "$" + b.String()
}

// Flash renders a dismissable notice; kind is "error" or "info".
func Flash(msg, kind string) g.Node {
	if msg == "" {
		return nil
	}
	return Div(Class("flash "+kind), Role("alert"), g.Text(msg))
}

// Pager renders previous/next links for a paged listing at base.
func Pager(base string, page, pages int, query string) g.Node {
	if pages <= 1 {
		return nil
	}
	link := func(p int) string {
		u := fmt.Sprintf("%s?page=%d", base, p)
		if query != "" {
			u += "&" + query
		}
		return u
	}
	return Nav(Class("pagination"), Aria("label", "Pagination"),
		g.If(page > 1, A(Href(link(page-1)), Rel("prev"), g.Text("Newer"))),
		Span(g.Textf("Page %d of %d", page, pages)),
		g.If(page < pages, A(Href(link(page+1)), Rel("next"), g.Text("Older"))),
	)
}
