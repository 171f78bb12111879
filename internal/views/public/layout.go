// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package public renders the visitor-facing marketing site.
package public

import (
	"strings"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/markdown"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/nav"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views"
)

// PageInfo is the per-request chrome around every public page.
type PageInfo struct {
	Title       string
	Description string
	Path        string
	BaseURL     string
	Theme       *store.Theme
	NoIndex     bool
	JSONLD      string // schema.org structured data, already JSON-encoded
}

type menuLink struct {
	label, href string
}

var menu = []menuLink{
	{"Services", "/services"},
	{"Service Areas", "/service-areas"},
	{"Pricing", "/pricing"},
	{"Projects", "/projects"},
	{"Blog", "/blog"},
}

// Layout wraps body in the site header, footer and active theme.
func Layout(p PageInfo, body ...g.Node) g.Node {
	return Doctype(
		HTML(Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(views.PageTitle(p.Title))),
				g.If(p.Description != "", Meta(Name("description"), Content(p.Description))),
				g.If(p.NoIndex, Meta(Name("robots"), Content("noindex"))),
				g.If(p.BaseURL != "" && p.Path != "", Link(Rel("canonical"), Href(strings.TrimRight(p.BaseURL, "/")+p.Path))),
				Link(Rel("stylesheet"), Href("/static/css/site.css")),
				themeStyle(p.Theme),
				g.If(p.JSONLD != "", Script(Type("application/ld+json"), g.Raw(p.JSONLD))),
			),
			Body(
				Header(Class("site-header"),
					Div(Class("container"),
						A(Class("brand"), Href("/"), g.Text(views.SiteName)),
						Nav(Aria("label", "Main"),
							g.Group(g.Map(menu, func(l menuLink) g.Node {
								return A(Href(l.href), g.If(nav.Under(p.Path, l.href), Class("active")), g.Text(l.label))
							})),
							A(Class("btn"), Href("/quote"), g.Text("Get a Quote")),
						),
					),
				),
				Main(g.Group(body)),
				Footer(Class("site-footer"),
					Div(Class("container"),
						P(g.Textf("%s land clearing and forestry services.", views.SiteName)),
						P(A(Href("/quote"), g.Text("Request a free estimate"))),
					),
				),
			),
		),
	)
}

// themeStyle overrides the stylesheet's CSS variables with the active theme.
func themeStyle(t *store.Theme) g.Node {
	if t == nil {
		return nil
	}
	vars := [][2]string{
		{"--bw-primary", t.PrimaryColor},
		{"--bw-secondary", t.SecondaryColor},
		{"--bw-accent", t.AccentColor},
		{"--bw-background", t.BackgroundColor},
		{"--bw-text", t.TextColor},
		{"--bw-font", t.FontFamily},
		{"--bw-radius", t.BorderRadius},
	}
	var b strings.Builder
	b.WriteString(":root{")
	for _, v := range vars {
		val := cssValue(v[1])
		if val == "" {
			continue
		}
		b.WriteString(v[0] + ":" + val + ";")
	}
	b.WriteString("}")
	return StyleEl(g.Raw(b.String()))
}

// cssValue drops characters that could end the declaration or the style element.
func cssValue(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\\', '\n', '\r':
			return -1
		}
		return r
	}, s))
}

// richText renders stored markdown. Rendering failures fall back to plain text.
func richText(src string) g.Node {
	html, err := markdown.ToHTML(src)
	if err != nil {
		return P(g.Text(src))
	}
	return g.Raw(html)
}

func section(title string, children ...g.Node) g.Node {
	return Section(Div(Class("container"),
		g.If(title != "", H2(g.Text(title))),
		g.Group(children),
	))
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
