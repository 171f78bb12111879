// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package admin renders the staff console: login, the shell with its
// role-filtered sidebar, and the dashboard.
package admin

import (
	g "github.com/maragudk/gomponents"
	c "github.com/maragudk/gomponents/components"
	. "github.com/maragudk/gomponents/html"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/nav"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views"
)

// PageContext carries what every admin page needs around its body.
type PageContext struct {
	Title     string
	User      store.User
	Path      string
	Nav       nav.Tree // already filtered for the user's role
	Expansion nav.Expansion
	Flash     string
	FlashType string
}

// Role returns the signed-in user's role.
func (pc PageContext) Role() model.Role {
	return model.Role(pc.User.Role)
}

// UserInitial returns the first character of the user's name for the avatar.
func (pc PageContext) UserInitial() string {
	if pc.User.Name == "" {
		return "?"
	}
	return string([]rune(pc.User.Name)[0])
}

// Layout renders the shell: sidebar, top bar and body.
func Layout(pc PageContext, body ...g.Node) g.Node {
	current, _ := pc.Nav.ActiveEntry(pc.Path)
	active := current.Path
	return Doctype(
		HTML(Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Meta(Name("robots"), Content("noindex")),
				TitleEl(g.Text(views.PageTitle(pc.Title+" · Admin"))),
				Link(Rel("stylesheet"), Href("/static/css/admin.css")),
				Script(Src("/static/js/admin.js"), Defer()),
			),
			Body(
				Div(Class("admin"),
					Aside(Class("sidebar"),
						A(Class("brand"), Href(nav.AdminRoot), g.Text(views.SiteName)),
						Nav(Aria("label", "Admin"),
							Ul(g.Group(g.Map(pc.Nav, func(e nav.Entry) g.Node {
								return sidebarItem(e, pc, active)
							}))),
						),
					),
					Div(Class("main"),
						Div(Class("topbar"),
							H1(g.Text(pc.Title)),
							Div(
								Span(Class("avatar"), g.Text(pc.UserInitial())),
								g.Textf(" %s (%s) ", pc.User.Name, pc.Role().Label()),
								g.El("form", Method("post"), Action("/logout"),
									Button(Type("submit"), g.Text("Log out")),
								),
							),
						),
						views.Flash(pc.Flash, pc.FlashType),
						g.Group(body),
					),
				),
			),
		),
	)
}

func sidebarItem(e nav.Entry, pc PageContext, active string) g.Node {
	if !e.IsGroup() {
		return Li(navLink(e, active))
	}
	open := pc.Expansion.IsExpanded(e, pc.Path)
	return Li(c.Classes{"group": true, "collapsed": !open},
		g.El("form", Method("post"), Action("/admin/nav/toggle"),
			Input(Type("hidden"), Name("group"), Value(e.Path)),
			Input(Type("hidden"), Name("current"), Value(pc.Path)),
			Button(Type("submit"), g.Attr("data-nav-toggle", e.Path), g.Attr("aria-expanded", boolString(open)),
				g.Text(e.Title),
			),
		),
		Ul(Class("children"), g.Group(g.Map(e.Children, func(child nav.Entry) g.Node {
			return Li(navLink(child, active))
		}))),
	)
}

func navLink(e nav.Entry, active string) g.Node {
	return A(Href(e.Path),
		g.If(e.Path == active, g.Group([]g.Node{Class("active"), Aria("current", "page")})),
		g.Text(e.Title),
	)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
