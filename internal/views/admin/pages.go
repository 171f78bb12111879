// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package admin

import (
	"strings"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/nav"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views"
)

// LoginData feeds the login form.
type LoginData struct {
	Email     string
	Next      string
	Flash     string
	FlashType string
}

func Login(d LoginData) g.Node {
	return Doctype(
		HTML(Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Meta(Name("robots"), Content("noindex")),
				TitleEl(g.Text(views.PageTitle("Sign in"))),
				Link(Rel("stylesheet"), Href("/static/css/admin.css")),
			),
			Body(
				Div(Class("login"),
					H1(g.Text(views.SiteName+" staff")),
					views.Flash(d.Flash, d.FlashType),
					g.El("form", Method("post"), Action("/login"),
						Input(Type("hidden"), Name("next"), Value(d.Next)),
						g.El("label", For("email"), g.Text("Email")),
						Input(Type("email"), ID("email"), Name("email"), Value(d.Email), Required(), AutoComplete("username")),
						g.El("label", For("password"), g.Text("Password")),
						Input(Type("password"), ID("password"), Name("password"), Required(), AutoComplete("current-password")),
						Button(Type("submit"), g.Text("Sign in")),
					),
				),
			),
		),
	)
}

// DashboardData summarizes the pipeline for the landing page.
type DashboardData struct {
	Stats  *service.LeadStats // nil when the role cannot see leads
	Recent []store.Lead
}

func Dashboard(pc PageContext, d DashboardData) g.Node {
	return Layout(pc,
		g.If(d.Stats != nil, g.Group([]g.Node{
			H2(g.Text("Lead pipeline")),
			Div(Class("stats"),
				Div(Class("stat"), Div(Class("count"), g.Textf("%d", statsTotal(d.Stats))), g.Text("Total")),
				g.Group(g.Map(statusCounts(d.Stats), func(sc service.StatusCount) g.Node {
					return Div(Class("stat"), Div(Class("count"), g.Textf("%d", sc.Count)), g.Text(string(sc.Status)))
				})),
			),
		})),
		g.If(len(d.Recent) > 0, g.Group([]g.Node{
			H2(g.Text("Newest leads")),
			Table(
				THead(Tr(Th(g.Text("Reference")), Th(g.Text("Name")), Th(g.Text("County")), Th(g.Text("Services")), Th(g.Text("Status")), Th(g.Text("Received")))),
				TBody(g.Group(g.Map(d.Recent, func(l store.Lead) g.Node {
					return Tr(
						Td(A(Href("/admin/leads?ref="+l.Reference), g.Text(l.Reference))),
						Td(g.Text(l.Name)),
						Td(g.Text(l.County)),
						Td(g.Text(strings.Join(l.Services, ", "))),
						Td(g.Text(l.Status)),
						Td(g.Text(views.Date(&l.CreatedAt))),
					)
				}))),
			),
		})),
		g.If(d.Stats == nil, P(g.Text("Use the sidebar to manage content."))),
	)
}

// Workspace is the shell for a nav section. Its body is driven by the
// admin JSON API mounted at api.
func Workspace(pc PageContext, entry nav.Entry, api string) g.Node {
	return Layout(pc,
		Div(Class("workspace"), g.Attr("data-resource", api),
			g.If(entry.IsGroup(), Ul(g.Group(g.Map(entry.VisibleChildren(pc.Role()), func(e nav.Entry) g.Node {
				return Li(A(Href(e.Path), g.Text(e.Title)))
			})))),
			g.If(!entry.IsGroup(), P(g.Textf("Manage %s.", strings.ToLower(entry.Title)))),
		),
	)
}

func Forbidden(pc PageContext) g.Node {
	pc.Title = "Insufficient permissions"
	return Layout(pc,
		P(g.Text("Your role does not have access to this section.")),
		P(A(Href(nav.AdminRoot), g.Text("Back to the dashboard"))),
	)
}

func NotFound(pc PageContext) g.Node {
	pc.Title = "Not found"
	return Layout(pc,
		P(g.Text("There is no admin section at this address.")),
		P(A(Href(nav.AdminRoot), g.Text("Back to the dashboard"))),
	)
}

func statsTotal(s *service.LeadStats) int64 {
	if s == nil {
		return 0
	}
	return s.Total
}

func statusCounts(s *service.LeadStats) []service.StatusCount {
	if s == nil {
		return nil
	}
	return s.ByStatus
}
