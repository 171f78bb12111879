// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package public

import (
	"fmt"
	"net/url"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/marketing"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/markdown"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views"
)

// HomeData feeds the landing page. Any list may be empty.
type HomeData struct {
	Services     []marketing.Service
	Projects     []service.PublicProject
	Testimonials []store.Testimonial
	Posts        []store.Post
}

func Home(p PageInfo, d HomeData) g.Node {
	return Layout(p,
		Div(Class("hero"),
			Div(Class("container"),
				H1(g.Text("Land clearing done right the first time")),
				P(g.Text("Forestry mulching, stump grinding and storm cleanup for homeowners, farms and builders.")),
				A(Class("btn"), Href("/quote"), g.Text("Get a free estimate")),
			),
		),
		section("What we do", serviceCards(d.Services)),
		g.If(len(d.Projects) > 0, section("Recent projects", projectCards(d.Projects))),
		g.If(len(d.Testimonials) > 0, section("What customers say", testimonialList(d.Testimonials))),
		g.If(len(d.Posts) > 0, section("From the blog", postCards(d.Posts))),
	)
}

func Services(p PageInfo, services []marketing.Service) g.Node {
	return Layout(p, section("Our services", serviceCards(services)))
}

func Service(p PageInfo, v service.ServiceView) g.Node {
	s := v.Service
	return Layout(p,
		section(s.Name,
			P(Class("lead"), g.Text(s.Summary)),
			richText(s.Description),
			g.If(s.StartingPrice > 0, P(Strong(g.Textf("Starting at %s %s", views.Money(s.StartingPrice), s.Unit)))),
			A(Class("btn"), Href("/quote?service="+url.QueryEscape(s.Slug)), g.Textf("Get a %s quote", s.Name)),
		),
		g.If(len(v.Projects) > 0, section("Related projects", projectCards(v.Projects))),
		g.If(len(v.Testimonials) > 0, section("Reviews", testimonialList(v.Testimonials))),
	)
}

func Pricing(p PageInfo, tiers []marketing.PricingTier) g.Node {
	return Layout(p,
		section("Pricing",
			P(g.Text("Every property is different. These ranges help you plan; your estimate is free.")),
			Div(Class("grid"),
				g.Group(g.Map(tiers, func(t marketing.PricingTier) g.Node {
					return Div(Class("card"),
						H3(g.Text(t.Name)),
						P(Strong(g.Text(t.Price))),
						P(g.Text(t.Description)),
						Ul(g.Group(g.Map(t.Features, func(f string) g.Node { return Li(g.Text(f)) }))),
					)
				})),
			),
		),
	)
}

func ServiceAreas(p PageInfo, areas []marketing.Area) g.Node {
	return Layout(p,
		section("Where we work",
			Div(Class("grid"),
				g.Group(g.Map(areas, func(a marketing.Area) g.Node {
					return Div(Class("card"),
						H3(A(Href("/service-areas/"+a.Slug), g.Text(a.Name))),
						P(g.Text(a.Blurb)),
					)
				})),
			),
		),
	)
}

func ServiceArea(p PageInfo, v service.AreaView) g.Node {
	a := v.Area
	return Layout(p,
		section(a.Name,
			P(g.Text(a.Blurb)),
			g.If(len(a.Towns) > 0, P(g.Textf("Including %s.", joinTowns(a.Towns)))),
			A(Class("btn"), Href("/quote?county="+url.QueryEscape(a.County)), g.Textf("Request service in %s", a.Name)),
		),
		section("Services available", serviceCards(v.Services)),
		g.If(len(v.Projects) > 0, section("Work in "+a.Name, projectCards(v.Projects))),
		g.If(len(v.Testimonials) > 0, section("Neighbors say", testimonialList(v.Testimonials))),
	)
}

// BlogData is one page of the blog index.
type BlogData struct {
	Posts      service.ListResult[store.Post]
	Category   string
	Categories []string
}

func Blog(p PageInfo, d BlogData) g.Node {
	query := ""
	if d.Category != "" {
		query = "category=" + url.QueryEscape(d.Category)
	}
	return Layout(p,
		section("Blog",
			g.If(len(d.Categories) > 0, Nav(Class("categories"),
				A(Href("/blog"), g.Text("All")),
				g.Group(g.Map(d.Categories, func(c string) g.Node {
					return A(Href("/blog?category="+url.QueryEscape(c)), g.If(c == d.Category, Class("active")), g.Text(c))
				})),
			)),
			g.If(len(d.Posts.Items) == 0, P(g.Text("No posts yet."))),
			postCards(d.Posts.Items),
			views.Pager("/blog", d.Posts.Page, d.Posts.Pages(), query),
		),
	)
}

func Post(p PageInfo, v service.PostView) g.Node {
	post := v.Post
	return Layout(p,
		Article(Class("container"),
			H1(g.Text(post.Title)),
			P(Class("byline"),
				g.If(post.AuthorName != "", g.Textf("By %s · ", post.AuthorName)),
				g.Text(views.Date(post.PublishedAt)),
				g.If(post.Category != "", g.Group([]g.Node{
					g.Text(" · "),
					A(Href("/blog?category="+url.QueryEscape(post.Category)), g.Text(post.Category)),
				})),
			),
			g.If(post.CoverImageURL != "", Img(Src(post.CoverImageURL), Alt(post.Title), g.Attr("loading", "lazy"))),
			g.Raw(v.HTML),
		),
		g.If(len(v.Related) > 0, section("Related posts", postCards(v.Related))),
	)
}

func Projects(p PageInfo, res service.ListResult[service.PublicProject]) g.Node {
	return Layout(p,
		section("Projects",
			g.If(len(res.Items) == 0, P(g.Text("Our portfolio is on its way."))),
			projectCards(res.Items),
			views.Pager("/projects", res.Page, res.Pages(), ""),
		),
	)
}

func Project(p PageInfo, pr service.PublicProject) g.Node {
	return Layout(p,
		Article(Class("container"),
			H1(g.Text(pr.Title)),
			P(Class("byline"), g.Text(pr.County+" County"), g.If(pr.Acreage != "", g.Textf(" · %s acres", pr.Acreage))),
			Div(Class("grid"),
				g.If(pr.BeforeImageURL != "", Img(Src(pr.BeforeImageURL), Alt("Before"), g.Attr("loading", "lazy"))),
				g.If(pr.AfterImageURL != "", Img(Src(pr.AfterImageURL), Alt("After"), g.Attr("loading", "lazy"))),
			),
			richText(pr.Description),
		),
	)
}

// CMSPage renders an editor-built page with its template and blocks.
func CMSPage(p PageInfo, v service.PageView) g.Node {
	return Layout(p,
		Article(Class("container cms-page"),
			g.If(v.Template == nil, H1(g.Text(v.Page.Title))),
			g.Raw(v.HTML),
		),
		g.Group(g.Map(v.Blocks, block)),
	)
}

func block(b store.Block) g.Node {
	return Section(Class("block block-"+b.Type), Div(Class("container"), richText(b.Content)))
}

func NotFound(p PageInfo) g.Node {
	p.NoIndex = true
	return Layout(p,
		section("Page not found",
			P(g.Text("We couldn't find that page. It may have moved.")),
			P(A(Href("/"), g.Text("Back to the home page"))),
		),
	)
}

func ServerError(p PageInfo) g.Node {
	p.NoIndex = true
	return Layout(p,
		section("Something went wrong",
			P(g.Text("Please try again in a moment.")),
		),
	)
}

func serviceCards(services []marketing.Service) g.Node {
	return Div(Class("grid"),
		g.Group(g.Map(services, func(s marketing.Service) g.Node {
			return Div(Class("card"),
				H3(A(Href("/services/"+s.Slug), g.Text(s.Name))),
				P(g.Text(s.Summary)),
				g.If(s.StartingPrice > 0, P(Class("price"), g.Textf("From %s %s", views.Money(s.StartingPrice), s.Unit))),
			)
		})),
	)
}

func projectCards(projects []service.PublicProject) g.Node {
	return Div(Class("grid"),
		g.Group(g.Map(projects, func(pr service.PublicProject) g.Node {
			return Div(Class("card"),
				g.If(pr.AfterImageURL != "", Img(Src(pr.AfterImageURL), Alt(pr.Title), g.Attr("loading", "lazy"))),
				H3(A(Href("/projects/"+pr.Slug), g.Text(pr.Title))),
				P(g.Text(pr.County+" County")),
			)
		})),
	)
}

func postCards(posts []store.Post) g.Node {
	return Div(Class("grid"),
		g.Group(g.Map(posts, func(post store.Post) g.Node {
			excerpt := post.Excerpt
			if excerpt == "" {
				excerpt = markdown.Excerpt(post.Content, 160)
			}
			return Div(Class("card"),
				H3(A(Href("/blog/"+post.Slug), g.Text(post.Title))),
				P(Class("byline"), g.Text(views.Date(post.PublishedAt))),
				P(g.Text(excerpt)),
			)
		})),
	)
}

func testimonialList(items []store.Testimonial) g.Node {
	return Div(Class("grid"),
		g.Group(g.Map(items, func(t store.Testimonial) g.Node {
			return Div(Class("card testimonial"),
				Span(Class("rating"), Aria("label", fmt.Sprintf("%d out of 5", t.Rating)), g.Text(stars(t.Rating))),
				BlockQuote(g.Text(t.Quote)),
				P(g.Text("— "+t.AuthorName), g.If(t.Location != "", g.Text(", "+t.Location))),
			)
		})),
	)
}

func joinTowns(towns []string) string {
	switch len(towns) {
	case 0:
		return ""
	case 1:
		return towns[0]
	}
	out := ""
	for i, t := range towns {
		switch {
		case i == 0:
			out = t
		case i == len(towns)-1:
			out += " and " + t
		default:
			out += ", " + t
		}
	}
	return out
}
