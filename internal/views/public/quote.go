// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package public

import (
	"slices"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/marketing"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
)

// timelineOrder is the display order of model.Timelines.
var timelineOrder = []string{"asap", "within_month", "within_quarter", "flexible"}

// QuoteFormData re-renders the form with the visitor's input and field errors.
type QuoteFormData struct {
	Values   service.QuoteRequest
	Errors   map[string]string
	Services []marketing.Service
	Areas    []marketing.Area
}

func QuoteForm(p PageInfo, d QuoteFormData) g.Node {
	v := d.Values
	return Layout(p,
		section("Request a free estimate",
			g.If(len(d.Errors) > 0, Div(Class("flash error"), Role("alert"), g.Text("Please fix the highlighted fields."))),
			g.El("form", Method("post"), Action("/quote"), g.Attr("novalidate"),
				field("name", "Your name", d.Errors,
					Input(Type("text"), ID("name"), Name("name"), Value(v.Name), Required(), AutoComplete("name")),
				),
				field("email", "Email", d.Errors,
					Input(Type("email"), ID("email"), Name("email"), Value(v.Email), AutoComplete("email")),
				),
				field("phone", "Phone", d.Errors,
					Input(Type("tel"), ID("phone"), Name("phone"), Value(v.Phone), AutoComplete("tel")),
				),
				field("county", "County", d.Errors,
					Select(ID("county"), Name("county"), Required(),
						Option(Value(""), g.Text("Choose a county")),
						g.Group(g.Map(d.Areas, func(a marketing.Area) g.Node {
							return Option(Value(a.County), g.If(a.County == v.County, Selected()), g.Text(a.Name))
						})),
					),
				),
				Div(Class("form-row checkboxes"),
					Span(Class("label"), g.Text("Services needed")),
					g.Group(g.Map(d.Services, func(s marketing.Service) g.Node {
						return g.El("label",
							Input(Type("checkbox"), Name("services"), Value(s.Slug), g.If(slices.Contains(v.Services, s.Slug), Checked())),
							g.Text(" "+s.Name),
						)
					})),
					fieldError("services", d.Errors),
				),
				field("timeline", "Timeline", d.Errors,
					Select(ID("timeline"), Name("timeline"), Required(),
						Option(Value(""), g.Text("When do you need the work done?")),
						g.Group(g.Map(timelineOrder, func(key string) g.Node {
							return Option(Value(key), g.If(key == v.Timeline, Selected()), g.Text(model.Timelines[key]))
						})),
					),
				),
				field("acreage", "Approximate acreage", d.Errors,
					Input(Type("text"), ID("acreage"), Name("acreage"), Value(v.Acreage)),
				),
				field("message", "Tell us about the property", d.Errors,
					Textarea(ID("message"), Name("message"), Rows("5"), g.Text(v.Message)),
				),
				Button(Type("submit"), Class("btn"), g.Text("Send request")),
			),
		),
	)
}

func QuoteThanks(p PageInfo, reference string) g.Node {
	p.NoIndex = true
	return Layout(p,
		section("Thanks, we got your request",
			Div(Class("notice"),
				P(g.Text("We'll be in touch within one business day.")),
				P(g.Text("Your reference number is "), Strong(g.Text(reference)), g.Text(".")),
			),
		),
	)
}

func field(name, label string, errs map[string]string, control g.Node) g.Node {
	return Div(Class("form-row"),
		g.El("label", For(name), g.Text(label)),
		control,
		fieldError(name, errs),
	)
}

func fieldError(name string, errs map[string]string) g.Node {
	msg, ok := errs[name]
	if !ok {
		return nil
	}
	return Span(Class("error"), g.Text(msg))
}
