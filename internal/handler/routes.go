// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers the public site, the quote form, login and logout on r.
// quoteLimit may be nil.
func (h *Handler) Routes(r chi.Router, quoteLimit func(http.Handler) http.Handler) {
	r.Get(RouteRoot, h.Home)
	r.Get(RouteServices, h.Services)
	r.Get(RouteServices+RouteParamSlug, h.Service)
	r.Get(RoutePricing, h.Pricing)
	r.Get(RouteServiceAreas, h.ServiceAreas)
	r.Get(RouteServiceAreas+RouteParamSlug, h.ServiceArea)
	r.Get(RouteBlog, h.Blog)
	r.Get(RouteBlog+RouteParamSlug, h.Post)
	r.Get(RouteProjects, h.Projects)
	r.Get(RouteProjects+RouteParamSlug, h.Project)

	r.Get(RouteQuote, h.QuoteForm)
	if quoteLimit != nil {
		r.With(quoteLimit).Post(RouteQuote, h.SubmitQuote)
	} else {
		r.Post(RouteQuote, h.SubmitQuote)
	}

	r.Get(RouteSitemap, h.Sitemap)
	r.Get(RouteRobots, h.Robots)

	r.Group(func(r chi.Router) {
		if h.protection != nil {
			r.Use(h.protection.Middleware())
		}
		r.Get(RouteLogin, h.LoginForm)
		r.Post(RouteLogin, h.Login)
	})
	r.Post(RouteLogout, h.Logout)

	r.Get(RouteParamSlug, h.CMSPage)
	r.NotFound(h.NotFound)
}

// HealthRoutes registers the probes on r.
func (hh *HealthHandler) Routes(r chi.Router) {
	r.Get("/health", hh.Health)
	r.Get("/health/live", hh.Liveness)
	r.Get("/health/ready", hh.Readiness)
}
