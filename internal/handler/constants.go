// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	RouteRoot         = "/"
	RouteParamSlug    = "/{slug}"
	RouteServices     = "/services"
	RoutePricing      = "/pricing"
	RouteServiceAreas = "/service-areas"
	RouteBlog         = "/blog"
	RouteProjects     = "/projects"
	RouteQuote        = "/quote"

	RouteLogin  = "/login"
	RouteLogout = "/logout"

	RouteNavToggle = "/nav/toggle"

	RouteSitemap = "/sitemap.xml"
	RouteRobots  = "/robots.txt"
)

// Flash kinds rendered by views.Flash.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// workspaceAPI maps an admin section to the JSON resource that drives it.
var workspaceAPI = map[string]string{
	"/admin/leads":         "/api/admin/leads",
	"/admin/crm/projects":  "/api/admin/projects",
	"/admin/crm/pipeline":  "/api/admin/leads/stats",
	"/admin/cms/pages":     "/api/admin/pages",
	"/admin/cms/templates": "/api/admin/templates",
	"/admin/cms/blocks":    "/api/admin/blocks",
	"/admin/cms/posts":     "/api/admin/posts",
	"/admin/cms/media":     "/api/admin/media",
	"/admin/cms/themes":    "/api/admin/themes",
	"/admin/cms/redirects": "/api/admin/redirects",
	"/admin/testimonials":  "/api/admin/testimonials",
	"/admin/branding":      "/api/admin/themes",
	"/admin/users":         "/api/admin/users",
}
