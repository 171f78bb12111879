// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/access"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/config"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/handler"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/handler/api"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/middleware"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/nav"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/telemetry"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/web"
)

// staticMaxAge is the browser cache lifetime for assets and uploads.
const staticMaxAge = 7 * 24 * time.Hour

// publicQuotePath is the cross-origin quote endpoint; CORS guards it instead of CSRF.
const publicQuotePath = "/api/public/quote"

// exportPath streams CSV and is exempt from the request timeout.
const exportPath = "/api/admin/leads/export"

type routerDeps struct {
	cfg        *config.Config
	db         *sql.DB
	svc        *service.Services
	sessions   *scs.SessionManager
	protection *middleware.LoginProtection
	logger     *slog.Logger
}

func newRouter(d routerDeps) (http.Handler, error) {
	cfg := d.cfg
	tree := nav.Default()
	policy := access.New(tree)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.Tracing {
		r.Use(telemetry.Middleware("brushwhacker"))
	}
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(cfg.RequestTimeout, exportPath))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.Redirects(d.svc.Public))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(d.sessions.LoadAndSave)
	r.Use(middleware.SkipCSRF(publicQuotePath))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.BaseURL, cfg.IsDevelopment())))
	r.Use(middleware.LoadUser(d.sessions, d.svc.Users))

	htmlH := handler.New(handler.Config{
		Services:        d.svc,
		Policy:          policy,
		Tree:            tree,
		Sessions:        d.sessions,
		LoginProtection: d.protection,
		Logger:          d.logger,
		BaseURL:         cfg.BaseURL,
		IsDev:           cfg.IsDevelopment(),
	})
	apiH := api.NewHandler(api.Config{
		Services: d.svc,
		Policy:   policy,
		Tree:     tree,
		Sessions: d.sessions,
		Logger:   d.logger,
	})

	// One limiter shared by the form and the JSON endpoint.
	quoteLimit := middleware.QuoteRateLimit(cfg.QuoteRateLimit)

	r.Mount("/api/admin", apiH.AdminRoutes())
	r.Mount("/api/public", apiH.PublicRoutes(api.PublicConfig{
		AllowedOrigins: cfg.CORSOrigins,
		QuoteLimit:     quoteLimit,
	}))
	r.Mount("/admin", htmlH.AdminRoutes())

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	r.With(middleware.StaticCache(staticMaxAge)).
		Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	uploads := http.FileServer(filesOnly{http.Dir(cfg.UploadsDir)})
	r.With(middleware.StaticCache(staticMaxAge)).
		Handle("/uploads/*", http.StripPrefix("/uploads/", uploads))

	handler.NewHealthHandler(d.db, cfg.UploadsDir).Routes(r)
	htmlH.Routes(r, quoteLimit)

	return r, nil
}

// filesOnly serves regular files and hides directories.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := file.Stat()
	if err != nil || st.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
