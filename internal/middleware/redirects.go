// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
)

// RedirectResolver looks up the redirect rule for a public path.
type RedirectResolver interface {
	ResolveRedirect(ctx context.Context, path string) (service.Redirection, bool, error)
}

// redirectExempt are prefixes never subject to redirect rules.
var redirectExempt = []string{"/admin", "/api", "/uploads", "/static", "/login", "/logout", "/health"}

func isRedirectExempt(path string) bool {
	for _, p := range redirectExempt {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Redirects applies stored redirect rules to public GET and HEAD requests
// before routing. Lookup failures are logged and the request proceeds.
func Redirects(resolver RedirectResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if (r.Method != http.MethodGet && r.Method != http.MethodHead) || isRedirectExempt(path) {
				next.ServeHTTP(w, r)
				return
			}

			rd, ok, err := resolver.ResolveRedirect(r.Context(), path)
			if err != nil {
				slog.Error("redirect lookup failed", "path", path, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			target := rd.To
			if r.URL.RawQuery != "" {
				if strings.Contains(target, "?") {
					target += "&" + r.URL.RawQuery
				} else {
					target += "?" + r.URL.RawQuery
				}
			}

			slog.Debug("redirect matched", "source", path, "target", target, "status", rd.Code)
			http.Redirect(w, r, target, rd.Code)
		})
	}
}
