// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alexedwards/scs/v2"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/access"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/logging"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/session"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/util"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for user data.
const (
	ContextKeyUser ContextKey = "user"
)

// UserLoader fetches the staff account behind a session.
type UserLoader interface {
	Get(ctx context.Context, id int64) (store.User, error)
}

// LoadUser puts the session's user into the request context. A session
// pointing at a deleted user is destroyed and the request continues anonymously.
func LoadUser(sm *scs.SessionManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := session.UserID(r.Context(), sm)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.Get(r.Context(), userID)
			if err != nil {
				slog.Warn("session user not loadable", "category", model.EventCategoryAuth, "user_id", userID, "error", err)
				_ = sm.Destroy(r.Context())
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			ctx = service.WithActor(ctx, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *store.User {
	user, ok := r.Context().Value(ContextKeyUser).(store.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// GetRole returns the caller's role, or "" when anonymous.
func GetRole(r *http.Request) model.Role {
	if user := GetUser(r); user != nil {
		return model.Role(user.Role)
	}
	return ""
}

// Denier renders an access failure. The error reports whether the caller
// was authenticated.
type Denier func(w http.ResponseWriter, r *http.Request, err *model.AuthError)

// PathFunc maps a request to the admin nav path that guards it.
type PathFunc func(r *http.Request) string

// RequestPath guards a request by its own URL path.
func RequestPath(r *http.Request) string {
	return r.URL.Path
}

// NavPath guards every request with one fixed nav path. Used for API
// resources whose URLs do not mirror the admin tree.
func NavPath(p string) PathFunc {
	return func(*http.Request) string { return p }
}

// AccessConfig wires RequireAccess.
type AccessConfig struct {
	Policy *access.Policy
	Path   PathFunc     // defaults to RequestPath
	Deny   Denier
	Logger *slog.Logger // defaults to slog.Default()
}

// RequireAccess consults the policy for the caller's role. Anonymous callers
// are denied before any role check. Forbidden requests are logged at WARN,
// which the event log handler records as an access event.
func RequireAccess(cfg AccessConfig) func(http.Handler) http.Handler {
	if cfg.Path == nil {
		cfg.Path = RequestPath
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			target := cfg.Path(r)

			var authErr *model.AuthError
			if !errors.As(cfg.Policy.Check(GetRole(r), target), &authErr) {
				next.ServeHTTP(w, r)
				return
			}

			if authErr.Authenticated {
				logger := cfg.Logger
				if logger == nil {
					logger = slog.Default()
				}
				logger.Warn("access denied",
					logging.KeyCategory, model.EventCategoryAccess,
					logging.KeyUserID, user.ID,
					logging.KeyIP, r.RemoteAddr,
					logging.KeyURL, r.URL.Path,
					"method", r.Method,
					"nav_path", target,
					"role", user.Role,
				)
			}
			cfg.Deny(w, r, authErr)
		})
	}
}

// LoginURL returns the login page URL that returns to next afterwards.
func LoginURL(next string) string {
	if next == "" || next == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// HTMLDenier sends anonymous callers to the login page with a 303 and
// renders forbidden for authenticated callers without access.
func HTMLDenier(forbidden http.Handler) Denier {
	return func(w http.ResponseWriter, r *http.Request, err *model.AuthError) {
		if !err.Authenticated {
			http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		forbidden.ServeHTTP(w, r)
	}
}

// SafeNext accepts only local absolute paths as a post-login destination.
func SafeNext(next string) string {
	if !util.IsLocalPath(next) {
		return "/admin"
	}
	return next
}
