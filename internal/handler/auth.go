// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/middleware"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/session"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views/admin"
)

// LoginForm renders the staff sign-in page. Signed-in users go straight on.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	next := middleware.SafeNext(r.URL.Query().Get("next"))
	if middleware.GetUser(r) != nil {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}

	ctx := r.Context()
	msg, kind := session.PopFlash(ctx, h.sessions)
	if stored := h.sessions.PopString(ctx, session.KeyLoginRedirect); stored != "" && r.URL.Query().Get("next") == "" {
		next = middleware.SafeNext(stored)
	}
	views.Render(w, http.StatusOK, admin.Login(admin.LoginData{
		Next:      next,
		Flash:     msg,
		FlashType: kind,
	}))
}

// Login checks credentials. Failures redirect back to the form with a
// flash. The per-IP limit runs as middleware; the account lockout runs here.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.loginFailed(w, r, "", "Invalid form data.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.PostFormValue("email")))
	password := r.PostFormValue("password")
	next := middleware.SafeNext(r.PostFormValue("next"))

	if email == "" || password == "" {
		h.loginFailed(w, r, next, "Email and password are required.")
		return
	}

	if h.protection != nil {
		if locked, remaining := h.protection.IsAccountLocked(email); locked {
			h.logAuth(r, model.EventLevelWarning, "Login attempt on locked account", nil, map[string]any{"email": email})
			h.loginFailed(w, r, next, fmt.Sprintf("Account locked. Try again in %s.", formatDuration(remaining)))
			return
		}
	}

	user, err := h.svc.Users.Authenticate(ctx, email, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.Error("login failed", "error", err)
			h.loginFailed(w, r, next, "Sign-in is unavailable right now.")
			return
		}
		h.logAuth(r, model.EventLevelWarning, "Login failed: invalid credentials", nil, map[string]any{"email": email})
		h.loginFailed(w, r, next, h.failureMessage(r, email))
		return
	}

	if h.protection != nil {
		h.protection.RecordSuccessfulLogin(email)
	}
	if err := session.Login(ctx, h.sessions, user.ID); err != nil {
		h.logger.Error("session renewal error", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID, "email", user.Email)
	h.logAuth(r, model.EventLevelInfo, "User logged in", &user.ID, map[string]any{"email": user.Email})
	session.SetFlash(ctx, h.sessions, FlashSuccess, "Welcome back, "+user.Name+".")
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// failureMessage records the failed attempt and words the response.
func (h *Handler) failureMessage(r *http.Request, email string) string {
	const generic = "Invalid email or password."
	if h.protection == nil {
		return generic
	}
	if locked, d := h.protection.RecordFailedAttempt(email); locked {
		h.logAuth(r, model.EventLevelWarning, "Account locked due to failed attempts", nil, map[string]any{"email": email, "duration": d.String()})
		return fmt.Sprintf("Too many failed attempts. Try again in %s.", formatDuration(d))
	}
	if n := h.protection.GetRemainingAttempts(email); n > 0 && n <= 3 {
		return fmt.Sprintf("%s %d attempts remaining.", generic, n)
	}
	return generic
}

func (h *Handler) loginFailed(w http.ResponseWriter, r *http.Request, next, msg string) {
	session.SetFlash(r.Context(), h.sessions, FlashError, msg)
	if next != "" && next != "/admin" {
		h.sessions.Put(r.Context(), session.KeyLoginRedirect, next)
	}
	http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
}

// Logout ends the session. POST only so a cross-site link cannot sign staff out.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if err := session.Logout(r.Context(), h.sessions); err != nil {
		h.logger.Error("session destroy error", "error", err)
	}
	if userID != 0 {
		h.logAuth(r, model.EventLevelInfo, "User logged out", &userID, nil)
	}
	http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
}

func (h *Handler) logAuth(r *http.Request, level, msg string, userID *int64, meta map[string]any) {
	if err := h.svc.Events.LogAuth(r.Context(), level, msg, userID, middleware.ClientIP(r), meta); err != nil {
		h.logger.Warn("failed to record auth event", "error", err)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
