// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session wires the scs session manager and the keys stored in it.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/nav"
)

// CookieName is the session cookie.
const CookieName = "bw_session"

// Session keys.
const (
	KeyUserID        = "user_id"
	KeyNavExpansion  = "nav_expansion"
	KeyFlash         = "flash"
	KeyFlashType     = "flash_type"
	KeyLoginRedirect = "login_next"
)

// Lifetime of an admin session.
const Lifetime = 24 * time.Hour

// New creates a session manager backed by the sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = Lifetime
	sm.Cookie.Name = CookieName
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev

	return sm
}

// Login renews the token to prevent fixation and stores the user id.
func Login(ctx context.Context, sm *scs.SessionManager, userID int64) error {
	if err := sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	sm.Put(ctx, KeyUserID, userID)
	return nil
}

// Logout destroys the session.
func Logout(ctx context.Context, sm *scs.SessionManager) error {
	return sm.Destroy(ctx)
}

// UserID returns the logged-in user id, or 0.
func UserID(ctx context.Context, sm *scs.SessionManager) int64 {
	return sm.GetInt64(ctx, KeyUserID)
}

// Expansion returns the admin nav groups the user has explicitly opened or closed.
func Expansion(ctx context.Context, sm *scs.SessionManager) nav.Expansion {
	if x, ok := sm.Get(ctx, KeyNavExpansion).(nav.Expansion); ok {
		return x.Clone()
	}
	return nav.Expansion{}
}

// ToggleGroup flips group relative to how it renders at current, stores the
// choice and returns the new open state.
func ToggleGroup(ctx context.Context, sm *scs.SessionManager, group nav.Entry, current string) bool {
	x := Expansion(ctx, sm)
	open := x.Toggle(group, current)
	sm.Put(ctx, KeyNavExpansion, x)
	return open
}

// SetFlash queues a one-shot message for the next rendered page.
func SetFlash(ctx context.Context, sm *scs.SessionManager, kind, msg string) {
	sm.Put(ctx, KeyFlash, msg)
	sm.Put(ctx, KeyFlashType, kind)
}

// PopFlash returns and clears the queued message.
func PopFlash(ctx context.Context, sm *scs.SessionManager) (msg, kind string) {
	msg = sm.PopString(ctx, KeyFlash)
	kind = sm.PopString(ctx, KeyFlashType)
	if msg != "" && kind == "" {
		kind = "info"
	}
	return msg, kind
}
