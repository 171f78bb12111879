// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/access"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/nav"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/session"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/testutil"
)

func withUser(r *http.Request, u store.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeyUser, u))
}

func TestUserAccessors(t *testing.T) {
	anon := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUser(anon) != nil || GetUserID(anon) != 0 || GetRole(anon) != "" {
		t.Error("anonymous request should carry no user")
	}

	r := withUser(anon, store.User{ID: 9, Email: "crew@example.com", Role: "sales"})
	if u := GetUser(r); u == nil || u.Email != "crew@example.com" {
		t.Fatalf("GetUser = %v", u)
	}
	if GetUserID(r) != 9 || GetRole(r) != model.RoleSales {
		t.Errorf("id/role = %d/%q", GetUserID(r), GetRole(r))
	}
}

type stubUsers map[int64]store.User

func (s stubUsers) Get(_ context.Context, id int64) (store.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return store.User{}, sql.ErrNoRows
}

func TestLoadUser(t *testing.T) {
	sm := session.New(testutil.TestDB(t), true)
	users := stubUsers{1: {ID: 1, Email: "owner@example.com", Role: "super_admin"}}

	mux := http.NewServeMux()
	mux.HandleFunc("/login/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := int64(1)
		if r.PathValue("id") != "1" {
			id = 2
		}
		_ = session.Login(r.Context(), sm, id)
	})
	mux.Handle("/me", LoadUser(sm, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := GetUser(r); u != nil {
			if actor := service.ActorFrom(r.Context()); actor == nil || *actor != u.ID {
				t.Errorf("actor = %v, want %d", actor, u.ID)
			}
			_, _ = w.Write([]byte(u.Email))
			return
		}
		_, _ = w.Write([]byte("anonymous"))
	})))
	h := sm.LoadAndSave(mux)

	login := func(id string) *http.Cookie {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login/"+id, nil))
		for _, c := range rec.Result().Cookies() {
			if c.Name == session.CookieName {
				return c
			}
		}
		t.Fatal("no session cookie")
		return nil
	}
	me := func(c *http.Cookie) string {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if c != nil {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Body.String()
	}

	if got := me(nil); got != "anonymous" {
		t.Errorf("no cookie: %q", got)
	}
	if got := me(login("1")); got != "owner@example.com" {
		t.Errorf("valid session: %q", got)
	}
	if got := me(login("2")); got != "anonymous" {
		t.Errorf("deleted user: %q", got)
	}
}

func TestRequireAccess(t *testing.T) {
	policy := access.New(nav.Default())

	tests := []struct {
		name       string
		role       string
		path       string
		wantStatus int
		wantLog    bool
	}{
		{"anonymous redirected to login", "", "/admin/leads", http.StatusSeeOther, false},
		{"sales reaches leads", "sales", "/admin/leads", http.StatusOK, false},
		{"sales blocked from cms", "sales", "/admin/cms/pages", http.StatusForbidden, true},
		{"editor reaches cms child", "editor", "/admin/cms/pages/12", http.StatusOK, false},
		{"editor blocked from users", "editor", "/admin/users", http.StatusForbidden, true},
		{"every role reaches dashboard", "sales", "/admin", http.StatusOK, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			called := false
			forbidden := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			})
			h := RequireAccess(AccessConfig{
				Policy: policy,
				Deny:   HTMLDenier(forbidden),
				Logger: slog.New(slog.NewTextHandler(&logs, nil)),
			})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.role != "" {
				req = withUser(req, store.User{ID: 5, Role: tt.role})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != (tt.wantStatus == http.StatusOK) {
				t.Errorf("handler called = %v", called)
			}
			if tt.wantStatus == http.StatusSeeOther {
				if loc := rec.Header().Get("Location"); loc != "/login?next=%2Fadmin%2Fleads" {
					t.Errorf("Location = %q", loc)
				}
			}
			logged := strings.Contains(logs.String(), "access denied")
			if logged != tt.wantLog {
				t.Errorf("logged = %v, want %v (%s)", logged, tt.wantLog, logs.String())
			}
			if tt.wantLog && !strings.Contains(logs.String(), "category=access") {
				t.Errorf("log missing category: %s", logs.String())
			}
		})
	}
}

func TestRequireAccess_NavPath(t *testing.T) {
	var got *model.AuthError
	h := RequireAccess(AccessConfig{
		Policy: access.New(nav.Default()),
		Path:   NavPath("/admin/users"),
		Deny: func(w http.ResponseWriter, r *http.Request, err *model.AuthError) {
			got = err
			w.WriteHeader(http.StatusForbidden)
		},
		Logger: testutil.DiscardLogger(),
	})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil), store.User{ID: 2, Role: "admin"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil || !errors.Is(got, model.ErrForbidden) || got.Path != "/admin/users" {
		t.Errorf("deny error = %+v", got)
	}
}

func TestLoginURL(t *testing.T) {
	tests := map[string]string{
		"":                 "/login",
		"/":                "/login",
		"/admin/leads?x=1": "/login?next=%2Fadmin%2Fleads%3Fx%3D1",
	}
	for next, want := range tests {
		if got := LoginURL(next); got != want {
			t.Errorf("LoginURL(%q) = %q, want %q", next, got, want)
		}
	}
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                     "/admin",
		"/admin/crm/projects":  "/admin/crm/projects",
		"//evil.example":       "/admin",
		"/\\evil.example":      "/admin",
		"https://evil.example": "/admin",
		"/":                    "/",
	}
	for next, want := range tests {
		if got := SafeNext(next); got != want {
			t.Errorf("SafeNext(%q) = %q, want %q", next, got, want)
		}
	}
}
