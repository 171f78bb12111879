// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
)

type stubResolver struct {
	rules map[string]service.Redirection
	err   error
	calls int
}

func (s *stubResolver) ResolveRedirect(_ context.Context, path string) (service.Redirection, bool, error) {
	s.calls++
	if s.err != nil {
		return service.Redirection{}, false, s.err
	}
	rd, ok := s.rules[path]
	return rd, ok, nil
}

func TestRedirects(t *testing.T) {
	resolver := &stubResolver{rules: map[string]service.Redirection{
		"/old-services": {To: "/services", Code: http.StatusMovedPermanently},
		"/promo":        {To: "/pricing?src=promo", Code: http.StatusFound},
		"/admin":        {To: "/nope", Code: http.StatusFound},
	}}
	h := Redirects(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name     string
		method   string
		target   string
		wantCode int
		wantLoc  string
	}{
		{"permanent", http.MethodGet, "/old-services", http.StatusMovedPermanently, "/services"},
		{"query preserved", http.MethodGet, "/old-services?utm=fb", http.StatusMovedPermanently, "/services?utm=fb"},
		{"query appended", http.MethodGet, "/promo?a=1", http.StatusFound, "/pricing?src=promo&a=1"},
		{"no rule", http.MethodGet, "/blog", http.StatusTeapot, ""},
		{"admin exempt", http.MethodGet, "/admin", http.StatusTeapot, ""},
		{"post passes", http.MethodPost, "/old-services", http.StatusTeapot, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if loc := rec.Header().Get("Location"); loc != tt.wantLoc {
				t.Errorf("Location = %q, want %q", loc, tt.wantLoc)
			}
		})
	}
}

func TestRedirects_LookupErrorFallsThrough(t *testing.T) {
	resolver := &stubResolver{err: errors.New("db down")}
	h := Redirects(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))
	if rec.Code != http.StatusOK || resolver.calls != 1 {
		t.Errorf("status = %d, calls = %d", rec.Code, resolver.calls)
	}
}

func TestIsRedirectExempt(t *testing.T) {
	tests := map[string]bool{
		"/api/public/posts": true,
		"/uploads/a.png":    true,
		"/health":           true,
		"/login":            true,
		"/administrator":    false,
		"/healthy-land":     false,
		"/":                 false,
	}
	for path, want := range tests {
		if got := isRedirectExempt(path); got != want {
			t.Errorf("isRedirectExempt(%q) = %v, want %v", path, got, want)
		}
	}
}
