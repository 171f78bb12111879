// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveWithHeaders(cfg SecurityHeadersConfig, path string) http.Header {
	h := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Header()
}

func TestSecurityHeaders_Production(t *testing.T) {
	h := serveWithHeaders(DefaultSecurityHeadersConfig(false), "/")

	tests := map[string]string{
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
		"X-Frame-Options":           "SAMEORIGIN",
		"X-Content-Type-Options":    "nosniff",
		"Referrer-Policy":           "strict-origin-when-cross-origin",
	}
	for name, want := range tests {
		if got := h.Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}

	csp := h.Get("Content-Security-Policy")
	if !strings.HasPrefix(csp, "default-src 'self'; script-src 'self'; ") {
		t.Errorf("CSP = %q", csp)
	}
	if strings.Contains(csp, "unsafe-eval") {
		t.Error("production CSP must not allow unsafe-eval")
	}
}

func TestSecurityHeaders_DevelopmentSkipsHSTS(t *testing.T) {
	h := serveWithHeaders(DefaultSecurityHeadersConfig(true), "/")
	if got := h.Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS = %q in development", got)
	}
	if !strings.Contains(h.Get("Content-Security-Policy"), "'unsafe-eval'") {
		t.Error("development CSP should allow unsafe-eval")
	}
}

func TestSecurityHeaders_ExcludePaths(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	cfg.ExcludePaths = []string{"/uploads/"}

	if got := serveWithHeaders(cfg, "/uploads/thumb/a.jpg").Get("Content-Security-Policy"); got != "" {
		t.Errorf("excluded path got CSP %q", got)
	}
	if got := serveWithHeaders(cfg, "/blog").Get("Content-Security-Policy"); got == "" {
		t.Error("non-excluded path missing CSP")
	}
}

func TestSecurityHeaders_Preload(t *testing.T) {
	cfg := SecurityHeadersConfig{HSTSMaxAge: 600, HSTSPreload: true}
	if got := serveWithHeaders(cfg, "/").Get("Strict-Transport-Security"); got != "max-age=600; preload" {
		t.Errorf("HSTS = %q", got)
	}
}

func TestBuildCSP(t *testing.T) {
	got := buildCSP(map[string]string{
		"worker-src":  "'self'",
		"img-src":     "*",
		"default-src": "'none'",
		"media-src":   "'self'",
	})
	want := "default-src 'none'; img-src *; media-src 'self'; worker-src 'self'"
	if got != want {
		t.Errorf("buildCSP = %q, want %q", got, want)
	}
}

func TestBuildPermissionsPolicy(t *testing.T) {
	got := buildPermissionsPolicy(map[string]string{"usb": "()", "camera": "()", "payment": "(self)"})
	if got != "camera=(), payment=(self), usb=()" {
		t.Errorf("got %q", got)
	}
}
