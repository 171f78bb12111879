// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var testAuthKey = []byte("12345678901234567890123456789012")

func TestDefaultCSRFConfig(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		isDev   bool
		want    []string
	}{
		{"production base url", "https://brushwhacker.example", false, []string{"brushwhacker.example"}},
		{"development adds localhost", "http://localhost:8080", true, []string{"localhost:8080", "127.0.0.1:8080"}},
		{"unparseable base url", "::", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCSRFConfig(testAuthKey, tt.baseURL, tt.isDev)
			if len(cfg.TrustedOrigins) != len(tt.want) {
				t.Fatalf("TrustedOrigins = %v, want %v", cfg.TrustedOrigins, tt.want)
			}
			for i, o := range cfg.TrustedOrigins {
				if o != tt.want[i] {
					t.Errorf("TrustedOrigins[%d] = %q, want %q", i, o, tt.want[i])
				}
				if strings.HasPrefix(o, "http") {
					t.Errorf("origin %q must be host only", o)
				}
			}
		})
	}
}

func TestCSRF_CrossSitePostRejected(t *testing.T) {
	called := false
	h := CSRF(DefaultCSRFConfig(testAuthKey, "https://brushwhacker.example", false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	tests := []struct {
		name     string
		path     string
		wantJSON bool
	}{
		{"html form", "/quote", false},
		{"admin api", "/api/admin/pages", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req.Header.Set("Sec-Fetch-Site", "cross-site")
			req.Header.Set("Origin", "https://evil.example")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", rec.Code)
			}
			if called {
				t.Error("handler must not run")
			}
			if tt.wantJSON {
				var body struct {
					Error struct{ Code string } `json:"error"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Error.Code != "forbidden" {
					t.Errorf("body = %s", rec.Body.String())
				}
			}
		})
	}
}

func TestCSRF_SafeRequestsPass(t *testing.T) {
	h := CSRF(DefaultCSRFConfig(testAuthKey, "https://brushwhacker.example", false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	get := httptest.NewRequest(http.MethodGet, "/quote", nil)
	get.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, get)
	if rec.Code != http.StatusNoContent {
		t.Errorf("GET status = %d", rec.Code)
	}

	post := httptest.NewRequest(http.MethodPost, "/quote", nil)
	post.Header.Set("Sec-Fetch-Site", "same-origin")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, post)
	if rec.Code != http.StatusNoContent {
		t.Errorf("same-origin POST status = %d", rec.Code)
	}
}

func TestSkipCSRF(t *testing.T) {
	h := SkipCSRF("/api/public/quote")(CSRF(DefaultCSRFConfig(testAuthKey, "https://brushwhacker.example", false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})))

	tests := []struct {
		path string
		want int
	}{
		{"/api/public/quote", http.StatusAccepted},
		{"/api/public/quote/extra", http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, tt.path, nil)
		req.Header.Set("Sec-Fetch-Site", "cross-site")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}

func TestIsAPIRequest(t *testing.T) {
	tests := map[string]bool{
		"/api":             true,
		"/api/admin/pages": true,
		"/apis":            false,
		"/admin":           false,
	}
	for path, want := range tests {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		if got := IsAPIRequest(r); got != want {
			t.Errorf("IsAPIRequest(%q) = %v, want %v", path, got, want)
		}
	}
}
