// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package telemetry

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(Options{})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestMiddlewareExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Setup(Options{Enabled: true, ServiceName: "brushwhacker-test", Version: "test", Writer: &buf})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	h := Middleware("http")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "GET /services") {
		t.Errorf("span name missing from export: %s", out)
	}
	if !strings.Contains(out, "brushwhacker-test") {
		t.Errorf("service name missing from export: %s", out)
	}
}
