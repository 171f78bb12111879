// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/cache"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/config"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/marketing"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/middleware"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/session"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/testutil"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/version"
)

const testSecret = "k9Qz2vLx7RmT4pWn8sYb3cHf6jDg1aEu"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.TestDB(t)
	uploads := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "stump.jpg"), []byte("jpeg"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(uploads, "yard"), 0o750))

	mem := cache.NewMemoryCache(cache.MemoryOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })
	catalog, err := marketing.Default()
	require.NoError(t, err)

	svc := service.NewServices(service.Deps{
		Queries: store.New(db),
		Lists:   cache.NewLists(mem, time.Minute),
		Logger:  testutil.DiscardLogger(),
	}, service.Options{Catalog: catalog, UploadDir: uploads})

	lp := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	t.Cleanup(lp.Stop)

	h, err := newRouter(routerDeps{
		cfg: &config.Config{
			SessionSecret:  testSecret,
			Env:            "development",
			BaseURL:        "http://localhost:8080",
			UploadsDir:     uploads,
			CORSOrigins:    []string{"*"},
			QuoteRateLimit: 5,
			RequestTimeout: 5 * time.Second,
		},
		db:         db,
		svc:        svc,
		sessions:   session.New(db, true),
		protection: lp,
		logger:     testutil.DiscardLogger(),
	})
	require.NoError(t, err)
	return h
}

func TestRouter(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name     string
		path     string
		status   int
		location string
		cached   bool
	}{
		{name: "liveness", path: "/health/live", status: http.StatusOK},
		{name: "home", path: "/", status: http.StatusOK},
		{name: "stylesheet", path: "/static/css/site.css", status: http.StatusOK, cached: true},
		{name: "upload", path: "/uploads/stump.jpg", status: http.StatusOK, cached: true},
		{name: "upload directory", path: "/uploads/yard", status: http.StatusNotFound},
		{name: "public api", path: "/api/public/services", status: http.StatusOK},
		{name: "admin api anonymous", path: "/api/admin/leads", status: http.StatusUnauthorized},
		{name: "admin anonymous", path: "/admin", status: http.StatusSeeOther, location: "/login?next=%2Fadmin"},
		{name: "trailing slash", path: "/services/", status: http.StatusMovedPermanently, location: "/services"},
		{name: "unknown", path: "/no-such-page", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get("Location"))
			}
			if tt.cached {
				assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=")
			}
			if rec.Code != http.StatusMovedPermanently {
				assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			}
		})
	}
}

func TestRouterCrossOriginQuote(t *testing.T) {
	h := newTestRouter(t)

	body := `{"name":"Dana Field","email":"dana@example.com","phone":"555-0100","services":["forestry-mulching"]}`
	req := httptest.NewRequest(http.MethodPost, publicQuotePath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://partner.example")
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEqual(t, http.StatusForbidden, rec.Code, rec.Body.String())
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func setCLIEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BW_SESSION_SECRET", testSecret)
	t.Setenv("BW_DB_PATH", filepath.Join(dir, "data", "bw.db"))
	t.Setenv("BW_UPLOADS_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("BW_LOG_LEVEL", "error")
}

func TestUserCommands(t *testing.T) {
	setCLIEnv(t)

	out, err := runCLI(t, "user", "create",
		"--email", "Crew@BrushWhacker.test", "--name", "Crew Lead",
		"--role", "sales", "--password", "timber-and-brush-9")
	require.NoError(t, err, out)
	assert.Contains(t, out, "created crew@brushwhacker.test")

	out, err = runCLI(t, "user", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "crew@brushwhacker.test\tsales")

	_, err = runCLI(t, "user", "create",
		"--email", "ghost@brushwhacker.test", "--name", "Ghost",
		"--role", "owner", "--password", "timber-and-brush-9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role")
}

func TestUserCreateRequiresFlags(t *testing.T) {
	setCLIEnv(t)
	_, err := runCLI(t, "user", "create", "--email", "a@b.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestJobsList(t *testing.T) {
	setCLIEnv(t)
	out, err := runCLI(t, "jobs", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "publish-pages")
	assert.Contains(t, out, "prune-events")
	assert.NotContains(t, out, "reload-geoip")

	_, err = runCLI(t, "jobs", "run", "no-such-job")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "brushwhacker "), out)

	out, err = runCLI(t, "version", "--json")
	require.NoError(t, err)
	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version.Get().Version, info.Version)
}
