// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/middleware"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/version"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db         *sql.DB
	uploadsDir string
	startTime  time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB, uploadsDir string) *HealthHandler {
	return &HealthHandler{db: db, uploadsDir: uploadsDir, startTime: time.Now()}
}

// HealthStatus is the full report, shown to signed-in managers.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains runtime figures.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
}

// Health handles GET /health. Anonymous callers only see the status.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())
	uploadsCheck := h.checkUploads()

	overall := statusHealthy
	if dbCheck.Status != statusHealthy {
		overall = statusUnhealthy
	} else if uploadsCheck.Status != statusHealthy {
		overall = statusDegraded
	}

	code := http.StatusOK
	if overall == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	user := middleware.GetUser(r)
	if user == nil {
		writeHealth(w, code, map[string]string{"status": overall})
		return
	}

	status := HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   version.Get().Version,
	}
	if role := model.Role(user.Role); role == model.RoleSuperAdmin || role == model.RoleAdmin {
		status.Checks = map[string]Check{"database": dbCheck, "uploads": uploadsCheck}
		if r.URL.Query().Get("verbose") == "true" {
			status.System = systemInfo()
		}
	}
	writeHealth(w, code, status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeHealth(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready: the database must answer.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if c := h.checkDatabase(r.Context()); c.Status != statusHealthy {
		resp := map[string]string{"status": "not_ready"}
		if middleware.GetUser(r) != nil {
			resp["message"] = c.Message
		}
		writeHealth(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeHealth(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)
	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error(), Latency: latency.String()}
	}

	var n int
	if err := h.db.QueryRowContext(ctx, "SELECT 1").Scan(&n); err != nil {
		return Check{Status: statusUnhealthy, Message: "query failed: " + err.Error(), Latency: latency.String()}
	}
	return Check{Status: statusHealthy, Latency: latency.String()}
}

func (h *HealthHandler) checkUploads() Check {
	if h.uploadsDir == "" {
		return Check{Status: statusHealthy, Message: "not configured"}
	}
	info, err := os.Stat(h.uploadsDir)
	if err != nil {
		return Check{Status: statusUnhealthy, Message: "uploads directory not accessible"}
	}
	if !info.IsDir() {
		return Check{Status: statusUnhealthy, Message: "uploads path is not a directory"}
	}
	return Check{Status: statusHealthy}
}

func systemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     fmt.Sprintf("%.1f MB", float64(m.Alloc)/(1<<20)),
	}
}

func writeHealth(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
