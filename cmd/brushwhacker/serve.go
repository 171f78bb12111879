// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/middleware"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/scheduler"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/session"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/telemetry"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/version"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and scheduled jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	cfg := a.cfg
	logger := a.logger

	if cfg.DoSeed || cfg.SeedAdmin() {
		if err := a.seed(ctx); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
	}

	svc, geo, err := a.services(ctx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0o750); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	shutdownTracing, err := telemetry.Setup(telemetry.Options{
		Enabled:     cfg.Tracing,
		ServiceName: "brushwhacker",
		Version:     version.Get().Version,
		Writer:      os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}

	protection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer protection.Stop()

	router, err := newRouter(routerDeps{
		cfg:        cfg,
		db:         a.db,
		svc:        svc,
		sessions:   session.New(a.db, cfg.IsDevelopment()),
		protection: protection,
		logger:     logger,
	})
	if err != nil {
		return err
	}

	sched := scheduler.New(logger)
	for _, job := range scheduler.Builtin(scheduler.BuiltinDeps{
		Pages:     svc.Pages,
		Posts:     svc.Posts,
		Events:    svc.Events,
		Retention: time.Duration(cfg.EventRetention) * 24 * time.Hour,
		GeoIP:     reloader(geo, cfg.GeoIPEnabled()),
		Logger:    logger,
	}) {
		if err := sched.Add(job); err != nil {
			return fmt.Errorf("scheduling %s: %w", job.Name, err)
		}
	}
	sched.Start()

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env, "version", version.Get().Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	sched.Stop(shutdownCtx)
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown failed", "error", err)
	}

	logger.Info("server stopped")
	return nil
}

// reloader hands the GeoIP lookup to the scheduler only when a database
// is configured.
func reloader(geo scheduler.Reloader, enabled bool) scheduler.Reloader {
	if !enabled {
		return nil
	}
	return geo
}
