// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/cache"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/config"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/geoip"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/logging"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/marketing"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

// app is what every subcommand opens: configuration, logger and a migrated
// database.
type app struct {
	cfg     *config.Config
	db      *sql.DB
	logger  *slog.Logger
	base    slog.Handler
	closers []io.Closer
}

func openApp() (*app, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, err
	}

	base, logCloser := logging.NewHandler(logging.Options{
		Level:      cfg.SlogLevel(),
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		JSON:       !cfg.IsDevelopment(),
	})
	slog.SetDefault(slog.New(base))
	a := &app{cfg: cfg, logger: slog.Default(), base: base, closers: []io.Closer{logCloser}}

	if dir := filepath.Dir(cfg.DBPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			a.Close()
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	a.db = db
	a.closers = append([]io.Closer{db}, a.closers...)

	if err := store.Migrate(db); err != nil {
		a.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	// Warnings and errors land in the event log from here on.
	a.logger = slog.New(logging.NewEventLogHandler(base, db))
	slog.SetDefault(a.logger)
	return a, nil
}

// Close releases everything in reverse order of opening.
func (a *app) Close() {
	if a.db != nil {
		slog.SetDefault(slog.New(a.base))
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			fmt.Fprintln(os.Stderr, "close:", err)
		}
	}
	a.closers = nil
}

func (a *app) catalog() (*marketing.Catalog, error) {
	if a.cfg.CatalogPath != "" {
		return marketing.Load(a.cfg.CatalogPath)
	}
	return marketing.Default()
}

// services builds the service layer with its cache backend and GeoIP lookup.
func (a *app) services(ctx context.Context) (*service.Services, *geoip.Lookup, error) {
	catalog, err := a.catalog()
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}

	backend := cache.New(ctx, cache.Options{
		RedisURL:   a.cfg.RedisURL,
		Prefix:     a.cfg.CachePrefix,
		DefaultTTL: a.cfg.ListCacheTTL,
		MaxEntries: a.cfg.CacheMaxSize,
	})
	a.closers = append([]io.Closer{backend}, a.closers...)

	geo, err := geoip.Open(a.cfg.GeoIPDBPath)
	if err != nil {
		a.logger.Warn("geoip database unavailable, lead countries disabled", "path", a.cfg.GeoIPDBPath, "error", err)
	}
	a.closers = append([]io.Closer{geo}, a.closers...)

	svc := service.NewServices(
		service.Deps{
			Queries: store.New(a.db),
			Lists:   cache.NewLists(backend, a.cfg.ListCacheTTL),
			Logger:  a.logger,
		},
		service.Options{
			Catalog:   catalog,
			Countries: geo,
			UploadDir: a.cfg.UploadsDir,
		},
	)
	return svc, geo, nil
}

// seed provisions the bootstrap admin and starter content when configured.
func (a *app) seed(ctx context.Context) error {
	if !a.cfg.SeedAdmin() {
		return errors.New("BW_ADMIN_EMAIL and BW_ADMIN_PASSWORD must be set to seed")
	}
	return store.Seed(ctx, a.db, store.SeedOptions{
		AdminEmail:    a.cfg.AdminEmail,
		AdminPassword: a.cfg.AdminPassword,
		AdminName:     "Administrator",
	})
}
