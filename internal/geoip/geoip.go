// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip tags quote requests with a country code using a MaxMind
// GeoLite2-Country database. Without a database every lookup is empty.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

// Local is reported for loopback and private addresses.
const Local = "LOCAL"

// Lookup resolves IP addresses to ISO country codes. Safe for concurrent use.
type Lookup struct {
	mu      sync.RWMutex
	db      *maxminddb.Reader
	path    string
	modTime time.Time
}

type record struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Open loads the database at path. An empty path yields a disabled Lookup.
func Open(path string) (*Lookup, error) {
	l := &Lookup{path: path}
	if path == "" {
		return l, nil
	}
	if err := l.load(); err != nil {
		return l, err
	}
	return l, nil
}

// load (re)opens the database when the file changed. Caller holds mu.
func (l *Lookup) load() error {
	info, err := os.Stat(l.path)
	if err != nil {
		return fmt.Errorf("geoip database: %w", err)
	}
	if l.db != nil && info.ModTime().Equal(l.modTime) {
		return nil
	}

	db, err := maxminddb.Open(l.path)
	if err != nil {
		return fmt.Errorf("opening geoip database: %w", err)
	}
	if l.db != nil {
		_ = l.db.Close()
	}
	l.db, l.modTime = db, info.ModTime()
	return nil
}

// Reload picks up a replaced database file.
func (l *Lookup) Reload() error {
	if l == nil || l.path == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// Enabled reports whether a database is loaded.
func (l *Lookup) Enabled() bool {
	if l == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Country returns the ISO code for ip, Local for private ranges, or "".
func (l *Lookup) Country(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsLinkLocalUnicast() {
		return Local
	}
	if l == nil {
		return ""
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.db == nil {
		return ""
	}
	var rec record
	if err := l.db.Lookup(parsed, &rec); err != nil {
		return ""
	}
	return rec.Country.ISOCode
}

func (l *Lookup) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}
