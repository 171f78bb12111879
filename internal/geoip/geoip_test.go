// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import (
	"path/filepath"
	"testing"
)

func TestCountryWithoutDatabase(t *testing.T) {
	l, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\"): %v", err)
	}
	if l.Enabled() {
		t.Error("lookup without a path should be disabled")
	}

	tests := []struct {
		ip   string
		want string
	}{
		{"127.0.0.1", Local},
		{"10.1.2.3", Local},
		{"192.168.0.10", Local},
		{"::1", Local},
		{"8.8.8.8", ""},
		{"not-an-ip", ""},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := l.Country(tt.ip); got != tt.want {
				t.Errorf("Country(%q) = %q, want %q", tt.ip, got, tt.want)
			}
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "missing.mmdb"))
	if err == nil {
		t.Fatal("expected error for missing database")
	}
	if l.Enabled() {
		t.Error("lookup should stay disabled")
	}
	if got := l.Country("8.8.8.8"); got != "" {
		t.Errorf("Country = %q, want empty", got)
	}
}

func TestNilLookup(t *testing.T) {
	var l *Lookup
	if l.Enabled() {
		t.Error("nil lookup enabled")
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if got := l.Country("127.0.0.1"); got != Local {
		t.Errorf("Country = %q", got)
	}
}
