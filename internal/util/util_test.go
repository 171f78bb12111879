// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Storm Cleanup", "storm-cleanup"},
		{"  Forestry Mulching!! ", "forestry-mulching"},
		{"Café & Stump Grinding", "cafe-stump-grinding"},
		{"Über  Land--Clearing", "uber-land-clearing"},
		{"Дом", "dom"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"storm-cleanup", true},
		{"a1", true},
		{"", false},
		{"-lead", false},
		{"trail-", false},
		{"double--dash", false},
		{"Upper", false},
		{"under_score", false},
	}
	for _, tt := range tests {
		if got := IsValidSlug(tt.in); got != tt.want {
			t.Errorf("IsValidSlug(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSafeJoinPath(t *testing.T) {
	base := t.TempDir()
	if _, err := SafeJoinPath(base, "thumbs", "a.jpg"); err != nil {
		t.Errorf("nested path rejected: %v", err)
	}
	if _, err := SafeJoinPath(base, "..", "etc", "passwd"); err == nil {
		t.Error("traversal should be rejected")
	}
}

func TestIsLocalPath(t *testing.T) {
	tests := map[string]bool{
		"/blog":             true,
		"/":                 true,
		"//evil.example":    false,
		"https://x.example": false,
		"relative":          false,
		"/\\evil":           false,
	}
	for in, want := range tests {
		if got := IsLocalPath(in); got != want {
			t.Errorf("IsLocalPath(%q) = %v, want %v", in, got, want)
		}
	}
}
