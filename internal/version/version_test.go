// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"version only", Info{Version: "v1.0.0"}, "brushwhacker v1.0.0"},
		{"with commit", Info{Version: "v1.0.0", GitCommit: "abc1234"}, "brushwhacker v1.0.0 (abc1234)"},
		{"full", Info{Version: "v1.0.0", GitCommit: "abc1234", BuildTime: "2025-01-30T12:00:00Z"}, "brushwhacker v1.0.0 (abc1234) built 2025-01-30T12:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetPrefersInjectedCommit(t *testing.T) {
	old := GitCommit
	GitCommit = "feedbee"
	t.Cleanup(func() { GitCommit = old })

	info := Get()
	if info.GitCommit != "feedbee" {
		t.Errorf("GitCommit = %q, want feedbee", info.GitCommit)
	}
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("0123456789abcdef"); got != "0123456" {
		t.Errorf("shortCommit = %q", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Errorf("shortCommit = %q", got)
	}
}
