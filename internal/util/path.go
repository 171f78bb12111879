// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SafeJoinPath joins components under base and fails if the result escapes it.
func SafeJoinPath(base string, components ...string) (string, error) {
	full := filepath.Join(append([]string{base}, components...)...)

	absBase, err := filepath.Abs(filepath.Clean(base))
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	absFull, err := filepath.Abs(full)
	if err != nil {
		return "", fmt.Errorf("invalid target path: %w", err)
	}
	if absFull != absBase && !strings.HasPrefix(absFull, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes %s", base)
	}
	return full, nil
}

// IsLocalPath reports whether p is a site-relative path such as "/blog".
// Protocol-relative URLs ("//evil.example") are rejected.
func IsLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, "\\")
}
