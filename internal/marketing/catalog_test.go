// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package marketing

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(c.Services) == 0 || len(c.Areas) == 0 || len(c.Pricing) == 0 {
		t.Fatalf("catalog incomplete: %+v", c)
	}
	if _, ok := c.Service("forestry-mulching"); !ok {
		t.Error("forestry-mulching missing")
	}
	if a, ok := c.County(" pike "); !ok || a.Slug != "pike-county" {
		t.Errorf("County(pike) = %+v, %v", a, ok)
	}
	if _, ok := c.Area("nowhere"); ok {
		t.Error("unknown area should not resolve")
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte(`
services:
  - {slug: a, name: A}
  - {slug: a, name: B}
`))
	if err == nil {
		t.Error("duplicate service slugs should fail")
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	if _, err := Parse([]byte("services: [")); err == nil {
		t.Error("malformed YAML should fail")
	}
	if _, err := Parse([]byte("areas:\n  - {slug: x}\n")); err == nil {
		t.Error("area without county should fail")
	}
}
