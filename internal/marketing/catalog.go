// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package marketing loads the static service, service-area and pricing
// catalog shown on public pages and used to validate quote requests.
package marketing

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Service struct {
	Slug          string `yaml:"slug" json:"slug"`
	Name          string `yaml:"name" json:"name"`
	Summary       string `yaml:"summary" json:"summary"`
	Description   string `yaml:"description" json:"description"`
	StartingPrice int    `yaml:"starting_price" json:"starting_price"`
	Unit          string `yaml:"unit" json:"unit"`
}

type Area struct {
	Slug   string   `yaml:"slug" json:"slug"`
	County string   `yaml:"county" json:"county"`
	Name   string   `yaml:"name" json:"name"`
	Blurb  string   `yaml:"blurb" json:"blurb"`
	Towns  []string `yaml:"towns" json:"towns"`
}

type PricingTier struct {
	Name        string   `yaml:"name" json:"name"`
	Price       string   `yaml:"price" json:"price"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features" json:"features"`
}

// Catalog is immutable after Load.
type Catalog struct {
	Services []Service     `yaml:"services" json:"services"`
	Areas    []Area        `yaml:"areas" json:"areas"`
	Pricing  []PricingTier `yaml:"pricing" json:"pricing"`
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates YAML catalog data.
func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool)
	for _, s := range c.Services {
		if s.Slug == "" || s.Name == "" {
			return fmt.Errorf("catalog: service missing slug or name")
		}
		if seen["s:"+s.Slug] {
			return fmt.Errorf("catalog: duplicate service %q", s.Slug)
		}
		seen["s:"+s.Slug] = true
	}
	for _, a := range c.Areas {
		if a.Slug == "" || a.County == "" {
			return fmt.Errorf("catalog: area missing slug or county")
		}
		if seen["a:"+a.Slug] {
			return fmt.Errorf("catalog: duplicate area %q", a.Slug)
		}
		seen["a:"+a.Slug] = true
	}
	return nil
}

// Service looks up a service by slug.
func (c *Catalog) Service(slug string) (Service, bool) {
	for _, s := range c.Services {
		if s.Slug == slug {
			return s, true
		}
	}
	return Service{}, false
}

// Area looks up a service area by slug.
func (c *Catalog) Area(slug string) (Area, bool) {
	for _, a := range c.Areas {
		if a.Slug == slug {
			return a, true
		}
	}
	return Area{}, false
}

// County finds the area for a county name, case-insensitively.
func (c *Catalog) County(name string) (Area, bool) {
	for _, a := range c.Areas {
		if strings.EqualFold(a.County, strings.TrimSpace(name)) {
			return a, true
		}
	}
	return Area{}, false
}

// Counties lists county names in catalog order.
func (c *Catalog) Counties() []string {
	out := make([]string, len(c.Areas))
	for i, a := range c.Areas {
		out[i] = a.County
	}
	return out
}
