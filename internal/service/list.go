// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

// Pagination defaults.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListParams are the filters common to every entity.
type ListParams struct {
	Search  string `json:"search,omitempty"`
	Page    int    `json:"page,omitempty"`
	PerPage int    `json:"per_page,omitempty"`
}

// Normalize clamps paging into range.
func (p ListParams) Normalize() ListParams {
	p.Search = strings.TrimSpace(p.Search)
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

func (p ListParams) storePage() store.Window {
	return store.Window{Limit: p.PerPage, Offset: (p.Page - 1) * p.PerPage}
}

// ListResult is one page of items plus the unpaginated total.
type ListResult[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}

// Pages returns the number of pages.
func (r ListResult[T]) Pages() int {
	if r.PerPage == 0 {
		return 1
	}
	return int((r.Total + int64(r.PerPage) - 1) / int64(r.PerPage))
}

func result[T any](items []T, total int64, p ListParams) ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return ListResult[T]{Items: items, Total: total, Page: p.Page, PerPage: p.PerPage}
}
