// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Content statuses shared by pages, templates, blocks, posts and projects.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ValidContentStatus reports whether s is draft or published.
func ValidContentStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished
}

// LeadStatus is a position in the sales pipeline.
type LeadStatus string

// Pipeline statuses in board order.
const (
	LeadNew       LeadStatus = "New"
	LeadContacted LeadStatus = "Contacted"
	LeadScheduled LeadStatus = "Scheduled"
	LeadWon       LeadStatus = "Won"
	LeadLost      LeadStatus = "Lost"
)

// LeadStatuses lists the pipeline in board order.
var LeadStatuses = []LeadStatus{LeadNew, LeadContacted, LeadScheduled, LeadWon, LeadLost}

// Valid reports whether s is a pipeline status.
func (s LeadStatus) Valid() bool {
	for _, v := range LeadStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether a lead may move from s to next.
// Staff may correct mistakes, so every known status is reachable from every other.
func (s LeadStatus) CanTransition(next LeadStatus) bool {
	return s.Valid() && next.Valid()
}

// Timelines accepted on the quote form.
var Timelines = map[string]string{
	"asap":           "As soon as possible",
	"within_month":   "Within a month",
	"within_quarter": "Within three months",
	"flexible":       "Flexible",
}

// Project stages.
const (
	StagePlanned    = "planned"
	StageScheduled  = "scheduled"
	StageInProgress = "in_progress"
	StageCompleted  = "completed"
)

// ValidStage reports whether s is a known project stage.
func ValidStage(s string) bool {
	switch s {
	case StagePlanned, StageScheduled, StageInProgress, StageCompleted:
		return true
	}
	return false
}

// Block types.
var BlockTypes = []string{"hero", "text", "cta", "faq", "gallery", "testimonials"}

// ValidBlockType reports whether t is a known block type.
func ValidBlockType(t string) bool {
	for _, v := range BlockTypes {
		if v == t {
			return true
		}
	}
	return false
}
