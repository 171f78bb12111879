// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/middleware"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
)

func leadFilter(r *http.Request) service.LeadFilter {
	q := r.URL.Query()
	return service.LeadFilter{
		ListParams: listParams(r),
		Status:     q.Get("status"),
		County:     q.Get("county"),
		Service:    q.Get("service"),
	}
}

func (h *Handler) listLeads(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Leads.List(r.Context(), leadFilter(r))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteList(w, res)
}

func (h *Handler) getLead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	lead, err := h.svc.Leads.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, lead, nil)
}

// updateLead handles PATCH /leads/{id}; only status and notes are editable.
func (h *Handler) updateLead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var patch service.LeadPatch
	if err := decodeJSON(r, &patch); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	lead, err := h.svc.Leads.Update(r.Context(), id, patch)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	h.logger.Info("lead updated",
		"category", "lead", "lead_id", lead.ID, "status", lead.Status, "user_id", middleware.GetUserID(r))
	WriteSuccess(w, lead, nil)
}

// exportLeads streams every lead matching the filter as CSV. Paging
// parameters are ignored.
func (h *Handler) exportLeads(w http.ResponseWriter, r *http.Request) {
	f := leadFilter(r)
	name := fmt.Sprintf("leads-%s.csv", time.Now().UTC().Format("20060102-150405"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)

	n, err := h.svc.Leads.Export(r.Context(), w, f)
	if err != nil {
		// Headers are gone once rows have streamed.
		h.logger.Error("lead export failed", "rows", n, "error", err)
		if n == 0 {
			w.Header().Del("Content-Disposition")
			WriteServiceError(w, r, err)
		}
		return
	}
	h.logger.Info("leads exported", "category", "lead", "rows", n, "user_id", middleware.GetUserID(r))
}

func (h *Handler) leadStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Leads.Stats(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, stats, nil)
}

func (h *Handler) convertLead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	project, err := h.svc.Leads.ConvertToProject(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteCreated(w, project)
}
