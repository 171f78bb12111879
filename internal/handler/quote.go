// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/middleware"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/views/public"
)

const quoteDescription = "Tell us about your property and get a free land clearing estimate."

// QuoteForm renders the estimate form. ?service= and ?county= (a county
// name or area slug) preselect values.
func (h *Handler) QuoteForm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	values := service.QuoteRequest{County: q.Get("county")}
	if area, ok := h.svc.Public.Catalog.Area(values.County); ok {
		values.County = area.County
	}
	if slug := q.Get("service"); slug != "" {
		if _, ok := h.svc.Public.Catalog.Service(slug); ok {
			values.Services = []string{slug}
		}
	}
	h.render(w, public.QuoteForm(h.pageInfo(r, "Free Estimate", quoteDescription), h.quoteData(values, nil)))
}

// SubmitQuote stores the request as a new lead.
func (h *Handler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in := service.QuoteRequest{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Phone:    r.PostFormValue("phone"),
		County:   r.PostFormValue("county"),
		Services: r.PostForm["services"],
		Timeline: r.PostFormValue("timeline"),
		Acreage:  r.PostFormValue("acreage"),
		Message:  r.PostFormValue("message"),
	}

	lead, err := h.svc.Leads.Create(r.Context(), in, service.Client{
		IP:        middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			p := h.pageInfo(r, "Free Estimate", quoteDescription)
			views.Render(w, http.StatusUnprocessableEntity, public.QuoteForm(p, h.quoteData(in, ve.Fields)))
			return
		}
		h.fail(w, r, err)
		return
	}

	h.render(w, public.QuoteThanks(h.pageInfo(r, "Request received", ""), lead.Reference))
}

func (h *Handler) quoteData(values service.QuoteRequest, errs map[string]string) public.QuoteFormData {
	return public.QuoteFormData{
		Values:   values,
		Errors:   errs,
		Services: h.svc.Public.Services(),
		Areas:    h.svc.Public.Areas(),
	}
}
