// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
)

func (h *Handler) listMedia(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Media.List(r.Context(), service.MediaFilter{ListParams: listParams(r), Type: r.URL.Query().Get("type")})
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteList(w, res)
}

func (h *Handler) getMedia(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	item, err := h.svc.Media.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, item, nil)
}

// uploadMedia handles a multipart upload with the file in the "file" field
// and optional "alt_text".
func (h *Handler) uploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteServiceError(w, r, &model.ValidationError{Fields: map[string]string{"file": "file is too large"}})
			return
		}
		WriteServiceError(w, r, badRequest("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteServiceError(w, r, &model.ValidationError{Fields: map[string]string{"file": "file is required"}})
		return
	}
	defer func() { _ = file.Close() }()

	item, err := h.svc.Media.Upload(r.Context(), file, header.Filename)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if alt := r.FormValue("alt_text"); alt != "" {
		if item, err = h.svc.Media.UpdateAlt(r.Context(), item.ID, alt); err != nil {
			WriteServiceError(w, r, err)
			return
		}
	}
	WriteCreated(w, item)
}

type mediaPatch struct {
	AltText string `json:"alt_text"`
}

func (h *Handler) updateMedia(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var patch mediaPatch
	if err := decodeJSON(r, &patch); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	item, err := h.svc.Media.UpdateAlt(r.Context(), id, patch.AltText)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, item, nil)
}

func (h *Handler) deleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := h.svc.Media.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
