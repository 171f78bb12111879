// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
)

// crud serves list/get/create/update/delete for one entity.
type crud[T, F, C, U any] struct {
	res    service.Resource[T, F, C, U]
	filter func(r *http.Request) F
}

// mountCRUD registers the five standard routes on rt.
func mountCRUD[T, F, C, U any](rt chi.Router, res service.Resource[T, F, C, U], filter func(*http.Request) F) {
	c := crud[T, F, C, U]{res: res, filter: filter}
	rt.Get("/", c.list)
	rt.Post("/", c.create)
	rt.Get("/{id}", c.get)
	rt.Patch("/{id}", c.update)
	rt.Delete("/{id}", c.delete)
}

func (c crud[T, F, C, U]) list(w http.ResponseWriter, r *http.Request) {
	res, err := c.res.List(r.Context(), c.filter(r))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteList(w, res)
}

func (c crud[T, F, C, U]) get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	item, err := c.res.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, item, nil)
}

func (c crud[T, F, C, U]) create(w http.ResponseWriter, r *http.Request) {
	var in C
	if err := decodeJSON(r, &in); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	item, err := c.res.Create(r.Context(), in)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteCreated(w, item)
}

func (c crud[T, F, C, U]) update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	var patch U
	if err := decodeJSON(r, &patch); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	item, err := c.res.Update(r.Context(), id, patch)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, item, nil)
}

func (c crud[T, F, C, U]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := c.res.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// action wraps an id-scoped POST that returns the updated entity.
func action[T any](fn func(r *http.Request, id int64) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		item, err := fn(r, id)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		WriteSuccess(w, item, nil)
	}
}

// publishRoute registers POST /{id}/publish for a draft/published entity.
func publishRoute[T any](rt chi.Router, p service.Publisher[T]) {
	rt.Post("/{id}/publish", action(func(r *http.Request, id int64) (T, error) {
		return p.TogglePublish(r.Context(), id)
	}))
}
