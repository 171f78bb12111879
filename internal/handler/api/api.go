// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the admin and public JSON APIs.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/service"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Pages   int   `json:"pages"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// WriteSuccess writes a 200 response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteList writes one page of a list with its pagination meta.
func WriteList[T any](w http.ResponseWriter, res service.ListResult[T]) {
	WriteSuccess(w, res.Items, &Meta{
		Total:   res.Total,
		Page:    res.Page,
		PerPage: res.PerPage,
		Pages:   res.Pages(),
	})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}})
}

// WriteBadRequest writes a 400 response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, nil)
}

// WriteNotFound writes a 404 response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteServiceError maps a service error onto the API error taxonomy.
// Unexpected errors are logged and reported as internal_error without detail.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := model.IsValidation(err); ok {
		WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", ve.Fields)
		return
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		WriteNotFound(w, "Resource not found")
	case errors.Is(err, model.ErrUnauthenticated):
		WriteError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required", nil)
	case errors.Is(err, model.ErrForbidden):
		WriteError(w, http.StatusForbidden, "forbidden", "Insufficient permissions", nil)
	case errors.Is(err, model.ErrConflict):
		WriteError(w, http.StatusConflict, "conflict", conflictMessage(err), nil)
	case errors.Is(err, errBadRequest):
		WriteBadRequest(w, strings.TrimPrefix(err.Error(), errBadRequest.Error()+": "))
	default:
		slog.Error("api request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
	}
}

func conflictMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "+model.ErrConflict.Error()); i > 0 {
		return msg[:i]
	}
	return "Conflict"
}

// Deny renders access failures as JSON: 401 when anonymous, 403 otherwise.
func Deny(w http.ResponseWriter, r *http.Request, err *model.AuthError) {
	WriteServiceError(w, r, err)
}

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// decodeJSON reads a single JSON object into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequest("request body is empty")
		}
		return badRequest("invalid JSON: %v", err)
	}
	if dec.More() {
		return badRequest("request body must contain a single JSON object")
	}
	return nil
}

// idParam parses a positive integer URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid %s", name)
	}
	return id, nil
}

// listParams reads search, page and per_page from the query string.
func listParams(r *http.Request) service.ListParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	return service.ListParams{Search: q.Get("search"), Page: page, PerPage: perPage}.Normalize()
}

// boolQuery parses an optional boolean filter; absent or malformed means no filter.
func boolQuery(r *http.Request, name string) *bool {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
