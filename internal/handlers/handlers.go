// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API surface. Handlers stay thin:
// reads go straight to the stores, writes go through the services, and
// every error is mapped to a status code in one place.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"inkwell/internal/lifecycle"
	"inkwell/internal/pipeline"
	"inkwell/internal/service"
	"inkwell/internal/store"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("encode response", "error", err)
		}
	}
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeServiceError maps service, lifecycle, pipeline and store errors to
// HTTP status codes. Anything unrecognized becomes a logged 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var stageErr *pipeline.StageError
	var conflict *lifecycle.StateConflictError

	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
	case errors.As(err, &conflict):
		respondError(w, http.StatusConflict, conflict.Error())
	case errors.Is(err, store.ErrConflict):
		respondError(w, http.StatusConflict, "item was modified concurrently, reload and retry")
	case errors.Is(err, lifecycle.ErrUnknownStatus):
		slog.Error("corrupt content status", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	case errors.As(err, &stageErr):
		respondError(w, http.StatusUnprocessableEntity, stageErr.Error())
	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
