// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/service"
	"inkwell/internal/store"
)

// Comments handles comment creation, listing and moderation.
type Comments struct {
	comments *store.CommentStore
	svc      *service.CommentService
	logger   *slog.Logger
}

// NewComments creates the comment handler group.
func NewComments(comments *store.CommentStore, svc *service.CommentService, logger *slog.Logger) *Comments {
	return &Comments{comments: comments, svc: svc, logger: logger}
}

type commentRequest struct {
	Body     string     `json:"body"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// Create submits a comment on an article. It lands in the moderation
// queue and is not visible until approved.
func (h *Comments) Create(w http.ResponseWriter, r *http.Request) {
	articleID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateComment(req.Body); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	comment, err := h.svc.Create(r.Context(), articleID, sess.UserID, req.ParentID, req.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

// ListByArticle returns the approved comments of an article in thread order.
func (h *Comments) ListByArticle(w http.ResponseWriter, r *http.Request) {
	articleID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.comments.ListVisibleByArticle(r.Context(), articleID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Pending returns the moderation queue, oldest first.
func (h *Comments) Pending(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50, 200)
	items, err := h.comments.ListPending(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Approve makes a pending comment visible.
func (h *Comments) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	sess := middleware.SessionFromCtx(r.Context())
	comment, err := h.svc.Approve(r.Context(), id, sess.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comment)
}

// Reject refuses a pending comment with an audit reason.
func (h *Comments) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req moderationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	comment, err := h.svc.Reject(r.Context(), id, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comment)
}

// Delete lets the author soft-delete their own comment.
func (h *Comments) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	sess := middleware.SessionFromCtx(r.Context())
	comment, err := h.svc.DeleteByUser(r.Context(), id, sess.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comment)
}

// AdminDelete soft-deletes any comment with an audit reason.
func (h *Comments) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req moderationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	comment, err := h.svc.DeleteByAdmin(r.Context(), id, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comment)
}
