// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/recommend"
	"inkwell/internal/service"
	"inkwell/internal/store"
)

// Articles handles the article endpoints. Reads hit the stores directly,
// writes go through the article service.
type Articles struct {
	articles     *store.ArticleStore
	stats        *store.StatsStore
	svc          *service.ArticleService
	resolver     *recommend.Resolver
	relatedLimit int
	logger       *slog.Logger
}

// NewArticles creates the article handler group.
func NewArticles(articles *store.ArticleStore, stats *store.StatsStore, svc *service.ArticleService, resolver *recommend.Resolver, relatedLimit int, logger *slog.Logger) *Articles {
	return &Articles{
		articles:     articles,
		stats:        stats,
		svc:          svc,
		resolver:     resolver,
		relatedLimit: relatedLimit,
		logger:       logger,
	}
}

type articleRequest struct {
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	CategoryID *uuid.UUID `json:"category_id"`
}

type articleResponse struct {
	Article *models.Article      `json:"article"`
	Stats   *models.ArticleStats `json:"stats,omitempty"`
}

// List returns published articles, newest first.
func (h *Articles) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 20, 100)
	items, err := h.articles.ListPublished(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// GetBySlug returns a published article with its counters and records the view.
func (h *Articles) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	article, err := h.articles.FindBySlug(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if article == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.stats.IncrementViews(r.Context(), article.ID); err != nil {
		h.logger.Warn("view counter update failed", "article_id", article.ID, "error", err)
	}
	stats, err := h.stats.FindByArticle(r.Context(), article.ID)
	if err != nil {
		h.logger.Warn("stats lookup failed", "article_id", article.ID, "error", err)
	}
	respondJSON(w, http.StatusOK, articleResponse{Article: article, Stats: stats})
}

// Related returns articles related to the given one.
func (h *Articles) Related(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.resolver.FindRelated(r.Context(), id, h.relatedLimit))
}

// Mine returns all articles of the authenticated author, drafts included.
func (h *Articles) Mine(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	items, err := h.articles.ListByAuthor(r.Context(), sess.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Create creates a new draft.
func (h *Articles) Create(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateArticle(req.Title, req.Body); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	article, err := h.svc.Create(r.Context(), sess.UserID, service.ArticleInput{
		Title:      req.Title,
		RawBody:    req.Body,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, article)
}

// Update edits an article owned by the authenticated author.
func (h *Articles) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req articleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateArticle(req.Title, req.Body); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	article, err := h.svc.Update(r.Context(), id, sess.UserID, service.ArticleInput{
		Title:      req.Title,
		RawBody:    req.Body,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, article)
}

// Publish makes a draft publicly visible.
func (h *Articles) Publish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Publish)
}

// Archive hides a published article without deleting it.
func (h *Articles) Archive(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Archive)
}

// Unarchive restores an archived article to published.
func (h *Articles) Unarchive(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Unarchive)
}

// Delete lets the owner soft-delete an article.
func (h *Articles) Delete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.DeleteByUser)
}

func (h *Articles) transition(w http.ResponseWriter, r *http.Request, do func(ctx context.Context, id, actorID uuid.UUID) (*models.Article, error)) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	sess := middleware.SessionFromCtx(r.Context())
	article, err := do(r.Context(), id, sess.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, article)
}

type moderationRequest struct {
	Reason string `json:"reason"`
}

// AdminDelete soft-deletes any article with an audit reason.
func (h *Articles) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req moderationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	article, err := h.svc.DeleteByAdmin(r.Context(), id, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, article)
}

// Like records a like from the authenticated user.
func (h *Articles) Like(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.svc.Like)
}

// Unlike retracts a like.
func (h *Articles) Unlike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.svc.Unlike)
}

func (h *Articles) react(w http.ResponseWriter, r *http.Request, do func(ctx context.Context, id, actorID uuid.UUID) error) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	sess := middleware.SessionFromCtx(r.Context())
	if err := do(r.Context(), id, sess.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// pathID parses a UUID route parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads limit and offset query parameters with sane bounds.
func pagination(r *http.Request, defLimit, maxLimit int) (int, int) {
	limit := defLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = min(v, maxLimit)
	}
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
