// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"inkwell/internal/events"
	"inkwell/internal/lifecycle"
	"inkwell/internal/models"
	"inkwell/internal/pipeline"
	"inkwell/internal/slug"
)

// ArticleStorer is the persistence surface the article service needs.
type ArticleStorer interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	Create(ctx context.Context, a *models.Article) (*models.Article, error)
	Update(ctx context.Context, a *models.Article) error
}

// ArticleInput is the author-supplied part of an article.
type ArticleInput struct {
	Title      string
	RawBody    string
	CategoryID *uuid.UUID
}

// ArticleService owns all article mutations. Reads bypass it.
type ArticleService struct {
	articles ArticleStorer
	bus      EventPublisher
	pipe     *pipeline.Pipeline
	logger   *slog.Logger
}

// NewArticleService wires an article service with the standard article
// processing pipeline.
func NewArticleService(articles ArticleStorer, bus EventPublisher, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		articles: articles,
		bus:      bus,
		pipe:     pipeline.ForArticles(),
		logger:   logger,
	}
}

// Create runs the processing pipeline over the raw body and stores the
// article as a draft. A pipeline failure aborts the create; nothing is
// persisted.
func (s *ArticleService) Create(ctx context.Context, authorID uuid.UUID, in ArticleInput) (*models.Article, error) {
	res, err := s.pipe.Run(in.RawBody)
	if err != nil {
		return nil, err
	}

	a := &models.Article{
		AuthorID:     authorID,
		CategoryID:   in.CategoryID,
		Title:        in.Title,
		Slug:         slug.Generate(in.Title),
		RawBody:      in.RawBody,
		RenderedBody: res.HTML,
		Summary:      res.Summary,
		Outline:      res.Outline,
		Status:       models.ArticleStatusDraft,
	}
	created, err := s.articles.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.logger.Info("article created", "id", created.ID, "slug", created.Slug)
	return created, nil
}

// Update re-runs the pipeline over the new body and persists the edit. The
// slug only tracks the title while the article is still a draft; published
// URLs stay stable. Editing a published article announces the edit so
// derived data can refresh.
func (s *ArticleService) Update(ctx context.Context, id, actorID uuid.UUID, in ArticleInput) (*models.Article, error) {
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	if a.IsDeleted() {
		return nil, &lifecycle.StateConflictError{Current: string(a.Status), Operation: "edit"}
	}
	if a.AuthorID != actorID {
		return nil, ErrForbidden
	}

	res, err := s.pipe.Run(in.RawBody)
	if err != nil {
		return nil, err
	}

	a.Title = in.Title
	a.CategoryID = in.CategoryID
	a.RawBody = in.RawBody
	a.RenderedBody = res.HTML
	a.Summary = res.Summary
	a.Outline = res.Outline
	if a.Status == models.ArticleStatusDraft {
		a.Slug = slug.Generate(in.Title)
	}
	if err := s.articles.Update(ctx, a); err != nil {
		return nil, err
	}

	if a.IsPublished() {
		s.bus.Publish(events.New(events.TypeArticleEdited, a.ID, actorID, nil))
	}
	return a, nil
}

// Publish moves the article to published. Re-publishing an already
// published article is a no-op and emits nothing.
func (s *ArticleService) Publish(ctx context.Context, id, actorID uuid.UUID) (*models.Article, error) {
	return s.transition(ctx, id, lifecycle.OpPublish, func(st lifecycle.ArticleState, a *models.Article) (lifecycle.Effect, error) {
		return st.Publish(a)
	}, func(a *models.Article) {
		s.bus.Publish(events.New(events.TypeArticlePublished, a.ID, actorID, nil))
	})
}

// Archive hides a published article without losing it.
func (s *ArticleService) Archive(ctx context.Context, id, actorID uuid.UUID) (*models.Article, error) {
	return s.transition(ctx, id, lifecycle.OpArchive, func(st lifecycle.ArticleState, a *models.Article) (lifecycle.Effect, error) {
		return st.Archive(a)
	}, nil)
}

// Unarchive returns an archived article to published. The original
// publication timestamp is kept, so no publish event fires again.
func (s *ArticleService) Unarchive(ctx context.Context, id, actorID uuid.UUID) (*models.Article, error) {
	return s.transition(ctx, id, lifecycle.OpUnarchive, func(st lifecycle.ArticleState, a *models.Article) (lifecycle.Effect, error) {
		return st.Unarchive(a)
	}, nil)
}

// DeleteByUser soft-deletes the actor's own article.
func (s *ArticleService) DeleteByUser(ctx context.Context, id, actorID uuid.UUID) (*models.Article, error) {
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	if a.AuthorID != actorID {
		return nil, ErrForbidden
	}
	return s.apply(ctx, a, lifecycle.OpDeleteByUser, func(st lifecycle.ArticleState) (lifecycle.Effect, error) {
		return st.DeleteByUser(a)
	}, nil)
}

// DeleteByAdmin soft-deletes any article, recording the moderation reason.
func (s *ArticleService) DeleteByAdmin(ctx context.Context, id uuid.UUID, reason string) (*models.Article, error) {
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return s.apply(ctx, a, lifecycle.OpDeleteByAdmin, func(st lifecycle.ArticleState) (lifecycle.Effect, error) {
		return st.DeleteByAdmin(a, reason)
	}, nil)
}

// Like records a like without touching the article row: the counter lives
// in article_stats and is adjusted asynchronously by the event handler.
func (s *ArticleService) Like(ctx context.Context, id, actorID uuid.UUID) error {
	return s.react(ctx, id, actorID, events.TypeArticleLiked)
}

// Unlike is the inverse of Like. Out-of-order delivery against Like is
// tolerated; the counter deltas commute.
func (s *ArticleService) Unlike(ctx context.Context, id, actorID uuid.UUID) error {
	return s.react(ctx, id, actorID, events.TypeArticleUnliked)
}

func (s *ArticleService) react(ctx context.Context, id, actorID uuid.UUID, t events.Type) error {
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}
	if !a.IsPublished() {
		return &lifecycle.StateConflictError{Current: string(a.Status), Operation: "react"}
	}
	s.bus.Publish(events.New(t, a.ID, actorID, nil))
	return nil
}

// transition loads the article and applies one state-machine operation.
func (s *ArticleService) transition(ctx context.Context, id uuid.UUID, op string, do func(lifecycle.ArticleState, *models.Article) (lifecycle.Effect, error), emit func(*models.Article)) (*models.Article, error) {
	a, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return s.apply(ctx, a, op, func(st lifecycle.ArticleState) (lifecycle.Effect, error) {
		return do(st, a)
	}, emit)
}

func (s *ArticleService) apply(ctx context.Context, a *models.Article, op string, do func(lifecycle.ArticleState) (lifecycle.Effect, error), emit func(*models.Article)) (*models.Article, error) {
	st, err := lifecycle.ArticleStateFor(a.Status)
	if err != nil {
		return nil, fmt.Errorf("article %s: %w", a.ID, err)
	}
	eff, err := do(st)
	if err != nil {
		return nil, err
	}
	if eff == lifecycle.EffectNone {
		s.logger.Debug("article transition no-op", "id", a.ID, "op", op, "status", a.Status)
		return a, nil
	}
	if err := s.articles.Update(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("article transitioned", "id", a.ID, "op", op, "status", a.Status)
	if emit != nil {
		emit(a)
	}
	return a, nil
}
