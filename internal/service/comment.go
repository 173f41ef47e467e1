// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/google/uuid"

	"inkwell/internal/events"
	"inkwell/internal/lifecycle"
	"inkwell/internal/models"
	"inkwell/internal/pipeline"
)

// mentionPattern matches @name references in raw comment bodies. Mentions
// are extracted from the raw text, before masking rewrites it.
var mentionPattern = regexp.MustCompile(`@([a-zA-Z0-9_]+)`)

// CommentStorer is the persistence surface the comment service needs.
type CommentStorer interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	Update(ctx context.Context, c *models.Comment) error
}

// ArticleReader resolves the article a comment targets.
type ArticleReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
}

// CommentService owns all comment mutations.
type CommentService struct {
	comments CommentStorer
	articles ArticleReader
	bus      EventPublisher
	pipe     *pipeline.Pipeline
	logger   *slog.Logger
}

// NewCommentService wires a comment service. The vocabulary is the list of
// terms the masking stage rewrites.
func NewCommentService(comments CommentStorer, articles ArticleReader, bus EventPublisher, vocabulary []string, logger *slog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		articles: articles,
		bus:      bus,
		pipe:     pipeline.ForComments(vocabulary),
		logger:   logger,
	}
}

// Create runs the comment pipeline and stores the comment as pending. The
// id is assigned here because the thread path embeds it. A parent that no
// longer exists, is not visible, or belongs to another article demotes the
// comment to a thread root instead of failing the write.
func (s *CommentService) Create(ctx context.Context, articleID, authorID uuid.UUID, parentID *uuid.UUID, rawBody string) (*models.Comment, error) {
	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil || article.IsDeleted() {
		return nil, ErrNotFound
	}
	if !article.IsPublished() {
		return nil, &lifecycle.StateConflictError{Current: string(article.Status), Operation: "comment"}
	}

	res, err := s.pipe.Run(rawBody)
	if err != nil {
		return nil, err
	}

	c := &models.Comment{
		ID:           uuid.New(),
		ArticleID:    articleID,
		AuthorID:     authorID,
		RawBody:      rawBody,
		RenderedBody: res.HTML,
		Status:       models.CommentStatusPending,
	}

	var parent *models.Comment
	if parentID != nil {
		parent, err = s.comments.FindByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent != nil && (parent.ArticleID != articleID || !parent.IsVisible()) {
			parent = nil
		}
		if parent == nil {
			s.logger.Warn("comment parent unavailable, demoting to root",
				"article_id", articleID, "parent_id", *parentID)
		}
	}
	c.PlaceInThread(parent)

	created, err := s.comments.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	payload := events.ReplyCreatedPayload{
		ArticleID: articleID,
		Mentions:  extractMentions(rawBody),
	}
	if created.ParentID != nil {
		payload.ParentCommentID = created.ParentID
	}
	s.bus.Publish(events.New(events.TypeReplyCreated, created.ID, authorID, payload))
	return created, nil
}

// Approve makes a pending comment visible. Approving an already approved
// comment is a no-op and emits nothing.
func (s *CommentService) Approve(ctx context.Context, id, actorID uuid.UUID) (*models.Comment, error) {
	return s.transition(ctx, id, lifecycle.OpApprove, func(st lifecycle.CommentState, c *models.Comment) (lifecycle.Effect, error) {
		return st.Approve(c)
	}, func(c *models.Comment) {
		s.bus.Publish(events.New(events.TypeCommentApproved, c.ID, actorID,
			events.CommentPayload{ArticleID: c.ArticleID}))
	})
}

// Reject declines a pending comment, recording the moderation reason.
// Rejected is terminal.
func (s *CommentService) Reject(ctx context.Context, id uuid.UUID, reason string) (*models.Comment, error) {
	return s.transition(ctx, id, lifecycle.OpReject, func(st lifecycle.CommentState, c *models.Comment) (lifecycle.Effect, error) {
		return st.Reject(c, reason)
	}, nil)
}

// DeleteByUser removes the actor's own comment. Replies under it keep
// their thread position.
func (s *CommentService) DeleteByUser(ctx context.Context, id, actorID uuid.UUID) (*models.Comment, error) {
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	if c.AuthorID != actorID {
		return nil, ErrForbidden
	}
	wasVisible := c.IsVisible()
	return s.apply(ctx, c, lifecycle.OpDeleteByUser, func(st lifecycle.CommentState) (lifecycle.Effect, error) {
		return st.DeleteByUser(c)
	}, func(c *models.Comment) {
		if wasVisible {
			s.bus.Publish(events.New(events.TypeCommentDeleted, c.ID, actorID,
				events.CommentPayload{ArticleID: c.ArticleID}))
		}
	})
}

// DeleteByAdmin removes any comment, recording the moderation reason.
func (s *CommentService) DeleteByAdmin(ctx context.Context, id uuid.UUID, reason string) (*models.Comment, error) {
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	wasVisible := c.IsVisible()
	return s.apply(ctx, c, lifecycle.OpDeleteByAdmin, func(st lifecycle.CommentState) (lifecycle.Effect, error) {
		return st.DeleteByAdmin(c, reason)
	}, func(c *models.Comment) {
		if wasVisible {
			s.bus.Publish(events.New(events.TypeCommentDeleted, c.ID, uuid.Nil,
				events.CommentPayload{ArticleID: c.ArticleID}))
		}
	})
}

func (s *CommentService) transition(ctx context.Context, id uuid.UUID, op string, do func(lifecycle.CommentState, *models.Comment) (lifecycle.Effect, error), emit func(*models.Comment)) (*models.Comment, error) {
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return s.apply(ctx, c, op, func(st lifecycle.CommentState) (lifecycle.Effect, error) {
		return do(st, c)
	}, emit)
}

func (s *CommentService) apply(ctx context.Context, c *models.Comment, op string, do func(lifecycle.CommentState) (lifecycle.Effect, error), emit func(*models.Comment)) (*models.Comment, error) {
	st, err := lifecycle.CommentStateFor(c.Status)
	if err != nil {
		return nil, fmt.Errorf("comment %s: %w", c.ID, err)
	}
	eff, err := do(st)
	if err != nil {
		return nil, err
	}
	if eff == lifecycle.EffectNone {
		s.logger.Debug("comment transition no-op", "id", c.ID, "op", op, "status", c.Status)
		return c, nil
	}
	if err := s.comments.Update(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("comment transitioned", "id", c.ID, "op", op, "status", c.Status)
	if emit != nil {
		emit(c)
	}
	return c, nil
}

func extractMentions(body string) []string {
	matches := mentionPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var names []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
