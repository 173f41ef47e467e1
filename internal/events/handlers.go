// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// StatsUpserter creates a zeroed counters row if none exists.
type StatsUpserter interface {
	EnsureStats(ctx context.Context, articleID uuid.UUID) error
}

// StatsInitializer creates the counters row for a newly published article.
// EnsureStats has upsert semantics, so re-delivery of the publish event is
// harmless.
type StatsInitializer struct {
	Stats StatsUpserter
}

func (h *StatsInitializer) Name() string    { return "stats_initializer" }
func (h *StatsInitializer) Handles() []Type { return []Type{TypeArticlePublished} }

func (h *StatsInitializer) Handle(ctx context.Context, ev Event) error {
	if err := h.Stats.EnsureStats(ctx, ev.ItemID); err != nil {
		return fmt.Errorf("ensure stats for %s: %w", ev.ItemID, err)
	}
	return nil
}

// EmbeddingRequester asks the external embedding collaborator to generate
// and persist a vector for the article.
type EmbeddingRequester interface {
	RequestEmbedding(ctx context.Context, articleID uuid.UUID) error
}

// EmbeddingTrigger requests vector generation for published or edited
// articles. The call is time-bounded and best-effort: failure leaves the
// article publishable without a vector, degrading recommendation quality
// only.
type EmbeddingTrigger struct {
	Embedder EmbeddingRequester
	Timeout  time.Duration
}

func (h *EmbeddingTrigger) Name() string { return "embedding_trigger" }
func (h *EmbeddingTrigger) Handles() []Type {
	return []Type{TypeArticlePublished, TypeArticleEdited}
}

func (h *EmbeddingTrigger) Handle(ctx context.Context, ev Event) error {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := h.Embedder.RequestEmbedding(ctx, ev.ItemID); err != nil {
		// Swallowed here rather than bubbled: the bus would log it as a
		// handler failure, but a missing embedding is expected degradation,
		// not an error condition.
		slog.Warn("embedding generation failed",
			"article_id", ev.ItemID, "error", err)
	}
	return nil
}

// Notifier records a notification for a user.
type Notifier interface {
	Notify(ctx context.Context, n *models.Notification) error
}

// CommentSource loads comments for thread context.
type CommentSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
}

// UserDirectory resolves mention display names to users.
type UserDirectory interface {
	FindByDisplayName(ctx context.Context, name string) (*models.User, error)
}

// NotificationCreator notifies the parent author of a reply and every
// @-mentioned user, skipping self-notification. Duplicate replies produce
// duplicate notifications: there is intentionally no dedup key.
type NotificationCreator struct {
	Notifications Notifier
	Comments      CommentSource
	Users         UserDirectory
}

func (h *NotificationCreator) Name() string    { return "notification_creator" }
func (h *NotificationCreator) Handles() []Type { return []Type{TypeReplyCreated} }

func (h *NotificationCreator) Handle(ctx context.Context, ev Event) error {
	payload, ok := ev.Payload.(ReplyCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", ev.Payload, ev.Type)
	}

	if payload.ParentCommentID != nil {
		if err := h.notifyParent(ctx, ev, *payload.ParentCommentID); err != nil {
			return err
		}
	}

	for _, name := range payload.Mentions {
		user, err := h.Users.FindByDisplayName(ctx, name)
		if err != nil {
			return fmt.Errorf("resolve mention %q: %w", name, err)
		}
		if user == nil || user.ID == ev.ActorID {
			continue
		}
		n := &models.Notification{
			UserID:   user.ID,
			ActorID:  ev.ActorID,
			SourceID: ev.ItemID,
			Kind:     models.NotificationKindMention,
		}
		if err := h.Notifications.Notify(ctx, n); err != nil {
			return fmt.Errorf("notify mention %s: %w", user.ID, err)
		}
	}
	return nil
}

func (h *NotificationCreator) notifyParent(ctx context.Context, ev Event, parentID uuid.UUID) error {
	parent, err := h.Comments.FindByID(ctx, parentID)
	if err != nil {
		return fmt.Errorf("load parent comment %s: %w", parentID, err)
	}
	if parent == nil || parent.AuthorID == ev.ActorID {
		// Parent gone or replying to yourself: nothing to notify.
		return nil
	}
	n := &models.Notification{
		UserID:   parent.AuthorID,
		ActorID:  ev.ActorID,
		SourceID: ev.ItemID,
		Kind:     models.NotificationKindReply,
	}
	if err := h.Notifications.Notify(ctx, n); err != nil {
		return fmt.Errorf("notify reply to %s: %w", parent.AuthorID, err)
	}
	return nil
}

// RelatedListInvalidator drops cached related-article lists for an article.
type RelatedListInvalidator interface {
	Invalidate(ctx context.Context, articleID uuid.UUID)
}

// RelatedCacheFlusher evicts cached recommendation lists when an article is
// published or edited. Lists cached for other articles may keep serving the
// old data until their TTL runs out.
type RelatedCacheFlusher struct {
	Cache RelatedListInvalidator
}

func (h *RelatedCacheFlusher) Name() string { return "related_cache_flusher" }
func (h *RelatedCacheFlusher) Handles() []Type {
	return []Type{TypeArticlePublished, TypeArticleEdited}
}

func (h *RelatedCacheFlusher) Handle(ctx context.Context, ev Event) error {
	h.Cache.Invalidate(ctx, ev.ItemID)
	return nil
}

// LikeAdjuster applies a signed delta to an article's like counter.
type LikeAdjuster interface {
	AdjustLikes(ctx context.Context, articleID uuid.UUID, delta int64) error
}

// CounterAdjuster keeps the denormalized like counter in step with like and
// unlike events. Deltas are commutative, so out-of-order delivery converges
// to the correct net count.
type CounterAdjuster struct {
	Stats LikeAdjuster
}

func (h *CounterAdjuster) Name() string { return "counter_adjuster" }
func (h *CounterAdjuster) Handles() []Type {
	return []Type{TypeArticleLiked, TypeArticleUnliked}
}

func (h *CounterAdjuster) Handle(ctx context.Context, ev Event) error {
	var delta int64 = 1
	if ev.Type == TypeArticleUnliked {
		delta = -1
	}
	if err := h.Stats.AdjustLikes(ctx, ev.ItemID, delta); err != nil {
		return fmt.Errorf("adjust likes for %s: %w", ev.ItemID, err)
	}
	return nil
}

// CommentAdjuster applies a signed delta to an article's comment counter.
type CommentAdjuster interface {
	AdjustComments(ctx context.Context, articleID uuid.UUID, delta int64) error
}

// CommentCounterAdjuster keeps the denormalized comment counter in step
// with comment visibility: approval increments, deletion of a visible
// comment decrements. Deltas are commutative, like the like counter's.
type CommentCounterAdjuster struct {
	Stats CommentAdjuster
}

func (h *CommentCounterAdjuster) Name() string { return "comment_counter_adjuster" }
func (h *CommentCounterAdjuster) Handles() []Type {
	return []Type{TypeCommentApproved, TypeCommentDeleted}
}

func (h *CommentCounterAdjuster) Handle(ctx context.Context, ev Event) error {
	payload, ok := ev.Payload.(CommentPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", ev.Payload, ev.Type)
	}
	var delta int64 = 1
	if ev.Type == TypeCommentDeleted {
		delta = -1
	}
	if err := h.Stats.AdjustComments(ctx, payload.ArticleID, delta); err != nil {
		return fmt.Errorf("adjust comments for %s: %w", payload.ArticleID, err)
	}
	return nil
}
