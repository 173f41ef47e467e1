// Package events decouples lifecycle transitions from their side effects.
// Services publish typed events to the Bus; subscribed handlers run them
// asynchronously on a bounded worker pool. Delivery is at-least-once from
// the handlers' point of view and carries no ordering guarantee across
// event types, so handlers must be idempotent or commutative.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies what happened to a content item.
type Type string

const (
	// TypeArticlePublished fires when an article first becomes visible.
	TypeArticlePublished Type = "ARTICLE_PUBLISHED"
	// TypeArticleEdited fires when a published article's body changes.
	TypeArticleEdited Type = "ARTICLE_EDITED"
	// TypeCommentApproved fires when a comment becomes visible.
	TypeCommentApproved Type = "COMMENT_APPROVED"
	// TypeCommentDeleted fires when a visible comment is soft-deleted.
	// Deleting a comment that was never approved emits nothing.
	TypeCommentDeleted Type = "COMMENT_DELETED"
	// TypeReplyCreated fires when a comment is created.
	TypeReplyCreated Type = "REPLY_CREATED"
	// TypeArticleLiked and TypeArticleUnliked adjust the like counter.
	TypeArticleLiked   Type = "ARTICLE_LIKED"
	TypeArticleUnliked Type = "ARTICLE_UNLIKED"
)

// Event is the envelope published on every externally visible transition.
// ItemID is the article or comment the event is about; ActorID is the user
// who triggered it.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      Type      `json:"type"`
	ItemID    uuid.UUID `json:"item_id"`
	ActorID   uuid.UUID `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// New builds an event envelope with a fresh id and timestamp.
func New(t Type, itemID, actorID uuid.UUID, payload any) Event {
	return Event{
		ID:        uuid.New(),
		Type:      t,
		ItemID:    itemID,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// ReplyCreatedPayload carries the thread context of a new comment.
// Mentions holds display names extracted from the raw body; resolution to
// user ids happens in the notification handler.
type ReplyCreatedPayload struct {
	ArticleID       uuid.UUID  `json:"article_id"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id,omitempty"`
	Mentions        []string   `json:"mentions,omitempty"`
}

// CommentPayload names the article a comment event belongs to. The
// envelope's ItemID is the comment itself, so visibility events carry the
// article id here for the counter handler.
type CommentPayload struct {
	ArticleID uuid.UUID `json:"article_id"`
}
