package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind distinguishes why a notification was created.
type NotificationKind string

const (
	NotificationKindReply   NotificationKind = "reply"
	NotificationKindMention NotificationKind = "mention"
)

// Notification tells a user that someone replied to them or mentioned them.
// SourceID points at the comment that triggered it. Duplicate replies
// produce duplicate notifications; there is deliberately no dedup key.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	ActorID   uuid.UUID        `json:"actor_id"`
	SourceID  uuid.UUID        `json:"source_id"`
	Kind      NotificationKind `json:"kind"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
