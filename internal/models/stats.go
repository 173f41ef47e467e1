package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStats holds denormalized counters for a published article. The row
// is created zeroed when the article is first published and adjusted by
// asynchronous event handlers afterwards.
type ArticleStats struct {
	ArticleID    uuid.UUID `json:"article_id"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}
