// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CommentStatus represents the moderation stage of a comment.
type CommentStatus string

const (
	CommentStatusPending      CommentStatus = "pending"
	CommentStatusApproved     CommentStatus = "approved"
	CommentStatusRejected     CommentStatus = "rejected"
	CommentStatusUserDeleted  CommentStatus = "user_deleted"
	CommentStatusAdminDeleted CommentStatus = "admin_deleted"
)

// Comment is a threaded reply on an article. Depth and Path are
// denormalized from ParentID for subtree queries: a root comment has
// depth 0 and path equal to its own id, and a child has
// depth = parent depth + 1 and path = parent path + "/" + id.
type Comment struct {
	ID           uuid.UUID     `json:"id"`
	ArticleID    uuid.UUID     `json:"article_id"`
	AuthorID     uuid.UUID     `json:"author_id"`
	ParentID     *uuid.UUID    `json:"parent_id,omitempty"`
	RootID       uuid.UUID     `json:"root_id"`
	Depth        int           `json:"depth"`
	Path         string        `json:"path"`
	RawBody      string        `json:"raw_body"`
	RenderedBody string        `json:"rendered_body"`
	Status       CommentStatus `json:"status"`
	AuditReason  *string       `json:"audit_reason,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// IsVisible returns true if the comment should appear in public listings.
func (c *Comment) IsVisible() bool {
	return c.Status == CommentStatusApproved
}

// PlaceInThread sets the denormalized thread position fields. A nil parent
// makes the comment a root; this is also how a comment whose parent has
// gone missing is demoted.
func (c *Comment) PlaceInThread(parent *Comment) {
	if parent == nil {
		c.ParentID = nil
		c.RootID = c.ID
		c.Depth = 0
		c.Path = c.ID.String()
		return
	}
	id := parent.ID
	c.ParentID = &id
	c.RootID = parent.RootID
	c.Depth = parent.Depth + 1
	c.Path = parent.Path + "/" + c.ID.String()
}
