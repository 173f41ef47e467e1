// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus represents the lifecycle stage of an article.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusArchived  ArticleStatus = "archived"
	ArticleStatusDeleted   ArticleStatus = "deleted"
)

// OutlineEntry is one heading extracted from an article body during
// processing. Entries are stored in document order.
type OutlineEntry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// Article is a blog post subject to lifecycle management. RawBody is the
// author-supplied markdown and the source of truth for edits; RenderedBody,
// Summary and Outline are derived by the processing pipeline and never
// hand-edited. Status changes only through the lifecycle state machine.
type Article struct {
	ID           uuid.UUID      `json:"id"`
	AuthorID     uuid.UUID      `json:"author_id"`
	CategoryID   *uuid.UUID     `json:"category_id,omitempty"`
	Title        string         `json:"title"`
	Slug         string         `json:"slug"`
	RawBody      string         `json:"raw_body"`
	RenderedBody string         `json:"rendered_body"`
	Summary      string         `json:"summary"`
	Outline      []OutlineEntry `json:"outline"`
	Status       ArticleStatus  `json:"status"`
	AuditReason  *string        `json:"audit_reason,omitempty"`
	PublishedAt  *time.Time     `json:"published_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// IsPublished returns true if the article is in published status.
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}

// IsDeleted returns true if the article has been soft-deleted. Deleted
// articles stay queryable by id but are excluded from listings.
func (a *Article) IsDeleted() bool {
	return a.Status == ArticleStatusDeleted
}
