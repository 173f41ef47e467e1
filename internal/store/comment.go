// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

const commentColumns = `id, article_id, author_id, parent_id, root_id, depth,
	path, raw_body, rendered_body, status, audit_reason, created_at, updated_at`

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	c := &models.Comment{}
	err := row.Scan(
		&c.ID, &c.ArticleID, &c.AuthorID, &c.ParentID, &c.RootID, &c.Depth,
		&c.Path, &c.RawBody, &c.RenderedBody, &c.Status, &c.AuditReason,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindByID retrieves a comment by its UUID. Returns nil if not found.
func (s *CommentStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+commentColumns+` FROM comments WHERE id = $1
	`, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// Create inserts a new comment. The id and thread position fields are
// assigned by the caller before insert because the path embeds the id.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (id, article_id, author_id, parent_id, root_id,
		                      depth, path, raw_body, rendered_body, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+commentColumns+`
	`, c.ID, c.ArticleID, c.AuthorID, c.ParentID, c.RootID,
		c.Depth, c.Path, c.RawBody, c.RenderedBody, c.Status,
	)
	created, err := scanComment(row)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

// Update persists the comment guarded by its loaded updated_at, returning
// ErrConflict if the row changed since it was read.
func (s *CommentStore) Update(ctx context.Context, c *models.Comment) error {
	err := s.db.QueryRowContext(ctx, `
		UPDATE comments SET
			raw_body = $1, rendered_body = $2, status = $3,
			audit_reason = $4, updated_at = NOW()
		WHERE id = $5 AND updated_at = $6
		RETURNING updated_at
	`, c.RawBody, c.RenderedBody, c.Status,
		c.AuditReason, c.ID, c.UpdatedAt,
	).Scan(&c.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// ListVisibleByArticle returns an article's approved comments ordered by
// thread path, so replies follow their parents.
func (s *CommentStore) ListVisibleByArticle(ctx context.Context, articleID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE article_id = $1 AND status = 'approved'
		ORDER BY path ASC
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments by article: %w", err)
	}
	return collectComments(rows)
}

// ListPending returns the moderation queue, oldest first.
func (s *CommentStore) ListPending(ctx context.Context, limit, offset int) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pending comments: %w", err)
	}
	return collectComments(rows)
}

func collectComments(rows *sql.Rows) ([]models.Comment, error) {
	defer rows.Close()
	var items []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}
