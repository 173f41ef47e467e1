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

// StatsStore handles the denormalized per-article counters.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore creates a new StatsStore with the given database connection.
func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// EnsureStats creates a zeroed counter row for the article if one does not
// exist yet. Safe to call on every publish; re-publishing is a no-op.
func (s *StatsStore) EnsureStats(ctx context.Context, articleID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO article_stats (article_id)
		VALUES ($1)
		ON CONFLICT (article_id) DO NOTHING
	`, articleID)
	if err != nil {
		return fmt.Errorf("ensure stats: %w", err)
	}
	return nil
}

// FindByArticle retrieves the counters for an article. Returns nil if the
// article has never been published.
func (s *StatsStore) FindByArticle(ctx context.Context, articleID uuid.UUID) (*models.ArticleStats, error) {
	st := &models.ArticleStats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT article_id, view_count, like_count, comment_count, updated_at
		FROM article_stats WHERE article_id = $1
	`, articleID).Scan(
		&st.ArticleID, &st.ViewCount, &st.LikeCount, &st.CommentCount, &st.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find stats: %w", err)
	}
	return st, nil
}

// AdjustLikes applies a like delta. Deltas are not clamped, so a transient
// negative count from out-of-order unlike delivery corrects itself once the
// matching like arrives.
func (s *StatsStore) AdjustLikes(ctx context.Context, articleID uuid.UUID, delta int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE article_stats
		SET like_count = like_count + $1, updated_at = NOW()
		WHERE article_id = $2
	`, delta, articleID)
	if err != nil {
		return fmt.Errorf("adjust likes: %w", err)
	}
	return nil
}

// AdjustComments applies a comment-count delta.
func (s *StatsStore) AdjustComments(ctx context.Context, articleID uuid.UUID, delta int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE article_stats
		SET comment_count = comment_count + $1, updated_at = NOW()
		WHERE article_id = $2
	`, delta, articleID)
	if err != nil {
		return fmt.Errorf("adjust comments: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter by one.
func (s *StatsStore) IncrementViews(ctx context.Context, articleID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE article_stats
		SET view_count = view_count + 1, updated_at = NOW()
		WHERE article_id = $1
	`, articleID)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}
