// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

const articleColumns = `id, author_id, category_id, title, slug, raw_body,
	rendered_body, summary, outline, status, audit_reason,
	published_at, created_at, updated_at`

// ArticleStore handles all article-related database operations.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

func scanArticle(row interface{ Scan(...any) error }) (*models.Article, error) {
	a := &models.Article{}
	var outline []byte
	err := row.Scan(
		&a.ID, &a.AuthorID, &a.CategoryID, &a.Title, &a.Slug, &a.RawBody,
		&a.RenderedBody, &a.Summary, &outline, &a.Status, &a.AuditReason,
		&a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(outline) > 0 {
		if err := json.Unmarshal(outline, &a.Outline); err != nil {
			return nil, fmt.Errorf("decode outline: %w", err)
		}
	}
	return a, nil
}

// FindByID retrieves an article by its UUID, including soft-deleted ones.
// Returns nil if not found.
func (s *ArticleStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+articleColumns+` FROM articles WHERE id = $1
	`, id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// FindBySlug retrieves a published article by its slug.
func (s *ArticleStore) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+articleColumns+` FROM articles WHERE slug = $1 AND status = 'published'
	`, slug)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	return a, nil
}

// FindByIDs retrieves articles for the given ids, preserving the input
// order. Missing ids are skipped.
func (s *ArticleStore) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+` FROM articles
		WHERE id = ANY($1::uuid[]) AND status != 'deleted'
	`, idStrs)
	if err != nil {
		return nil, fmt.Errorf("find articles by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]models.Article, len(ids))
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		byID[a.ID] = *a
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// ListPublished returns published articles, newest publication first.
func (s *ArticleStore) ListPublished(ctx context.Context, limit, offset int) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+` FROM articles
		WHERE status = 'published'
		ORDER BY published_at DESC NULLS LAST
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}
	return collectArticles(rows)
}

// ListByAuthor returns all of an author's non-deleted articles, newest
// first. Used for the author dashboard, so drafts and archived items show.
func (s *ArticleStore) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+` FROM articles
		WHERE author_id = $1 AND status != 'deleted'
		ORDER BY created_at DESC
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list articles by author: %w", err)
	}
	return collectArticles(rows)
}

// ListPublishedExcept returns recent published articles excluding one id.
func (s *ArticleStore) ListPublishedExcept(ctx context.Context, exclude uuid.UUID, limit int) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+` FROM articles
		WHERE status = 'published' AND id != $1
		ORDER BY published_at DESC NULLS LAST
		LIMIT $2
	`, exclude, limit)
	if err != nil {
		return nil, fmt.Errorf("list published except: %w", err)
	}
	return collectArticles(rows)
}

// ListPublishedByCategoryExcept returns recent published articles in a
// category, excluding one id.
func (s *ArticleStore) ListPublishedByCategoryExcept(ctx context.Context, categoryID, exclude uuid.UUID, limit int) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+` FROM articles
		WHERE status = 'published' AND category_id = $1 AND id != $2
		ORDER BY published_at DESC NULLS LAST
		LIMIT $3
	`, categoryID, exclude, limit)
	if err != nil {
		return nil, fmt.Errorf("list published by category: %w", err)
	}
	return collectArticles(rows)
}

// Create inserts a new article and returns it with generated fields.
func (s *ArticleStore) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	outline, err := json.Marshal(a.Outline)
	if err != nil {
		return nil, fmt.Errorf("encode outline: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO articles (author_id, category_id, title, slug, raw_body,
		                      rendered_body, summary, outline, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+articleColumns+`
	`, a.AuthorID, a.CategoryID, a.Title, a.Slug, a.RawBody,
		a.RenderedBody, a.Summary, outline, a.Status, a.PublishedAt,
	)
	created, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return created, nil
}

// Update persists the article guarded by its loaded updated_at: if the row
// changed since the caller read it, ErrConflict is returned and nothing is
// written. On success the article's UpdatedAt is refreshed in place.
func (s *ArticleStore) Update(ctx context.Context, a *models.Article) error {
	outline, err := json.Marshal(a.Outline)
	if err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	err = s.db.QueryRowContext(ctx, `
		UPDATE articles SET
			category_id = $1, title = $2, slug = $3, raw_body = $4,
			rendered_body = $5, summary = $6, outline = $7, status = $8,
			audit_reason = $9, published_at = $10, updated_at = NOW()
		WHERE id = $11 AND updated_at = $12
		RETURNING updated_at
	`, a.CategoryID, a.Title, a.Slug, a.RawBody,
		a.RenderedBody, a.Summary, outline, a.Status,
		a.AuditReason, a.PublishedAt, a.ID, a.UpdatedAt,
	).Scan(&a.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

func collectArticles(rows *sql.Rows) ([]models.Article, error) {
	defer rows.Close()
	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}
