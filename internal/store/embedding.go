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

	"inkwell/internal/recommend"
)

// EmbeddingStore persists article similarity vectors. Vectors are stored as
// JSONB arrays; similarity math happens in the application, not the database.
type EmbeddingStore struct {
	db *sql.DB
}

// NewEmbeddingStore creates a new EmbeddingStore with the given database connection.
func NewEmbeddingStore(db *sql.DB) *EmbeddingStore {
	return &EmbeddingStore{db: db}
}

// UpsertVector stores or replaces the vector for an article.
func (s *EmbeddingStore) UpsertVector(ctx context.Context, articleID uuid.UUID, vector []float32) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("encode vector: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO article_embeddings (article_id, vector, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (article_id) DO UPDATE SET vector = $2, updated_at = NOW()
	`, articleID, data)
	if err != nil {
		return fmt.Errorf("upsert vector: %w", err)
	}
	return nil
}

// VectorOf returns the stored vector for an article, or nil if none exists.
func (s *EmbeddingStore) VectorOf(ctx context.Context, articleID uuid.UUID) ([]float32, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT vector FROM article_embeddings WHERE article_id = $1
	`, articleID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find vector: %w", err)
	}
	var vector []float32
	if err := json.Unmarshal(data, &vector); err != nil {
		return nil, fmt.Errorf("decode vector: %w", err)
	}
	return vector, nil
}

// PublishedVectors returns the vectors of all currently published articles.
func (s *EmbeddingStore) PublishedVectors(ctx context.Context) ([]recommend.ArticleVector, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.article_id, e.vector
		FROM article_embeddings e
		JOIN articles a ON a.id = e.article_id
		WHERE a.status = 'published'
	`)
	if err != nil {
		return nil, fmt.Errorf("list published vectors: %w", err)
	}
	defer rows.Close()

	var items []recommend.ArticleVector
	for rows.Next() {
		var av recommend.ArticleVector
		var data []byte
		if err := rows.Scan(&av.ArticleID, &data); err != nil {
			return nil, fmt.Errorf("scan vector: %w", err)
		}
		if err := json.Unmarshal(data, &av.Vector); err != nil {
			return nil, fmt.Errorf("decode vector: %w", err)
		}
		items = append(items, av)
	}
	return items, rows.Err()
}
