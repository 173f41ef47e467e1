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

const mediaColumns = `id, uploader_id, file_name, storage_key, content_type,
	size_bytes, url, created_at`

// MediaStore handles all media-related database operations.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

func scanMedia(row interface{ Scan(...any) error }) (*models.Media, error) {
	m := &models.Media{}
	err := row.Scan(
		&m.ID, &m.UploaderID, &m.FileName, &m.StorageKey, &m.ContentType,
		&m.SizeBytes, &m.URL, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts a new media record and returns it with the generated ID.
func (s *MediaStore) Create(ctx context.Context, m *models.Media) (*models.Media, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO media (uploader_id, file_name, storage_key, content_type,
		                   size_bytes, url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+mediaColumns,
		m.UploaderID, m.FileName, m.StorageKey, m.ContentType,
		m.SizeBytes, m.URL,
	)
	created, err := scanMedia(row)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return created, nil
}

// FindByID retrieves a single media record by its UUID.
func (s *MediaStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = $1`, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// List returns media items ordered by creation date, with pagination.
func (s *MediaStore) List(ctx context.Context, limit, offset int) ([]models.Media, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+mediaColumns+`
		FROM media
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// Delete removes a media record and returns it so the caller can clean
// up the corresponding S3 object.
func (s *MediaStore) Delete(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	row := s.db.QueryRowContext(ctx, `
		DELETE FROM media WHERE id = $1
		RETURNING `+mediaColumns, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete media: %w", err)
	}
	return m, nil
}
