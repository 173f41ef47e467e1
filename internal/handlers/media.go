// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/storage"
	"inkwell/internal/store"
)

// maxUploadSize is the maximum allowed file upload size (20 MB).
const maxUploadSize = 20 << 20

// allowedMediaTypes defines MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// Media handles file uploads to object storage. The handler group is
// registered only when storage is configured.
type Media struct {
	media   *store.MediaStore
	storage *storage.Client
	logger  *slog.Logger
}

// NewMedia creates the media handler group.
func NewMedia(media *store.MediaStore, client *storage.Client, logger *slog.Logger) *Media {
	return &Media{media: media, storage: client, logger: logger}
}

// List returns uploaded media, newest first.
func (h *Media) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50, 200)
	items, err := h.media.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Upload accepts a multipart file, stores it in S3 and records its metadata.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 20 MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		respondError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 20 MB")
		return
	}

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		respondError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	// DetectContentType reports SVGs as XML or plain text.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}

	if !allowedMediaTypes[contentType] {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("file type %q is not allowed", contentType))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to process file")
		return
	}

	now := time.Now()
	ext := filepath.Ext(header.Filename)
	fileID := uuid.New().String()
	key := fmt.Sprintf("media/%d/%02d/%s%s", now.Year(), now.Month(), fileID, ext)

	if err := h.storage.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		h.logger.Error("s3 upload failed", "key", key, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to upload file")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	media, err := h.media.Create(r.Context(), &models.Media{
		UploaderID:  sess.UserID,
		FileName:    header.Filename,
		StorageKey:  key,
		ContentType: contentType,
		SizeBytes:   header.Size,
		URL:         h.storage.FileURL(key),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.Info("media uploaded", "media_id", media.ID, "key", key, "size", header.Size)
	respondJSON(w, http.StatusCreated, media)
}

// Delete removes a media record and its stored object.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	media, err := h.media.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if media == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	if h.storage != nil {
		if err := h.storage.Delete(r.Context(), media.StorageKey); err != nil {
			h.logger.Warn("s3 delete failed", "key", media.StorageKey, "error", err)
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
