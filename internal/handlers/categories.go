package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// Categories handles category listing and admin management.
type Categories struct {
	categories *store.CategoryStore
	logger     *slog.Logger
}

// NewCategories creates the category handler group.
func NewCategories(categories *store.CategoryStore, logger *slog.Logger) *Categories {
	return &Categories{categories: categories, logger: logger}
}

// List returns all categories ordered by name.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

type categoryRequest struct {
	Name string `json:"name"`
}

// Create adds a category. The slug is derived from the name.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, http.StatusBadRequest, "Name is required.")
		return
	}

	s := slug.Generate(name)
	if existing, err := h.categories.FindBySlug(r.Context(), s); err != nil {
		writeServiceError(w, err)
		return
	} else if existing != nil {
		respondError(w, http.StatusConflict, "category already exists")
		return
	}

	category, err := h.categories.Create(r.Context(), name, s)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.logger.Info("category created", "category_id", category.ID, "slug", s)
	respondJSON(w, http.StatusCreated, category)
}

// Delete removes a category. Articles keep working and fall back to no category.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
