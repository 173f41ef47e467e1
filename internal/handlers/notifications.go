package handlers

import (
	"log/slog"
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/store"
)

// Notifications handles the per-user notification feed.
type Notifications struct {
	notifications *store.NotificationStore
	logger        *slog.Logger
}

// NewNotifications creates the notification handler group.
func NewNotifications(notifications *store.NotificationStore, logger *slog.Logger) *Notifications {
	return &Notifications{notifications: notifications, logger: logger}
}

// List returns the authenticated user's notifications, newest first.
func (h *Notifications) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	limit, offset := pagination(r, 20, 100)
	items, err := h.notifications.ListByUser(r.Context(), sess.UserID, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// MarkRead marks one of the user's notifications as read. Marking a
// notification that is not yours is a no-op.
func (h *Notifications) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	sess := middleware.SessionFromCtx(r.Context())
	if err := h.notifications.MarkRead(r.Context(), sess.UserID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
