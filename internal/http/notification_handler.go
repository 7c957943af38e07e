package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/identity"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/notification"
)

type NotificationHandler struct {
	repo notification.Repository
}

func NewNotificationHandler(repo notification.Repository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-Id or X-Device-Id header")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.repo.ListByUser(ctx, owner.Key(), atoiOr(r.URL.Query().Get("limit"), 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load notifications")
		return
	}
	if items == nil {
		items = []notification.Notification{}
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	owner, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-Id or X-Device-Id header")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing notification id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.MarkRead(ctx, owner.Key(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update notification")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
