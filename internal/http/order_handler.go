package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/identity"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/order"
)

type OrderService interface {
	Track(ctx context.Context, orderNumber, phone string) (*order.Order, error)
	ListByOwner(ctx context.Context, ownerKey string) ([]order.Order, error)
	UpdateStatus(ctx context.Context, id string, newStatus order.Status) error
}

type OrderHandler struct {
	service OrderService
}

func NewOrderHandler(service OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// TrackOrder serves guest order tracking: order number plus the phone it
// was placed with.
func (h *OrderHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderNumber")
	phone := r.URL.Query().Get("phone")
	if number == "" || phone == "" {
		writeError(w, http.StatusBadRequest, "order number and phone are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.service.Track(ctx, number, phone)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}

	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) ListOrdersMe(w http.ResponseWriter, r *http.Request) {
	owner, ok := identity.FromContext(r.Context())
	if !ok || !owner.Authenticated() {
		writeError(w, http.StatusUnauthorized, "sign in to see your orders")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	orders, err := h.service.ListByOwner(ctx, owner.Key())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}
