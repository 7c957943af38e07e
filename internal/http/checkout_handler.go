package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/cart"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/checkout"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/identity"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/order"
)

type CheckoutSubmitter interface {
	Submit(ctx context.Context, owner identity.Owner, form checkout.Form) (*order.Order, error)
}

type CheckoutHandler struct {
	service CheckoutSubmitter
}

func NewCheckoutHandler(service CheckoutSubmitter) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Submit maps the checkout error taxonomy onto HTTP statuses: empty intent
// and malformed input are the customer's to fix, everything else is a
// retryable server failure that leaves the cart untouched.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var form checkout.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	o, err := h.service.Submit(ctx, owner, form)
	if err != nil {
		var vErr *checkout.ValidationError
		switch {
		case errors.Is(err, cart.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "cart is empty")
		case errors.As(err, &vErr):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": vErr.Reason,
				"field": vErr.Field,
			})
		default:
			writeError(w, http.StatusInternalServerError, "order submission failed, please try again")
		}
		return
	}

	writeJSON(w, http.StatusCreated, o)
}
