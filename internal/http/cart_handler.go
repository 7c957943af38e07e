package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/cart"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/identity"
)

// CartEngine is the slice of the engine the HTTP layer needs.
type CartEngine interface {
	Get(ctx context.Context, owner identity.Owner) (*cart.Cart, error)
	AddToCart(ctx context.Context, owner identity.Owner, line cart.Line) (*cart.Cart, error)
	UpdateQuantity(ctx context.Context, owner identity.Owner, productID string, delta int) (*cart.Cart, error)
	SetQuantity(ctx context.Context, owner identity.Owner, productID string, quantity int) (*cart.Cart, error)
	RemoveFromCart(ctx context.Context, owner identity.Owner, productID string) (*cart.Cart, error)
	ClearCart(ctx context.Context, owner identity.Owner) error
	BuyNow(ctx context.Context, owner identity.Owner, line *cart.Line) error
	CheckoutIntent(ctx context.Context, owner identity.Owner) ([]cart.Line, error)
}

type CartHandler struct {
	engine CartEngine
}

func NewCartHandler(engine CartEngine) *CartHandler {
	return &CartHandler{engine: engine}
}

// cartResponse carries the cart plus its derived totals, recomputed on
// every read.
type cartResponse struct {
	Items      []cart.Line `json:"items"`
	TotalItems int         `json:"totalItems"`
	TotalPrice float64     `json:"totalPrice"`
}

func toCartResponse(c *cart.Cart) cartResponse {
	items := c.Lines
	if items == nil {
		items = []cart.Line{}
	}
	return cartResponse{
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

func requireOwner(w http.ResponseWriter, r *http.Request) (identity.Owner, bool) {
	owner, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-Id or X-Device-Id header")
	}
	return owner, ok
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.engine.Get(ctx, owner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var body cart.Line
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.engine.AddToCart(ctx, owner, body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	// Either a relative delta or an absolute quantity; quantity wins when
	// both are sent.
	var body struct {
		Delta    *int `json:"delta"`
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Delta == nil && body.Quantity == nil {
		writeError(w, http.StatusBadRequest, "delta or quantity is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	var (
		c   *cart.Cart
		err error
	)
	if body.Quantity != nil {
		c, err = h.engine.SetQuantity(ctx, owner, productID, *body.Quantity)
	} else {
		c, err = h.engine.UpdateQuantity(ctx, owner, productID, *body.Delta)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.engine.RemoveFromCart(ctx, owner, productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.engine.ClearCart(ctx, owner); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cart cleared"})
}

func (h *CartHandler) BuyNow(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	// Body is optional: with a product it becomes a single-line selection,
	// without one the whole cart is the order intent.
	var body *cart.Line
	if r.ContentLength != 0 {
		var line cart.Line
		if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if line.ProductID != "" {
			body = &line
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.engine.BuyNow(ctx, owner, body); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record buy-now selection")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "selection recorded"})
}

// CheckoutIntent answers "what would an order contain right now" so the
// checkout page can render it. An empty cart is a client error.
func (h *CartHandler) CheckoutIntent(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	lines, err := h.engine.CheckoutIntent(ctx, owner)
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			writeError(w, http.StatusBadRequest, "cart is empty")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load order intent")
		return
	}

	c := cart.Cart{Lines: lines}
	writeJSON(w, http.StatusOK, toCartResponse(&c))
}
