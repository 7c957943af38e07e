package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/cart"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/identity"
)

type fakeCartEngine struct {
	cart      *cart.Cart
	intent    []cart.Line
	intentErr error

	added    *cart.Line
	setQty   *int
	delta    *int
	removed  string
	cleared  bool
	buyNow   *cart.Line
	buyNowed bool
}

func (f *fakeCartEngine) Get(ctx context.Context, owner identity.Owner) (*cart.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartEngine) AddToCart(ctx context.Context, owner identity.Owner, line cart.Line) (*cart.Cart, error) {
	f.added = &line
	return f.cart, nil
}

func (f *fakeCartEngine) UpdateQuantity(ctx context.Context, owner identity.Owner, productID string, delta int) (*cart.Cart, error) {
	f.delta = &delta
	return f.cart, nil
}

func (f *fakeCartEngine) SetQuantity(ctx context.Context, owner identity.Owner, productID string, quantity int) (*cart.Cart, error) {
	f.setQty = &quantity
	return f.cart, nil
}

func (f *fakeCartEngine) RemoveFromCart(ctx context.Context, owner identity.Owner, productID string) (*cart.Cart, error) {
	f.removed = productID
	return f.cart, nil
}

func (f *fakeCartEngine) ClearCart(ctx context.Context, owner identity.Owner) error {
	f.cleared = true
	return nil
}

func (f *fakeCartEngine) BuyNow(ctx context.Context, owner identity.Owner, line *cart.Line) error {
	f.buyNowed = true
	f.buyNow = line
	return nil
}

func (f *fakeCartEngine) CheckoutIntent(ctx context.Context, owner identity.Owner) ([]cart.Line, error) {
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return f.intent, nil
}

func ownerRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	owner := identity.Owner{DeviceKey: "device-1"}
	return req.WithContext(identity.WithOwner(req.Context(), owner))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeCartResponse(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func sampleCart() *cart.Cart {
	return &cart.Cart{Lines: []cart.Line{
		{ProductID: "p1", Name: "Rose Face Wash", Price: 250, Quantity: 2},
	}}
}

func TestGetCart(t *testing.T) {
	engine := &fakeCartEngine{cart: sampleCart()}
	handler := NewCartHandler(engine)

	rec := httptest.NewRecorder()
	handler.GetCart(rec, ownerRequest(http.MethodGet, "/api/cart", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeCartResponse(t, rec)
	if resp.TotalItems != 2 || resp.TotalPrice != 500 {
		t.Errorf("unexpected totals: %+v", resp)
	}
}

func TestGetCartWithoutOwner(t *testing.T) {
	handler := NewCartHandler(&fakeCartEngine{cart: sampleCart()})

	rec := httptest.NewRecorder()
	handler.GetCart(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without identity headers, got %d", rec.Code)
	}
}

func TestAddItem(t *testing.T) {
	engine := &fakeCartEngine{cart: sampleCart()}
	handler := NewCartHandler(engine)

	body := `{"productId":"p2","name":"Aloe Gel","price":50,"quantity":3}`
	rec := httptest.NewRecorder()
	handler.AddItem(rec, ownerRequest(http.MethodPost, "/api/cart/items", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if engine.added == nil || engine.added.ProductID != "p2" || engine.added.Quantity != 3 {
		t.Errorf("engine received wrong line: %+v", engine.added)
	}
}

func TestAddItemRequiresProductID(t *testing.T) {
	handler := NewCartHandler(&fakeCartEngine{cart: sampleCart()})

	rec := httptest.NewRecorder()
	handler.AddItem(rec, ownerRequest(http.MethodPost, "/api/cart/items", `{"name":"ghost"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateItemQuantityWinsOverDelta(t *testing.T) {
	engine := &fakeCartEngine{cart: sampleCart()}
	handler := NewCartHandler(engine)

	req := ownerRequest(http.MethodPatch, "/api/cart/items/p1", `{"delta":1,"quantity":5}`)
	req = withURLParam(req, "productId", "p1")

	rec := httptest.NewRecorder()
	handler.UpdateItem(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if engine.setQty == nil || *engine.setQty != 5 {
		t.Errorf("expected SetQuantity(5), got %+v", engine.setQty)
	}
	if engine.delta != nil {
		t.Error("UpdateQuantity should not be called when quantity is present")
	}
}

func TestUpdateItemDelta(t *testing.T) {
	engine := &fakeCartEngine{cart: sampleCart()}
	handler := NewCartHandler(engine)

	req := ownerRequest(http.MethodPatch, "/api/cart/items/p1", `{"delta":-1}`)
	req = withURLParam(req, "productId", "p1")

	rec := httptest.NewRecorder()
	handler.UpdateItem(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if engine.delta == nil || *engine.delta != -1 {
		t.Errorf("expected UpdateQuantity(-1), got %+v", engine.delta)
	}
}

func TestUpdateItemRequiresDeltaOrQuantity(t *testing.T) {
	handler := NewCartHandler(&fakeCartEngine{cart: sampleCart()})

	req := ownerRequest(http.MethodPatch, "/api/cart/items/p1", `{}`)
	req = withURLParam(req, "productId", "p1")

	rec := httptest.NewRecorder()
	handler.UpdateItem(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRemoveItem(t *testing.T) {
	engine := &fakeCartEngine{cart: sampleCart()}
	handler := NewCartHandler(engine)

	req := ownerRequest(http.MethodDelete, "/api/cart/items/p1", "")
	req = withURLParam(req, "productId", "p1")

	rec := httptest.NewRecorder()
	handler.RemoveItem(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if engine.removed != "p1" {
		t.Errorf("expected p1 removed, got %q", engine.removed)
	}
}

func TestBuyNowWithProduct(t *testing.T) {
	engine := &fakeCartEngine{cart: sampleCart()}
	handler := NewCartHandler(engine)

	body := `{"productId":"p2","name":"Aloe Gel","price":50,"quantity":3}`
	rec := httptest.NewRecorder()
	handler.BuyNow(rec, ownerRequest(http.MethodPost, "/api/cart/buy-now", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if engine.buyNow == nil || engine.buyNow.ProductID != "p2" {
		t.Errorf("expected single-product selection, got %+v", engine.buyNow)
	}
}

func TestBuyNowWholeCart(t *testing.T) {
	engine := &fakeCartEngine{cart: sampleCart()}
	handler := NewCartHandler(engine)

	rec := httptest.NewRecorder()
	handler.BuyNow(rec, ownerRequest(http.MethodPost, "/api/cart/buy-now", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !engine.buyNowed || engine.buyNow != nil {
		t.Errorf("expected whole-cart selection, got %+v", engine.buyNow)
	}
}

func TestCheckoutIntentEmptyCart(t *testing.T) {
	engine := &fakeCartEngine{intentErr: cart.ErrEmptyCart}
	handler := NewCartHandler(engine)

	rec := httptest.NewRecorder()
	handler.CheckoutIntent(rec, ownerRequest(http.MethodGet, "/api/checkout/intent", ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cart is empty") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestCheckoutIntent(t *testing.T) {
	engine := &fakeCartEngine{intent: []cart.Line{
		{ProductID: "p2", Name: "Aloe Gel", Price: 50, Quantity: 3},
	}}
	handler := NewCartHandler(engine)

	rec := httptest.NewRecorder()
	handler.CheckoutIntent(rec, ownerRequest(http.MethodGet, "/api/checkout/intent", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeCartResponse(t, rec)
	if resp.TotalItems != 3 || resp.TotalPrice != 150 {
		t.Errorf("unexpected totals: %+v", resp)
	}
}
