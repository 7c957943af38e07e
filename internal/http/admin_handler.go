package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/banner"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/catalog"
	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/order"
)

// AdminHandler is the lightweight admin console surface: manage products
// and banners, advance order fulfillment.
type AdminHandler struct {
	products catalog.Repository
	banners  banner.Repository
	orders   OrderService
}

func NewAdminHandler(products catalog.Repository, banners banner.Repository, orders OrderService) *AdminHandler {
	return &AdminHandler{products: products, banners: banners, orders: orders}
}

func (h *AdminHandler) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if p.SKU == "" || p.Name == "" || p.Price <= 0 {
		writeError(w, http.StatusBadRequest, "sku, name and a positive price are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.products.Upsert(ctx, &p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *AdminHandler) SetProductActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.products.SetActive(ctx, id, body.Active); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *AdminHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	// Active defaults to true when the field is absent, so a plain create
	// goes live immediately; an explicit false stages the banner.
	var body struct {
		Title   string `json:"title"`
		TitleBN string `json:"titleBn"`
		Image   string `json:"image"`
		Link    string `json:"link"`
		Active  *bool  `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	b := banner.Banner{
		Title:   body.Title,
		TitleBN: body.TitleBN,
		Image:   body.Image,
		Link:    body.Link,
		Active:  body.Active == nil || *body.Active,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.banners.Create(ctx, &b); err != nil {
		if errors.Is(err, banner.ErrNoContent) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save banner")
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

func (h *AdminHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.banners.Delete(ctx, id); err != nil {
		if errors.Is(err, banner.ErrNotFound) {
			writeError(w, http.StatusNotFound, "banner not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete banner")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Status order.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.orders.UpdateStatus(ctx, id, body.Status); err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, order.ErrInvalidTransition):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to update order status")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
