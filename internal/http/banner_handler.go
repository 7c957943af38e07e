package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/RahatDev11/anys-beauty-corner-sub000/internal/banner"
)

type BannerHandler struct {
	repo banner.Repository
}

func NewBannerHandler(repo banner.Repository) *BannerHandler {
	return &BannerHandler{repo: repo}
}

func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	banners, err := h.repo.ListActive(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load banners")
		return
	}
	if banners == nil {
		banners = []banner.Banner{}
	}

	writeJSON(w, http.StatusOK, banners)
}
