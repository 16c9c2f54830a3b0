package handlers

import (
	"context"
	"errors"
	"net/http"

	"cinevision/models"
	"cinevision/services/catalog"
	recommendsvc "cinevision/services/recommend"
)

type recommendService interface {
	Shortlist(ctx context.Context) ([]models.RecommendedMovie, error)
}

var _ recommendService = (*recommendsvc.Service)(nil)

// RecommendHandler serves the personalized shortlist.
type RecommendHandler struct {
	Service recommendService
}

func NewRecommendHandler(s recommendService) *RecommendHandler {
	return &RecommendHandler{Service: s}
}

func (h *RecommendHandler) Shortlist(w http.ResponseWriter, r *http.Request) {
	shortlist, err := h.Service.Shortlist(r.Context())
	if err != nil {
		// Without an API key the shortlist degrades to empty.
		if errors.Is(err, catalog.ErrNotConfigured) {
			writeJSON(w, http.StatusOK, []models.RecommendedMovie{})
			return
		}
		writeCatalogError(w, err)
		return
	}
	if shortlist == nil {
		shortlist = []models.RecommendedMovie{}
	}
	writeJSON(w, http.StatusOK, shortlist)
}
