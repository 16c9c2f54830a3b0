package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"cinevision/models"
	aisvc "cinevision/services/ai"
)

type aiService interface {
	GetRecommendations(ctx context.Context, input string) []models.AIRecommendation
	Resolve(ctx context.Context, recs []models.AIRecommendation) []models.RecommendedMovie
}

var _ aiService = (*aisvc.Service)(nil)

// AIHandler serves model-driven suggestions. The service itself never fails;
// an empty result means the key is missing and nothing matched the catalog.
type AIHandler struct {
	Service aiService
}

func NewAIHandler(s aiService) *AIHandler {
	return &AIHandler{Service: s}
}

type aiResponse struct {
	Recommendations []models.AIRecommendation `json:"recommendations"`
	Movies          []models.RecommendedMovie `json:"movies"`
}

func (h *AIHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	input := strings.TrimSpace(body.Input)
	if input == "" {
		writeError(w, http.StatusBadRequest, "missing input")
		return
	}

	recs := h.Service.GetRecommendations(r.Context(), input)
	movies := h.Service.Resolve(r.Context(), recs)
	if movies == nil {
		movies = []models.RecommendedMovie{}
	}
	writeJSON(w, http.StatusOK, aiResponse{Recommendations: recs, Movies: movies})
}
