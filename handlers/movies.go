package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"cinevision/models"
	"cinevision/services/catalog"
)

// suggestLimit caps type-ahead suggestion responses.
const suggestLimit = 8

type catalogService interface {
	SearchMovies(ctx context.Context, query string, page int) (models.MoviePage, error)
	MovieDetails(ctx context.Context, movieID int64) (models.MovieDetails, error)
	MovieCredits(ctx context.Context, movieID int64) (models.Credits, error)
	TrendingMovies(ctx context.Context, window string, page int) (models.MoviePage, error)
	ClearCache()
}

var _ catalogService = (*catalog.Client)(nil)

// MoviesHandler serves catalog lookups: search, type-ahead suggestions,
// details, credits and trending.
type MoviesHandler struct {
	Catalog catalogService
}

func NewMoviesHandler(c catalogService) *MoviesHandler {
	return &MoviesHandler{Catalog: c}
}

func (h *MoviesHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query")
		return
	}
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	results, err := h.Catalog.SearchMovies(r.Context(), query, page)
	if err != nil {
		// Without an API key search degrades to an empty page.
		if errors.Is(err, catalog.ErrNotConfigured) {
			writeJSON(w, http.StatusOK, models.MoviePage{Page: page, Results: []models.Movie{}})
			return
		}
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Suggest serves the type-ahead path: at most 8 results from page 1.
func (h *MoviesHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query")
		return
	}

	results, err := h.Catalog.SearchMovies(r.Context(), query, 1)
	if err != nil {
		if errors.Is(err, catalog.ErrNotConfigured) {
			writeJSON(w, http.StatusOK, []models.Movie{})
			return
		}
		writeCatalogError(w, err)
		return
	}
	suggestions := results.Results
	if len(suggestions) > suggestLimit {
		suggestions = suggestions[:suggestLimit]
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (h *MoviesHandler) Details(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDFromRequest(w, r)
	if !ok {
		return
	}
	details, err := h.Catalog.MovieDetails(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotConfigured) {
			writeJSON(w, http.StatusOK, models.MovieDetails{Genres: []models.Genre{}})
			return
		}
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *MoviesHandler) Credits(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDFromRequest(w, r)
	if !ok {
		return
	}
	credits, err := h.Catalog.MovieCredits(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotConfigured) {
			writeJSON(w, http.StatusOK, models.Credits{Cast: []models.CastMember{}, Crew: []models.CrewMember{}})
			return
		}
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credits)
}

func (h *MoviesHandler) Trending(w http.ResponseWriter, r *http.Request) {
	window := r.URL.Query().Get("window")
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	results, err := h.Catalog.TrendingMovies(r.Context(), window, page)
	if err != nil {
		if errors.Is(err, catalog.ErrNotConfigured) {
			writeJSON(w, http.StatusOK, models.MoviePage{Page: page, Results: []models.Movie{}})
			return
		}
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// ClearCache drops all cached catalog responses, forcing fresh fetches.
// Useful after changing the API key.
func (h *MoviesHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.Catalog.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

func movieIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	movieID, err := strconv.ParseInt(mux.Vars(r)["movieID"], 10, 64)
	if err != nil || movieID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return 0, false
	}
	return movieID, true
}
