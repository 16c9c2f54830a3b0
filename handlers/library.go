package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cinevision/models"
	"cinevision/services/prefs"
)

type preferenceStore interface {
	Rating(movieID int64) (int, bool)
	SetRating(movieID int64, rating int) (models.Rating, error)
	RemoveRating(movieID int64) error
	AllRatings() []models.Rating
	FavoriteMovies() []models.Rating
	InWatchlist(movieID int64) bool
	AddToWatchlist(movieID int64) (models.WatchlistItem, error)
	RemoveFromWatchlist(movieID int64) error
	Watchlist() []models.WatchlistItem
	Export() models.UserData
	Import(data models.UserData) error
	Clear() error
}

var _ preferenceStore = (*prefs.Service)(nil)

// LibraryHandler serves the user's ratings and watchlist.
type LibraryHandler struct {
	Store preferenceStore
}

func NewLibraryHandler(store preferenceStore) *LibraryHandler {
	return &LibraryHandler{Store: store}
}

func (h *LibraryHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.AllRatings())
}

func (h *LibraryHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.FavoriteMovies())
}

func (h *LibraryHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDFromRequest(w, r)
	if !ok {
		return
	}
	rating, exists := h.Store.Rating(movieID)
	if !exists {
		writeError(w, http.StatusNotFound, "no rating for movie")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"movieId": movieID, "rating": rating})
}

func (h *LibraryHandler) SetRating(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDFromRequest(w, r)
	if !ok {
		return
	}
	var body struct {
		Rating int `json:"rating"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := h.Store.SetRating(movieID, body.Rating)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (h *LibraryHandler) RemoveRating(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDFromRequest(w, r)
	if !ok {
		return
	}
	if err := h.Store.RemoveRating(movieID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LibraryHandler) ListWatchlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Watchlist())
}

func (h *LibraryHandler) GetWatchlistStatus(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"inWatchlist": h.Store.InWatchlist(movieID)})
}

func (h *LibraryHandler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDFromRequest(w, r)
	if !ok {
		return
	}
	item, err := h.Store.AddToWatchlist(movieID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *LibraryHandler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDFromRequest(w, r)
	if !ok {
		return
	}
	if err := h.Store.RemoveFromWatchlist(movieID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LibraryHandler) Export(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Export())
}

// Import replaces the whole preference blob. Invalid input is rejected and
// nothing is persisted.
func (h *LibraryHandler) Import(w http.ResponseWriter, r *http.Request) {
	var data models.UserData
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Store.Import(data); err != nil {
		if errors.Is(err, prefs.ErrInvalidImport) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LibraryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
