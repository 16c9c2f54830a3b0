package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cinevision/services/catalog"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeCatalogError maps a catalog failure onto an HTTP status: upstream 404s
// pass through, everything else is a bad gateway.
func writeCatalogError(w http.ResponseWriter, err error) {
	var statusErr *catalog.StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}
	writeError(w, http.StatusBadGateway, err.Error())
}
