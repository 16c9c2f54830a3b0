package handlers

import (
	"net/http"
	"os"
	"strings"
	"sync"
)

var (
	version     string
	versionOnce sync.Once
)

type VersionHandler struct{}

type VersionResponse struct {
	Version string `json:"version"`
}

func NewVersionHandler() *VersionHandler {
	return &VersionHandler{}
}

// serverVersion reads version.txt once and caches the result.
func serverVersion() string {
	versionOnce.Do(func() {
		data, err := os.ReadFile("version.txt")
		if err != nil {
			version = "dev"
			return
		}
		version = strings.TrimSpace(string(data))
	})
	return version
}

func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: serverVersion()})
}
