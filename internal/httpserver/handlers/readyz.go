package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jwhur/startpage/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready      bool   `json:"ready"`
	Links      int    `json:"links"`
	LastReload string `json:"last_reload,omitempty"`
}

// Readyz reports ready once the link file has been loaded at least once.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastReload := d.Links.LastReload()
		ready := !lastReload.IsZero()

		resp := readyzResponse{
			Ready: ready,
			Links: d.Links.Count(),
		}
		if ready {
			resp.LastReload = lastReload.Format("2006-01-02 15:04:05")
		}

		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
