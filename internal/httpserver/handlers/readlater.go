package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jwhur/startpage/internal/httpserver/deps"
	"github.com/jwhur/startpage/internal/logger"
	"github.com/jwhur/startpage/internal/store"
)

// ListReadLater returns the read-later list, newest first.
func ListReadLater(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := d.ReadLater.List()
		writeJSON(w, http.StatusOK, map[string]any{
			"items": items,
			"count": len(items),
		})
	}
}

// AddReadLater adds an item from a JSON body with "title" and "url".
func AddReadLater(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if req.URL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		item, err := d.ReadLater.Add(req.Title, req.URL)
		if err != nil {
			d.Logger.Error("failed to save read-later item", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save item")
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}

// MarkReadLater flips an item's read flag from a JSON body with "read".
func MarkReadLater(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req struct {
			Read bool `json:"read"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		item, err := d.ReadLater.MarkRead(id, req.Read)
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "item not found")
		case err != nil:
			d.Logger.Error("failed to update read-later item", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to update item")
		default:
			writeJSON(w, http.StatusOK, item)
		}
	}
}

// DeleteReadLater removes one item by id.
func DeleteReadLater(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		err := d.ReadLater.Delete(id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "item not found")
		case err != nil:
			d.Logger.Error("failed to delete read-later item", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete item")
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}
}
