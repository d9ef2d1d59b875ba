package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jwhur/startpage/internal/httpserver/deps"
	"github.com/jwhur/startpage/internal/logger"
	"github.com/jwhur/startpage/internal/store"
)

type memoRequest struct {
	Content string `json:"content"`
}

// ListMemos returns every memo, newest first.
func ListMemos(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memos := d.Memos.List()
		writeJSON(w, http.StatusOK, map[string]any{
			"memos": memos,
			"count": len(memos),
		})
	}
}

// CreateMemo adds a memo from a JSON body.
func CreateMemo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req memoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "memo content is required")
			return
		}

		memo, err := d.Memos.Create(req.Content)
		if err != nil {
			d.Logger.Error("failed to save memo", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save memo")
			return
		}
		writeJSON(w, http.StatusCreated, memo)
	}
}

// UpdateMemo replaces a memo's content.
func UpdateMemo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req memoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "memo content is required")
			return
		}

		memo, err := d.Memos.Update(id, req.Content)
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "memo not found")
		case err != nil:
			d.Logger.Error("failed to update memo", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to update memo")
		default:
			writeJSON(w, http.StatusOK, memo)
		}
	}
}

// DeleteMemo removes a memo by id.
func DeleteMemo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		err := d.Memos.Delete(id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "memo not found")
		case err != nil:
			d.Logger.Error("failed to delete memo", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete memo")
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}
}
