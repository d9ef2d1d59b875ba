package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jwhur/startpage/internal/domain"
	"github.com/jwhur/startpage/internal/httpserver/deps"
	"github.com/jwhur/startpage/internal/logger"
	"github.com/jwhur/startpage/internal/rc"
	"github.com/jwhur/startpage/internal/store"
)

type linkListResponse struct {
	Links []*domain.Link `json:"links"`
	Count int            `json:"count"`
}

// ListLinks returns the full link collection.
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links := d.Links.All()
		writeJSON(w, http.StatusOK, linkListResponse{Links: links, Count: len(links)})
	}
}

// CreateLink adds one manually-entered link and persists the file.
func CreateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name        string   `json:"name"`
			URL         string   `json:"url"`
			Tags        []string `json:"tags"`
			Description string   `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		tags := body.Tags
		if len(tags) == 0 {
			tags = []string{domain.UnclassifiedTag}
		}

		link, err := d.Links.Add(domain.Candidate{
			Name:        domain.SanitizeName(body.Name),
			URL:         domain.NormalizeURL(body.URL),
			Tags:        tags,
			Description: body.Description,
			Source:      "manual",
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, store.ErrDuplicateURL) {
				status = http.StatusConflict
			}
			writeError(w, status, err.Error())
			return
		}

		if err := d.RCFile.Save(d.Links.All()); err != nil {
			d.Logger.Error("failed to persist rc file after add", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "link added but persistence failed")
			return
		}
		writeJSON(w, http.StatusCreated, link)
	}
}

// ReplaceLinks rebuilds the collection from a raw RC body. Used when a
// client pushes full-file content; intentionally not additive.
func ReplaceLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, d.MaxImportBytes))
		if err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, "body too large")
			return
		}

		records := rc.Parse(string(data))
		batch := make([]domain.Candidate, len(records))
		for i, rec := range records {
			batch[i] = domain.Candidate{Name: rec.Name, URL: rec.URL, Tags: rec.Tags, Source: "rc"}
		}

		count := d.Links.Replace(batch)
		if err := d.RCFile.Save(d.Links.All()); err != nil {
			d.Logger.Error("failed to persist rc file after replace", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "replace applied but persistence failed")
			return
		}

		d.Logger.Info("link collection replaced",
			logger.Int("count", count),
			logger.Int("lines", len(records)))
		writeJSON(w, http.StatusOK, map[string]int{"count": count})
	}
}

// UpdateLink edits one link.
func UpdateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var body struct {
			Name        *string  `json:"name"`
			URL         *string  `json:"url"`
			Tags        []string `json:"tags"`
			Description *string  `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		link, err := d.Links.Update(id, store.LinkUpdate{
			Name:        body.Name,
			URL:         body.URL,
			Tags:        body.Tags,
			Description: body.Description,
		})
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				writeError(w, http.StatusNotFound, "link not found")
			case errors.Is(err, store.ErrDuplicateURL):
				writeError(w, http.StatusConflict, err.Error())
			default:
				writeError(w, http.StatusBadRequest, err.Error())
			}
			return
		}

		if err := d.RCFile.Save(d.Links.All()); err != nil {
			d.Logger.Error("failed to persist rc file after update", logger.Error(err))
		}
		writeJSON(w, http.StatusOK, link)
	}
}

// DeleteLink removes one link.
func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		link, found := d.Links.Get(id)
		if !found || !d.Links.Delete(id) {
			writeError(w, http.StatusNotFound, "link not found")
			return
		}

		if d.Clicks != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.Clicks.Forget(ctx, link.URL); err != nil {
				d.Logger.Debug("failed to drop redis click keys", logger.Error(err))
			}
		}

		if err := d.RCFile.Save(d.Links.All()); err != nil {
			d.Logger.Error("failed to persist rc file after delete", logger.Error(err))
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteAllLinks empties the collection.
func DeleteAllLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := d.Links.DeleteAll()
		if err := d.RCFile.Save(nil); err != nil {
			d.Logger.Error("failed to persist rc file after delete-all", logger.Error(err))
		}
		d.Logger.Info("all links deleted", logger.Int("count", n))
		writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
	}
}

// Click records a click on a link. The memory store is authoritative;
// the Redis mirror is best effort.
func Click(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		link, ok := d.Links.RecordClick(id)
		if !ok {
			writeError(w, http.StatusNotFound, "link not found")
			return
		}

		if d.Clicks != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.Clicks.RecordClick(ctx, link.URL, *link.LastClicked); err != nil {
				d.Logger.Debug("failed to mirror click to redis", logger.Error(err))
			}
		}

		writeJSON(w, http.StatusOK, link)
	}
}
