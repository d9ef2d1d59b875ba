package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/jwhur/startpage/internal/httpserver/deps"
	"github.com/jwhur/startpage/internal/importer"
	"github.com/jwhur/startpage/internal/logger"
	"github.com/jwhur/startpage/internal/sources/chromium"
)

type importResponse struct {
	Added   int    `json:"added"`
	Skipped int    `json:"skipped"`
	Total   int    `json:"total"`
	Format  string `json:"format"`
}

// ImportBookmarks accepts a bookmark export file (Netscape HTML or
// Chrome JSON), appends the new links, and reports added/skipped
// counts. Duplicate urls never enter the store and nothing is
// committed when the file is unparseable or empty.
func ImportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := readImportBody(w, r, d.MaxImportBytes)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "import file too large")
				return
			}
			writeError(w, http.StatusBadRequest, "unable to read import file")
			return
		}

		now := time.Now()
		if d.TimeNow != nil {
			now = d.TimeNow()
		}

		format := importer.Detect(data)
		candidates, err := importer.Import(data, importer.Options{
			KeepSpecialFolders: d.KeepSpecialFolders,
		}, now)
		if err != nil {
			switch {
			case errors.Is(err, importer.ErrUnknownFormat),
				errors.Is(err, chromium.ErrInvalidFormat):
				writeError(w, http.StatusBadRequest, "invalid bookmark file format")
			case errors.Is(err, importer.ErrNoBookmarks):
				writeError(w, http.StatusBadRequest, "no bookmarks found in file")
			default:
				d.Logger.Error("bookmark import failed", logger.Error(err))
				writeError(w, http.StatusInternalServerError, "import failed")
			}
			return
		}

		added, skipped := d.Links.Append(candidates)

		// Only the accepted links are appended to the file, so the
		// on-disk order matches the in-memory order.
		if err := d.RCFile.Append(added); err != nil {
			d.Logger.Error("failed to append imported links to rc file", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "import applied but persistence failed")
			return
		}

		d.Logger.Info("bookmark import completed",
			logger.String("format", format.String()),
			logger.Int("added", len(added)),
			logger.Int("skipped", skipped))

		writeJSON(w, http.StatusOK, importResponse{
			Added:   len(added),
			Skipped: skipped,
			Total:   len(added) + skipped,
			Format:  format.String(),
		})
	}
}

// readImportBody reads the upload, accepting either a multipart form
// with a "file" field or a raw body.
func readImportBody(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if mt := r.Header.Get("Content-Type"); len(mt) >= 19 && mt[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()
		return io.ReadAll(file)
	}

	return io.ReadAll(r.Body)
}
