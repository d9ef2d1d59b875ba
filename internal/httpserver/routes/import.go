package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/jwhur/startpage/internal/httpserver/deps"
	"github.com/jwhur/startpage/internal/httpserver/handlers"
)

func init() { Register(registerImport) }

func registerImport(r chi.Router, d deps.Deps) {
	r.Post("/api/import", handlers.ImportBookmarks(d))
}
