package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/jwhur/startpage/internal/httpserver/deps"
	"github.com/jwhur/startpage/internal/httpserver/handlers"
)

func init() { Register(registerReadLater) }

func registerReadLater(r chi.Router, d deps.Deps) {
	r.Route("/api/readlater", func(r chi.Router) {
		r.Get("/", handlers.ListReadLater(d))
		r.Post("/", handlers.AddReadLater(d))
		r.Patch("/{id}", handlers.MarkReadLater(d))
		r.Delete("/{id}", handlers.DeleteReadLater(d))
	})
}
