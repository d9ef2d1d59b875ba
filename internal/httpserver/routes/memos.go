package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/jwhur/startpage/internal/httpserver/deps"
	"github.com/jwhur/startpage/internal/httpserver/handlers"
)

func init() { Register(registerMemos) }

func registerMemos(r chi.Router, d deps.Deps) {
	r.Route("/api/memos", func(r chi.Router) {
		r.Get("/", handlers.ListMemos(d))
		r.Post("/", handlers.CreateMemo(d))
		r.Patch("/{id}", handlers.UpdateMemo(d))
		r.Delete("/{id}", handlers.DeleteMemo(d))
	})
}
