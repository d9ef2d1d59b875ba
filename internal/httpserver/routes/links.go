package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/jwhur/startpage/internal/httpserver/deps"
	"github.com/jwhur/startpage/internal/httpserver/handlers"
)

func init() { Register(registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	r.Route("/api/links", func(r chi.Router) {
		r.Get("/", handlers.ListLinks(d))
		r.Post("/", handlers.CreateLink(d))
		r.Put("/", handlers.ReplaceLinks(d))
		r.Delete("/", handlers.DeleteAllLinks(d))

		r.Route("/{id}", func(r chi.Router) {
			r.Patch("/", handlers.UpdateLink(d))
			r.Delete("/", handlers.DeleteLink(d))
			r.Post("/click", handlers.Click(d))
		})
	})
}
