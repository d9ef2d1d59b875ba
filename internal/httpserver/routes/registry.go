// Package routes collects the start-page route set: each feature file
// (links, import, memos, readlater, infra) contributes its routes via
// an init()-time Register call, and the server mounts them all with a
// single RegisterAll.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jwhur/startpage/internal/httpserver/deps"
)

type (
	// Registrar mounts one feature's routes on the router.
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg Registrar
	mws []Middleware
}

var registry []entry

// Register adds a registrar with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws})
}

// RegisterAll mounts every registered feature. Called once from
// httpserver.New after the global middleware chain is in place.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, e := range registry {
		if len(e.mws) == 0 {
			e.reg(r, d)
			continue
		}
		e.reg(r.With(e.mws...), d)
	}
}
