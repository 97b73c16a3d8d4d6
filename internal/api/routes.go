package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/tiles", func(r chi.Router) {
			r.Post("/batch", handler.PostTileBatch)
			r.Get("/{x}/{z}", handler.GetTile)
			r.Get("/{x}/{z}/diffuse", handler.GetDiffusedTile)
		})
	})

	return r
}
