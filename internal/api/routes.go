package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler, timeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	for _, middleware := range SetupMiddleware(timeout) {
		r.Use(middleware)
	}

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1/worlds", func(r chi.Router) {
		r.Post("/", handler.CreateWorld)
		r.Get("/", handler.ListWorlds)

		r.Route("/{worldId}", func(r chi.Router) {
			r.Use(handler.WorldContext)

			r.Get("/", handler.GetWorld)
			r.Delete("/", handler.DeleteWorld)
			r.Post("/viewer", handler.MoveViewer)
			r.Get("/tiles/{x}/{y}", handler.GetTile)
			r.Get("/chunks", handler.ListChunks)
			r.Get("/chunks/{x}/{y}", handler.GetChunk)
			r.Get("/chunks/{x}/{y}/edges/{edge}", handler.GetEdge)
			r.Get("/spawns", handler.ListSpawns)
			r.Get("/events", handler.ListEvents)
		})
	})

	return r
}
