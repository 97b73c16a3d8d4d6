package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupMiddleware() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,

		// Tiles are public, read-only data
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           300,
		}),

		middleware.SetHeader("Content-Type", "application/json"),

		// Large diffuse tiles take a while; keep in step with the server write timeout
		middleware.Timeout(30 * time.Second),

		// Generation is CPU bound, so queue rather than oversubscribe
		middleware.ThrottleBacklog(16, 64, 10*time.Second),
	}
}
