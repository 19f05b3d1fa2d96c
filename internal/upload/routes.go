package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra la ruta de upload, siempre detrás del
// middleware de admin.
func RegisterRoutes(route chi.Router, handler *Handler, requireAdmin func(http.Handler) http.Handler) {
	route.Route("/upload", func(route chi.Router) {
		route.Use(requireAdmin)
		route.Post("/", handler.Upload)
	})
}
