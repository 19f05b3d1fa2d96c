package menu

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra las rutas del menú en el router.
// El listado es público; todo lo que escribe exige el middleware de admin
// ANTES de llegar al handler.
func RegisterRoutes(route chi.Router, handler *Handler, requireAdmin func(http.Handler) http.Handler) {
	route.Route("/menu", func(route chi.Router) {
		route.Get("/", handler.List)

		route.Group(func(route chi.Router) {
			route.Use(requireAdmin)
			route.Post("/", handler.Create)
			route.Post("/bulk-delete", handler.BulkDelete)
			route.Put("/{id}", handler.Update)
			route.Delete("/{id}", handler.Delete)
		})
	})
}
