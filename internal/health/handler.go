package health

import (
	"context"
	"net/http"
	"time"

	"github.com/Lelo88/menu-api-golang/internal/httpx"
)

// Pinger es lo único que health necesita de la DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler encapsula endpoints de health.
type Handler struct {
	database Pinger
}

// New crea un handler de health.
func New(database Pinger) *Handler {
	return &Handler{database: database}
}

// Health indica si el proceso está vivo.
// NO chequea base de datos; eso es /ready.
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready indica si el proceso puede atender tráfico: la DB tiene que responder.
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := handler.database.Ping(r.Context()); err != nil {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database not reachable")
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}
