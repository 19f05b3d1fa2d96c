package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lelo88/menu-api-golang/internal/auth"
	"github.com/Lelo88/menu-api-golang/internal/config"
	"github.com/Lelo88/menu-api-golang/internal/db"
	"github.com/Lelo88/menu-api-golang/internal/docs"
	"github.com/Lelo88/menu-api-golang/internal/health"
	"github.com/Lelo88/menu-api-golang/internal/httpx"
	"github.com/Lelo88/menu-api-golang/internal/media"
	"github.com/Lelo88/menu-api-golang/internal/menu"
	"github.com/Lelo88/menu-api-golang/internal/upload"
)

// Seams inyectables para poder testear el arranque sin proceso real.
var (
	loadConfigFn     = config.Load
	newPoolFn        = func(ctx context.Context, url string) (*pgxpool.Pool, error) { return db.NewPool(ctx, url) }
	listenAndServeFn = http.ListenAndServe
	fatalf           = log.Fatalf
)

// appDB es lo que el router necesita de la DB: queries del repositorio
// y ping para readiness.
type appDB interface {
	menu.DB
	health.Pinger
}

// buildRouter arma el router completo de la aplicación.
// Separado de main para poder ejercitarlo en tests con fakes.
func buildRouter(database appDB, store media.Store, cfg config.Config) chi.Router {
	r := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Errores de routing se manejan a nivel router.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusNotFound, "not_found", "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	verifier := auth.NewVerifier(cfg.JWTSecret)

	menuHandler := menu.NewHandler(menu.NewService(menu.NewRepository(database), store))
	uploadHandler := upload.NewHandler(store, cfg.UploadFolder, cfg.MaxImageDimension)

	r.Route("/api", func(r chi.Router) {
		menu.RegisterRoutes(r, menuHandler, verifier.RequireAdmin)
		upload.RegisterRoutes(r, uploadHandler, verifier.RequireAdmin)
	})

	healthHandler := health.New(database)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	docs.RegisterRoutes(r)

	return r
}

func main() {
	cfg, err := loadConfigFn()
	if err != nil {
		fatalf("config: %v", err)
		return
	}

	// Contexto raíz del proceso.
	ctx := context.Background()

	pool, err := newPoolFn(ctx, cfg.DatabaseURL)
	if err != nil {
		fatalf("db: %v", err)
		return
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		fatalf("migrate: %v", err)
		return
	}

	store, err := media.NewCloudinaryStore(media.CloudinaryConfig{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
	})
	if err != nil {
		fatalf("media: %v", err)
		return
	}

	router := buildRouter(pool, store, cfg)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := listenAndServeFn(addr, router); err != nil {
		fatalf("server: %v", err)
	}
}
