package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config agrupa la configuración necesaria para correr la aplicación.
// Las credenciales del media host viajan acá explícitamente: nada de
// estado global mutable en el adapter.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// UploadFolder es la carpeta destino en el media host.
	UploadFolder string
	// MaxImageDimension limita ancho/alto de las imágenes subidas.
	// El host reduce (nunca agranda) preservando aspect ratio.
	MaxImageDimension int
}

const (
	defaultPort         = "8080"
	defaultUploadFolder = "restaurant-uploads"
	defaultMaxDimension = 1600
)

// Load lee variables de entorno y valida lo mínimo indispensable.
// Un .env local se carga si existe; en producción simplemente no está.
func Load() (Config, error) {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = defaultPort
	}
	// Normalizamos por si alguien manda ":8080"
	port = strings.TrimPrefix(port, ":")

	cfg := Config{
		Port:                port,
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:           strings.TrimSpace(os.Getenv("JWT_SECRET")),
		CloudinaryCloudName: strings.TrimSpace(os.Getenv("CLOUDINARY_CLOUD_NAME")),
		CloudinaryAPIKey:    strings.TrimSpace(os.Getenv("CLOUDINARY_API_KEY")),
		CloudinaryAPISecret: strings.TrimSpace(os.Getenv("CLOUDINARY_API_SECRET")),
		UploadFolder:        strings.TrimSpace(os.Getenv("CLOUDINARY_UPLOAD_FOLDER")),
		MaxImageDimension:   defaultMaxDimension,
	}

	required := []struct {
		name  string
		value string
	}{
		{"DATABASE_URL", cfg.DatabaseURL},
		{"JWT_SECRET", cfg.JWTSecret},
		{"CLOUDINARY_CLOUD_NAME", cfg.CloudinaryCloudName},
		{"CLOUDINARY_API_KEY", cfg.CloudinaryAPIKey},
		{"CLOUDINARY_API_SECRET", cfg.CloudinaryAPISecret},
	}
	for _, variable := range required {
		if variable.value == "" {
			return Config{}, fmt.Errorf("missing required env var: %s", variable.name)
		}
	}

	if cfg.UploadFolder == "" {
		cfg.UploadFolder = defaultUploadFolder
	}

	if raw := strings.TrimSpace(os.Getenv("MAX_IMAGE_DIMENSION")); raw != "" {
		dimension, err := strconv.Atoi(raw)
		if err != nil || dimension < 1 {
			return Config{}, fmt.Errorf("invalid MAX_IMAGE_DIMENSION: %q", raw)
		}
		cfg.MaxImageDimension = dimension
	}

	return cfg, nil
}
