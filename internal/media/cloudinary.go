package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryConfig son las credenciales del host. Se construye explícito
// en el arranque; el adapter no lee entorno ni mantiene estado global.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// CloudinaryStore implementa Store contra Cloudinary.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
}

var _ Store = (*CloudinaryStore)(nil)

// NewCloudinaryStore crea el adapter con credenciales explícitas.
func NewCloudinaryStore(cfg CloudinaryConfig) (*CloudinaryStore, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("media: incomplete cloudinary credentials")
	}

	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("media: init cloudinary: %w", err)
	}

	return &CloudinaryStore{client: client}, nil
}

// Upload sube el contenido y devuelve URL + public id.
// La transformación c_limit reduce imágenes que excedan MaxDimension;
// no agranda y preserva aspect ratio.
func (store *CloudinaryStore) Upload(ctx context.Context, content io.Reader, options UploadOptions) (Asset, error) {
	params := uploader.UploadParams{
		Folder:       options.Folder,
		ResourceType: "image",
	}
	if options.MaxDimension > 0 {
		params.Transformation = fmt.Sprintf("c_limit,w_%d,h_%d", options.MaxDimension, options.MaxDimension)
	}

	result, err := store.client.Upload.Upload(ctx, content, params)
	if err != nil {
		return Asset{}, fmt.Errorf("media: upload: %w", err)
	}
	// El SDK reporta errores de API en el body, no como error de Go.
	if result.Error.Message != "" {
		return Asset{}, fmt.Errorf("media: upload: %s", result.Error.Message)
	}

	return Asset{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// Destroy borra un asset por public id.
// "not found" cuenta como éxito: el asset ya no está, que es lo que se pidió.
func (store *CloudinaryStore) Destroy(ctx context.Context, publicID string) error {
	result, err := store.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("media: destroy %q: %w", publicID, err)
	}

	switch result.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("media: destroy %q: %s", publicID, result.Result)
	}
}
