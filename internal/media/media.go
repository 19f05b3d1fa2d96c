// Package media envuelve el host remoto de imágenes.
// El resto de la app solo conoce la interfaz Store: subir un asset y
// borrar por public id (best-effort).
package media

import (
	"context"
	"io"
)

// Asset es el resultado de un upload: URL pública + identificador
// opaco para poder borrarlo después.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// UploadOptions controla el destino y el límite de tamaño del asset.
type UploadOptions struct {
	// Folder destino en el host remoto.
	Folder string
	// MaxDimension acota ancho/alto. El host reduce server-side si la
	// imagen lo excede; nunca agranda y preserva aspect ratio.
	MaxDimension int
}

// Store es el contrato del media host.
// Destroy es idempotente desde la perspectiva del caller: borrar un
// public id inexistente o ya borrado no es un error.
type Store interface {
	Upload(ctx context.Context, content io.Reader, options UploadOptions) (Asset, error)
	Destroy(ctx context.Context, publicID string) error
}
