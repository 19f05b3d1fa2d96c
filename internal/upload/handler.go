package upload

import (
	"errors"
	"net/http"

	"github.com/Lelo88/menu-api-golang/internal/httpx"
	"github.com/Lelo88/menu-api-golang/internal/media"
)

// maxUploadBytes acota el body multipart completo.
const maxUploadBytes = 10 << 20 // 10 MiB

// Handler recibe la imagen del admin y la sube al media host.
// A diferencia de la limpieza de assets, acá una falla del host SÍ es
// fatal para la operación: sin URL no hay nada que devolver.
type Handler struct {
	store        media.Store
	folder       string
	maxDimension int
}

// NewHandler crea un handler de upload con el destino configurado.
func NewHandler(store media.Store, folder string, maxDimension int) *Handler {
	return &Handler{store: store, folder: folder, maxDimension: maxDimension}
}

// Upload maneja POST /upload: un único campo binario "image".
func (handler *Handler) Upload(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, maxUploadBytes)

	file, _, err := request.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.Fail(writer, request, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit")
			return
		}
		httpx.Fail(writer, request, http.StatusBadRequest, "missing_file", "no file uploaded")
		return
	}
	defer file.Close()

	asset, err := handler.store.Upload(request.Context(), file, media.UploadOptions{
		Folder:       handler.folder,
		MaxDimension: handler.maxDimension,
	})
	if err != nil {
		httpx.Fail(writer, request, http.StatusInternalServerError, "upload_failed", "image upload failed")
		return
	}

	httpx.OK(writer, http.StatusOK, asset)
}
