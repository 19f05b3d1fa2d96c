package menu

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Lelo88/menu-api-golang/internal/httpx"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB ni media host.
type ServiceAPI interface {
	Create(ctx context.Context, input CreateMenuItemInput) (MenuItem, error)
	List(ctx context.Context, params ListParams) (ListResult, error)
	Update(ctx context.Context, id string, input UpdateMenuItemInput) (MenuItem, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (BulkDeleteResult, error)
}

// Handler HTTP para el menú.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de menú.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// List maneja GET /menu (público) con filtros, orden y paginación.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	params := ParseListParams(request.URL.Query())

	result, err := handler.service.List(request.Context(), params)
	if err != nil {
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	httpx.OK(writer, http.StatusOK, result)
}

// Create maneja POST /menu.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input CreateMenuItemInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	item, err := handler.service.Create(request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrorInvalidInput):
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "name, category and a non-negative price are required")
		default:
			// No filtramos detalles internos.
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		}
		return
	}

	httpx.OK(writer, http.StatusCreated, item)
}

// Update maneja PUT /menu/{id} con semántica parcial: solo se tocan los
// campos presentes en el body.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if _, err := uuid.Parse(id); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return
	}

	// Primero leemos raw para saber qué campos vinieron: para los campos
	// borrables, null/"" presente significa limpiar y ausente significa
	// no tocar.
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(request.Body).Decode(&raw); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	// Re-encode y decode al struct para reutilizar tags y tipos.
	rawJSON, _ := json.Marshal(raw)

	var input UpdateMenuItemInput
	if err := json.Unmarshal(rawJSON, &input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	_, input.DescriptionPresent = raw["description"]
	_, input.ImagePresent = raw["image"]
	_, input.ImagePublicIDPresent = raw["imagePublicId"]

	item, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrorInvalidInput):
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "invalid input data")
		case errors.Is(err, ErrorNotFound):
			httpx.Fail(writer, request, http.StatusNotFound, "not_found", "menu item not found")
		default:
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		}
		return
	}

	httpx.OK(writer, http.StatusOK, item)
}

// Delete maneja DELETE /menu/{id}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if _, err := uuid.Parse(id); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrorNotFound):
			httpx.Fail(writer, request, http.StatusNotFound, "not_found", "menu item not found")
		default:
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		}
		return
	}

	httpx.OK(writer, http.StatusOK, map[string]any{"ok": true})
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type bulkDeleteResponse struct {
	OK        bool `json:"ok"`
	Requested int  `json:"requested"`
	Valid     int  `json:"valid"`
	Deleted   int  `json:"deleted"`
}

// BulkDelete maneja POST /menu/bulk-delete.
func (handler *Handler) BulkDelete(writer http.ResponseWriter, request *http.Request) {
	var body bulkDeleteRequest
	if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	result, err := handler.service.BulkDelete(request.Context(), body.IDs)
	if err != nil {
		switch {
		case errors.Is(err, ErrorInvalidInput):
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_ids", "no valid ids provided")
		default:
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		}
		return
	}

	httpx.OK(writer, http.StatusOK, bulkDeleteResponse{
		OK:        true,
		Requested: result.Requested,
		Valid:     result.Valid,
		Deleted:   result.Deleted,
	})
}
