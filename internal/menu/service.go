package menu

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Lelo88/menu-api-golang/internal/media"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrorInvalidInput = errors.New("invalid input")
	ErrorNotFound     = errors.New("menu item not found")
)

// priceFormat acepta decimales no negativos con hasta dos decimales,
// igual que numeric(10,2) en DB.
var priceFormat = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// RepositoryAPI define lo que el service necesita de la persistencia.
type RepositoryAPI interface {
	Insert(ctx context.Context, input CreateMenuItemInput) (MenuItem, error)
	List(ctx context.Context, params ListParams) ([]MenuItem, error)
	Count(ctx context.Context, params ListParams) (int, error)
	Update(ctx context.Context, id string, input UpdateMenuItemInput) (MenuItem, *string, error)
	Delete(ctx context.Context, id string) (*string, error)
	DeleteMany(ctx context.Context, ids []string) (int, []string, error)
}

// Service contiene las reglas de negocio del menú, incluida la limpieza
// best-effort de assets huérfanos en el media host.
type Service struct {
	repository RepositoryAPI
	assets     media.Store
}

// NewService crea un service de menú.
func NewService(repository RepositoryAPI, assets media.Store) *Service {
	return &Service{repository: repository, assets: assets}
}

// normalizeOptional colapsa strings vacíos a nil: en DB los campos
// opcionales quedan NULL, nunca "".
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Create valida reglas y crea el item en DB.
// Fuera de las validaciones mínimas, el body se copia tal cual (ver DESIGN.md).
func (service *Service) Create(ctx context.Context, input CreateMenuItemInput) (MenuItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	input.Price = strings.TrimSpace(input.Price)

	if input.Name == "" || input.Category == "" {
		return MenuItem{}, ErrorInvalidInput
	}
	if !priceFormat.MatchString(input.Price) {
		return MenuItem{}, ErrorInvalidInput
	}

	input.Description = normalizeOptional(input.Description)
	input.Image = normalizeOptional(input.Image)
	input.ImagePublicID = normalizeOptional(input.ImagePublicID)

	return service.repository.Insert(ctx, input)
}

// List resuelve el listado público: página + total con los mismos filtros.
// Pages se calcula desde el total, no desde el slice devuelto.
func (service *Service) List(ctx context.Context, params ListParams) (ListResult, error) {
	items, err := service.repository.List(ctx, params)
	if err != nil {
		return ListResult{}, err
	}

	total, err := service.repository.Count(ctx, params)
	if err != nil {
		return ListResult{}, err
	}

	if items == nil {
		items = []MenuItem{}
	}

	pages := (total + params.Limit - 1) / params.Limit
	if pages < 1 {
		pages = 1
	}

	return ListResult{
		Data:  items,
		Total: total,
		Page:  params.Page,
		Pages: pages,
		Limit: params.Limit,
	}, nil
}

// Update valida y aplica una actualización parcial. Si el cambio dejó
// huérfano el asset anterior, lo borra best-effort después del write.
func (service *Service) Update(ctx context.Context, id string, input UpdateMenuItemInput) (MenuItem, error) {
	// Debe venir al menos un campo.
	touched := input.Name != nil || input.Price != nil || input.Category != nil ||
		input.Available != nil || input.DescriptionPresent || input.ImagePresent || input.ImagePublicIDPresent
	if !touched {
		return MenuItem{}, ErrorInvalidInput
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return MenuItem{}, ErrorInvalidInput
		}
		input.Name = &name
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return MenuItem{}, ErrorInvalidInput
		}
		input.Category = &category
	}
	if input.Price != nil {
		price := strings.TrimSpace(*input.Price)
		if !priceFormat.MatchString(price) {
			return MenuItem{}, ErrorInvalidInput
		}
		input.Price = &price
	}

	input.Description = normalizeOptional(input.Description)
	input.Image = normalizeOptional(input.Image)
	input.ImagePublicID = normalizeOptional(input.ImagePublicID)

	updated, oldImagePublicID, err := service.repository.Update(ctx, id, input)
	if err != nil {
		return MenuItem{}, err
	}

	if publicID, stale := staleAssetAfterUpdate(oldImagePublicID, updated); stale {
		service.discardAsset(ctx, publicID, "update")
	}

	return updated, nil
}

// Delete elimina un item y limpia su asset best-effort.
// Una falla del media host no revierte ni falla el borrado del registro.
func (service *Service) Delete(ctx context.Context, id string) error {
	imagePublicID, err := service.repository.Delete(ctx, id)
	if err != nil {
		return err
	}

	if imagePublicID != nil && *imagePublicID != "" {
		service.discardAsset(ctx, *imagePublicID, "delete")
	}

	return nil
}

// BulkDelete filtra ids malformados, borra los válidos en un solo paso y
// limpia sus assets en paralelo. Los conteos reportados son solo de DB.
func (service *Service) BulkDelete(ctx context.Context, ids []string) (BulkDeleteResult, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}

	// Sin ids válidos no se toca la DB.
	if len(valid) == 0 {
		return BulkDeleteResult{}, ErrorInvalidInput
	}

	deleted, publicIDs, err := service.repository.DeleteMany(ctx, valid)
	if err != nil {
		return BulkDeleteResult{}, err
	}

	service.discardAssets(ctx, publicIDs, "bulk-delete")

	return BulkDeleteResult{
		Requested: len(ids),
		Valid:     len(valid),
		Deleted:   deleted,
	}, nil
}
