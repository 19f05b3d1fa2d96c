package menu

import (
	"context"
	"log"
	"sync"
)

// Seam para capturar los diagnósticos de limpieza en tests.
var logMediaFailure = func(operation, publicID string, err error) {
	log.Printf("media destroy (%s) failed for %q: %v", operation, publicID, err)
}

// staleAssetAfterUpdate es la política de ciclo de vida de assets para el
// camino de update. Compara el image_public_id previo con el estado
// resultante y decide si el asset viejo quedó huérfano:
//
//   - reemplazado: había public id, hay uno nuevo distinto → borrar el viejo
//   - limpiado: había public id y el resultado quedó sin image ni public id → borrar el viejo
//   - sin cambio, o el viejo no tenía asset propio → no borrar nada
func staleAssetAfterUpdate(oldPublicID *string, updated MenuItem) (string, bool) {
	if oldPublicID == nil || *oldPublicID == "" {
		return "", false
	}

	newPublicID := ""
	if updated.ImagePublicID != nil {
		newPublicID = *updated.ImagePublicID
	}

	if newPublicID != "" && newPublicID != *oldPublicID {
		return *oldPublicID, true
	}

	imageGone := updated.Image == nil || *updated.Image == ""
	if newPublicID == "" && imageGone {
		return *oldPublicID, true
	}

	return "", false
}

// discardAsset borra un asset best-effort: un solo intento, sin retry.
// Una falla se loguea y nada más; jamás afecta la operación que la disparó.
func (service *Service) discardAsset(ctx context.Context, publicID, operation string) {
	if err := service.assets.Destroy(ctx, publicID); err != nil {
		logMediaFailure(operation, publicID, err)
	}
}

// discardAssets dispara todos los borrados en paralelo y espera al grupo
// completo: ningún resultado individual corta a los demás.
func (service *Service) discardAssets(ctx context.Context, publicIDs []string, operation string) {
	var group sync.WaitGroup
	for _, publicID := range publicIDs {
		group.Add(1)
		go func(publicID string) {
			defer group.Done()
			service.discardAsset(ctx, publicID, operation)
		}(publicID)
	}
	group.Wait()
}
