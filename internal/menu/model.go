package menu

import "time"

// MenuItem representa un plato vendible tal como se persiste y se expone.
// Price se modela como string para evitar errores de precisión con float
// (DB: numeric(10,2)).
//
// Invariante: ImagePublicID solo está presente cuando Image apunta a un
// asset subido por nuestro media host. Una URL externa puede tener Image
// sin ImagePublicID; para esas nunca se intenta borrar nada.
type MenuItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Price         string    `json:"price"`
	Category      string    `json:"category"`
	Available     bool      `json:"available"`
	Image         *string   `json:"image,omitempty"`
	ImagePublicID *string   `json:"imagePublicId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateMenuItemInput es el payload para crear un item.
// Image/ImagePublicID se copian tal cual del body: el cliente puede
// declarar cualquier public id como propio (riesgo conocido, ver DESIGN.md).
type CreateMenuItemInput struct {
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	Price         string  `json:"price"`
	Category      string  `json:"category"`
	Available     *bool   `json:"available,omitempty"`
	Image         *string `json:"image,omitempty"`
	ImagePublicID *string `json:"imagePublicId,omitempty"`
}

// UpdateMenuItemInput es una actualización parcial: solo se tocan los
// campos que vinieron en el body. Para los campos borrables
// (description/image/imagePublicId) el puntero nil es ambiguo, así que el
// handler marca presencia explícita: presente con null/"" significa limpiar.
type UpdateMenuItemInput struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *string `json:"price"`
	Category      *string `json:"category"`
	Available     *bool   `json:"available"`
	Image         *string `json:"image"`
	ImagePublicID *string `json:"imagePublicId"`

	DescriptionPresent   bool `json:"-"`
	ImagePresent         bool `json:"-"`
	ImagePublicIDPresent bool `json:"-"`
}

// ListResult es la página de resultados del listado público.
// Pages se deriva de Total, nunca del tamaño del slice devuelto.
type ListResult struct {
	Data  []MenuItem `json:"data"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Pages int        `json:"pages"`
	Limit int        `json:"limit"`
}

// BulkDeleteResult reporta solo conteos a nivel base de datos; el
// resultado de la limpieza de assets es irrelevante para la respuesta.
type BulkDeleteResult struct {
	Requested int `json:"requested"`
	Valid     int `json:"valid"`
	Deleted   int `json:"deleted"`
}
