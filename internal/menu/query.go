package menu

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Defaults y límites del listado público.
const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100

	defaultSortColumn = "created_at"
	defaultDirection  = "DESC"
)

// sortColumns es el allow-list de ordenamiento: campo expuesto → columna.
// Cualquier otro valor cae al default en vez de fallar.
var sortColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"category":  "category",
	"createdAt": "created_at",
}

// ListParams es la versión estructurada de los parámetros del listado.
// Sort y Dir ya vienen validados contra el allow-list: son seguros para
// interpolar en SQL.
type ListParams struct {
	Query     string
	Category  string
	Available *bool
	MinPrice  *string
	MaxPrice  *string

	Sort  string
	Dir   string
	Page  int
	Limit int
}

// ParseListParams traduce los query params crudos a ListParams.
// El parseo es tolerante a propósito: valores inválidos se ignoran o caen
// al default, nunca cortan el listado público.
func ParseListParams(values url.Values) ListParams {
	params := ListParams{
		Query:    strings.TrimSpace(values.Get("q")),
		Category: strings.TrimSpace(values.Get("category")),
		Sort:     defaultSortColumn,
		Dir:      defaultDirection,
		Page:     defaultPage,
		Limit:    defaultLimit,
	}

	// available solo aplica con los literales "true"/"false"; cualquier
	// otra cosa deja esa dimensión sin filtrar.
	switch values.Get("available") {
	case "true":
		available := true
		params.Available = &available
	case "false":
		available := false
		params.Available = &available
	}

	if value := strings.TrimSpace(values.Get("minPrice")); priceFormat.MatchString(value) {
		params.MinPrice = &value
	}
	if value := strings.TrimSpace(values.Get("maxPrice")); priceFormat.MatchString(value) {
		params.MaxPrice = &value
	}

	if column, ok := sortColumns[values.Get("sort")]; ok {
		params.Sort = column
	}
	if values.Get("dir") == "asc" {
		params.Dir = "ASC"
	}

	if page, err := strconv.Atoi(strings.TrimSpace(values.Get("page"))); err == nil && page >= 1 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(strings.TrimSpace(values.Get("limit"))); err == nil && limit >= 1 {
		if limit > maxLimit {
			limit = maxLimit
		}
		params.Limit = limit
	}

	return params
}

// BuildWhere arma el fragmento WHERE (o "" si no hay filtros) y sus args
// posicionales. Lo comparten List y Count para que total y página salgan
// siempre del mismo conjunto.
func BuildWhere(params ListParams) (string, []any) {
	var conditions []string
	var args []any

	if params.Query != "" {
		args = append(args, "%"+params.Query+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE %[1]s OR description ILIKE %[1]s OR category ILIKE %[1]s)", placeholder))
	}

	if params.Category != "" {
		args = append(args, params.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	if params.Available != nil {
		args = append(args, *params.Available)
		conditions = append(conditions, fmt.Sprintf("available = $%d", len(args)))
	}

	// Los límites de precio son inclusivos.
	if params.MinPrice != nil {
		args = append(args, *params.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d::numeric", len(args)))
	}
	if params.MaxPrice != nil {
		args = append(args, *params.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d::numeric", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
