package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// DB es el subconjunto de pgxpool.Pool que usa el repositorio.
// Tenerlo como interfaz permite testear con fakes sin tocar DB.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository accede a la tabla menu_items.
// Contiene SQL y mapeo DB → modelo.
type Repository struct {
	database DB
}

// NewRepository crea un repositorio de menu items.
func NewRepository(database DB) *Repository {
	return &Repository{database: database}
}

const menuItemColumns = `id, name, description, price::text, category, available, image, image_public_id, created_at, updated_at`

func scanMenuItem(row pgx.Row) (MenuItem, error) {
	var item MenuItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.Available,
		&item.Image,
		&item.ImagePublicID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return item, err
}

// Insert crea un item y devuelve el registro persistido.
// Usamos RETURNING para obtener id y timestamps generados por DB.
func (repository *Repository) Insert(ctx context.Context, input CreateMenuItemInput) (MenuItem, error) {
	const query = `
		INSERT INTO menu_items (name, description, price, category, available, image, image_public_id)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7)
		RETURNING ` + menuItemColumns + `;
	`

	available := true
	if input.Available != nil {
		available = *input.Available
	}

	row := repository.database.QueryRow(ctx, query,
		input.Name, input.Description, input.Price, input.Category, available, input.Image, input.ImagePublicID)

	item, err := scanMenuItem(row)
	if err != nil {
		return MenuItem{}, err
	}
	return item, nil
}

// List devuelve la página pedida aplicando los filtros de params.
// params.Sort y params.Dir ya pasaron por el allow-list del query builder.
func (repository *Repository) List(ctx context.Context, params ListParams) ([]MenuItem, error) {
	where, args := BuildWhere(params)

	query := fmt.Sprintf(
		`SELECT %s FROM menu_items%s ORDER BY %s %s LIMIT $%d OFFSET $%d;`,
		menuItemColumns, where, params.Sort, params.Dir, len(args)+1, len(args)+2,
	)
	args = append(args, params.Limit, (params.Page-1)*params.Limit)

	rows, err := repository.database.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Count cuenta el total que matchea los mismos filtros que List.
func (repository *Repository) Count(ctx context.Context, params ListParams) (int, error) {
	where, args := BuildWhere(params)

	var total int
	err := repository.database.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items`+where+`;`, args...).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Update aplica una actualización parcial y devuelve, además del registro
// actualizado, el image_public_id que tenía la fila ANTES del cambio.
// El snapshot viejo se toma dentro del mismo statement (FOR UPDATE), así la
// decisión de limpieza de assets compara contra el estado que este write
// realmente reemplazó.
func (repository *Repository) Update(ctx context.Context, id string, input UpdateMenuItemInput) (MenuItem, *string, error) {
	const query = `
		UPDATE menu_items AS m SET
			name            = COALESCE($2, m.name),
			description     = CASE WHEN $3 THEN $4 ELSE m.description END,
			price           = COALESCE($5::numeric, m.price),
			category        = COALESCE($6, m.category),
			available       = COALESCE($7, m.available),
			image           = CASE WHEN $8 THEN $9 ELSE m.image END,
			image_public_id = CASE WHEN $10 THEN $11 ELSE m.image_public_id END,
			updated_at      = now()
		FROM (SELECT id, image_public_id FROM menu_items WHERE id = $1 FOR UPDATE) AS old
		WHERE m.id = old.id
		RETURNING m.id, m.name, m.description, m.price::text, m.category, m.available,
			m.image, m.image_public_id, m.created_at, m.updated_at, old.image_public_id;
	`

	row := repository.database.QueryRow(ctx, query,
		id,
		input.Name,
		input.DescriptionPresent, input.Description,
		input.Price,
		input.Category,
		input.Available,
		input.ImagePresent, input.Image,
		input.ImagePublicIDPresent, input.ImagePublicID,
	)

	var item MenuItem
	var oldImagePublicID *string
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.Available,
		&item.Image,
		&item.ImagePublicID,
		&item.CreatedAt,
		&item.UpdatedAt,
		&oldImagePublicID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return MenuItem{}, nil, ErrorNotFound
		}
		return MenuItem{}, nil, err
	}

	return item, oldImagePublicID, nil
}

// Delete borra un item y devuelve el image_public_id que tenía, para que
// el service pueda limpiar el asset después de remover el registro.
func (repository *Repository) Delete(ctx context.Context, id string) (*string, error) {
	const query = `DELETE FROM menu_items WHERE id = $1 RETURNING image_public_id;`

	var imagePublicID *string
	err := repository.database.QueryRow(ctx, query, id).Scan(&imagePublicID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrorNotFound
		}
		return nil, err
	}

	return imagePublicID, nil
}

// DeleteMany borra todos los ids (ya validados) en un solo statement y
// recolecta los image_public_id de las filas borradas vía RETURNING:
// la captura es atómica con la remoción.
func (repository *Repository) DeleteMany(ctx context.Context, ids []string) (int, []string, error) {
	const query = `DELETE FROM menu_items WHERE id = ANY($1::uuid[]) RETURNING image_public_id;`

	rows, err := repository.database.Query(ctx, query, ids)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	deleted := 0
	var publicIDs []string
	for rows.Next() {
		var imagePublicID *string
		if err := rows.Scan(&imagePublicID); err != nil {
			return 0, nil, err
		}
		deleted++
		if imagePublicID != nil && *imagePublicID != "" {
			publicIDs = append(publicIDs, *imagePublicID)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	return deleted, publicIDs, nil
}
