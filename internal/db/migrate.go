package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// El esquema viaja embebido en el binario para que el arranque no dependa
// del working directory.
//
//go:embed schema.sql
var schemaSQL string

// Execer es el subconjunto del pool que necesita la migración.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Migrate aplica el esquema al arrancar. Es idempotente: todo el SQL
// usa IF NOT EXISTS.
func Migrate(ctx context.Context, database Execer) error {
	if _, err := database.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
