package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate aplica en orden los archivos de migrations/. Todas las sentencias son idempotentes
// (IF NOT EXISTS / ON CONFLICT DO NOTHING), por lo que se puede correr en cada arranque.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		sqlText, err := migrationFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sqlText)); err != nil {
			return nil, fmt.Errorf("aplicar %s: %w", name, err)
		}
	}
	return names, nil
}
