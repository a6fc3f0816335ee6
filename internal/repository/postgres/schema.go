package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the document version table and its indexes if they
// do not exist. Called on server boot and by the seed tool.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, tablePrefix string) error {
	createVersions := `
		CREATE TABLE IF NOT EXISTS ` + tables.DocumentVersions + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			document_id BIGINT NOT NULL,
			version INTEGER NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(document_id, version)
		)
	`
	if _, err := pool.Exec(ctx, createVersions); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `document_versions_document ON ` + tables.DocumentVersions + `(document_id)`,
	}
	for _, idx := range indexes {
		if _, err := pool.Exec(ctx, idx); err != nil {
			return err
		}
	}

	return nil
}

// DropSchema removes the document version table. Used by the seed tool's
// -drop-tables flag; never callable in prod (guarded by the caller).
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	_, err := pool.Exec(ctx, `DROP TABLE IF EXISTS `+tables.DocumentVersions+` CASCADE`)
	return err
}
