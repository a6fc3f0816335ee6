package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"redline/internal/domain"
	"redline/internal/domain/models"
	"redline/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresVersionRepository implements the VersionRepository interface
type PostgresVersionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewVersionRepository creates a new document version repository
func NewVersionRepository(config *RepositoryConfig) repositories.VersionRepository {
	return &PostgresVersionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// PutIfAbsent inserts a version only if (document_id, version) is not taken.
// The conflict target is the same unique index that guards Insert, so a
// concurrent racer can never produce a duplicate here either.
func (r *PostgresVersionRepository) PutIfAbsent(ctx context.Context, documentID int64, version int, content string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, version, content)
		VALUES ($1, $2, $3)
		ON CONFLICT (document_id, version) DO NOTHING
	`, r.tables.DocumentVersions)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, documentID, version, content); err != nil {
		return fmt.Errorf("put document version: %w", err)
	}

	return nil
}

// Get retrieves one version; nil version resolves to the highest version.
func (r *PostgresVersionRepository) Get(ctx context.Context, documentID int64, version *int) (*models.DocumentVersion, error) {
	var query string
	var args []interface{}

	if version == nil {
		query = fmt.Sprintf(`
			SELECT id, document_id, version, content, created_at
			FROM %s
			WHERE document_id = $1
			ORDER BY version DESC
			LIMIT 1
		`, r.tables.DocumentVersions)
		args = []interface{}{documentID}
	} else {
		query = fmt.Sprintf(`
			SELECT id, document_id, version, content, created_at
			FROM %s
			WHERE document_id = $1 AND version = $2
		`, r.tables.DocumentVersions)
		args = []interface{}{documentID, *version}
	}

	var doc models.DocumentVersion
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, args...).Scan(
		&doc.ID,
		&doc.DocumentID,
		&doc.Version,
		&doc.Content,
		&doc.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %d: %w", documentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document version: %w", err)
	}

	return &doc, nil
}

// ListVersions returns all versions of a document, newest first.
func (r *PostgresVersionRepository) ListVersions(ctx context.Context, documentID int64) ([]models.DocumentVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, version, content, created_at
		FROM %s
		WHERE document_id = $1
		ORDER BY version DESC
	`, r.tables.DocumentVersions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document versions: %w", err)
	}
	defer rows.Close()

	var versions []models.DocumentVersion
	for rows.Next() {
		var doc models.DocumentVersion
		if err := rows.Scan(&doc.ID, &doc.DocumentID, &doc.Version, &doc.Content, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document version: %w", err)
		}
		versions = append(versions, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list document versions: %w", err)
	}

	if len(versions) == 0 {
		return nil, fmt.Errorf("document %d: %w", documentID, domain.ErrNotFound)
	}

	return versions, nil
}

// MaxVersion returns the highest version number, with ok=false when the
// document has no versions yet.
func (r *PostgresVersionRepository) MaxVersion(ctx context.Context, documentID int64) (int, bool, error) {
	query := fmt.Sprintf(`
		SELECT MAX(version) FROM %s WHERE document_id = $1
	`, r.tables.DocumentVersions)

	var max *int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, documentID).Scan(&max); err != nil {
		return 0, false, fmt.Errorf("max document version: %w", err)
	}

	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}

// Insert creates a new version row, surfacing unique violations as conflicts.
func (r *PostgresVersionRepository) Insert(ctx context.Context, documentID int64, version int, content string) (*models.DocumentVersion, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, version, content)
		VALUES ($1, $2, $3)
		RETURNING id, document_id, version, content, created_at
	`, r.tables.DocumentVersions)

	var doc models.DocumentVersion
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, documentID, version, content).Scan(
		&doc.ID,
		&doc.DocumentID,
		&doc.Version,
		&doc.Content,
		&doc.CreatedAt,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return nil, &domain.ConflictError{DocumentID: documentID, Version: version}
		}
		return nil, fmt.Errorf("insert document version: %w", err)
	}

	return &doc, nil
}

// UpdateContent overwrites content in place; created_at is never touched.
func (r *PostgresVersionRepository) UpdateContent(ctx context.Context, documentID int64, version int, content string) (*models.DocumentVersion, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET content = $3
		WHERE document_id = $1 AND version = $2
		RETURNING id, document_id, version, content, created_at
	`, r.tables.DocumentVersions)

	var doc models.DocumentVersion
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, documentID, version, content).Scan(
		&doc.ID,
		&doc.DocumentID,
		&doc.Version,
		&doc.Content,
		&doc.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %d version %d: %w", documentID, version, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update document version: %w", err)
	}

	return &doc, nil
}
