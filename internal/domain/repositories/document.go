package repositories

import (
	"context"

	"redline/internal/domain/models"
)

// VersionRepository is the durable mapping from (document_id, version)
// to content and creation time.
//
// The store enforces uniqueness of (document_id, version): concurrent
// Insert calls for the same key yield at most one success, the rest
// fail with domain.ConflictError.
type VersionRepository interface {
	// PutIfAbsent inserts a version only if (documentID, version) does not
	// exist yet. Idempotent; used by seeding.
	PutIfAbsent(ctx context.Context, documentID int64, version int, content string) error

	// Get retrieves a version. A nil version means "latest" (highest version
	// number for the document). Returns domain.ErrNotFound if nothing matches.
	Get(ctx context.Context, documentID int64, version *int) (*models.DocumentVersion, error)

	// ListVersions returns all versions for a document, ordered by version
	// descending. Returns domain.ErrNotFound if the document has no versions.
	ListVersions(ctx context.Context, documentID int64) ([]models.DocumentVersion, error)

	// MaxVersion returns the highest existing version number for a document.
	// ok is false when the document has no versions yet.
	MaxVersion(ctx context.Context, documentID int64) (max int, ok bool, err error)

	// Insert creates a new version row and returns it with its assigned
	// surrogate ID and timestamp. Fails with domain.ConflictError if
	// (documentID, version) already exists.
	Insert(ctx context.Context, documentID int64, version int, content string) (*models.DocumentVersion, error)

	// UpdateContent overwrites the content of an existing version, leaving
	// created_at untouched. Returns the updated row, or domain.ErrNotFound
	// if the version does not exist.
	UpdateContent(ctx context.Context, documentID int64, version int, content string) (*models.DocumentVersion, error)
}
