package services

import (
	"context"

	"redline/internal/domain/models"
)

// DocumentService handles document versioning business logic
type DocumentService interface {
	// GetDocument retrieves a document version. A nil version means "latest".
	GetDocument(ctx context.Context, documentID int64, version *int) (*models.DocumentVersion, error)

	// ListVersions lists all versions of a document, newest first,
	// with the latest version number computed.
	ListVersions(ctx context.Context, documentID int64) (*models.VersionList, error)

	// CreateVersion creates the next version of a document: 1 when the
	// document has no versions, max+1 otherwise (regardless of gaps).
	CreateVersion(ctx context.Context, documentID int64, content string) (*models.DocumentVersion, error)

	// UpdateVersion overwrites the content of a specific existing version.
	// It never creates new rows.
	UpdateVersion(ctx context.Context, documentID int64, version int, content string) (*models.DocumentVersion, error)

	// Save overwrites the content of the resolved version (latest when
	// version is nil, exact match otherwise). It never creates new rows.
	Save(ctx context.Context, documentID int64, content string, version *int) (*models.SaveResult, error)
}
