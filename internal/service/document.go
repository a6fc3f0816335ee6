package service

import (
	"context"
	"fmt"
	"log/slog"

	"redline/internal/config"
	"redline/internal/domain"
	"redline/internal/domain/models"
	"redline/internal/domain/repositories"
	"redline/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// documentService implements the services.DocumentService interface
type documentService struct {
	versionRepo repositories.VersionRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	versionRepo repositories.VersionRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		versionRepo: versionRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetDocument retrieves a document version, the latest when version is nil.
func (s *documentService) GetDocument(ctx context.Context, documentID int64, version *int) (*models.DocumentVersion, error) {
	if err := validateDocumentID(documentID); err != nil {
		return nil, err
	}
	return s.versionRepo.Get(ctx, documentID, version)
}

// ListVersions lists all versions, newest first, with latest_version computed.
// The list is non-empty by the point the maximum is computed; the repository
// already returned ErrNotFound otherwise.
func (s *documentService) ListVersions(ctx context.Context, documentID int64) (*models.VersionList, error) {
	if err := validateDocumentID(documentID); err != nil {
		return nil, err
	}

	versions, err := s.versionRepo.ListVersions(ctx, documentID)
	if err != nil {
		return nil, err
	}

	infos := make([]models.VersionInfo, 0, len(versions))
	latest := 0
	for _, v := range versions {
		infos = append(infos, models.VersionInfo{Version: v.Version, CreatedAt: v.CreatedAt})
		if v.Version > latest {
			latest = v.Version
		}
	}

	return &models.VersionList{
		DocumentID:    documentID,
		Versions:      infos,
		LatestVersion: latest,
	}, nil
}

// CreateVersion inserts the next version: 1 for a fresh document, max+1
// otherwise. The read and insert run in one transaction; the unique index on
// (document_id, version) still backstops concurrent racers, so at most one
// of two simultaneous creates for the same next number succeeds.
func (s *documentService) CreateVersion(ctx context.Context, documentID int64, content string) (*models.DocumentVersion, error) {
	if err := validateDocumentID(documentID); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	var created *models.DocumentVersion
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		max, ok, err := s.versionRepo.MaxVersion(txCtx, documentID)
		if err != nil {
			return err
		}

		next := 1
		if ok {
			next = max + 1
		}

		created, err = s.versionRepo.Insert(txCtx, documentID, next, content)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document version created",
		"document_id", documentID,
		"version", created.Version,
	)

	return created, nil
}

// UpdateVersion overwrites an existing version's content in place.
func (s *documentService) UpdateVersion(ctx context.Context, documentID int64, version int, content string) (*models.DocumentVersion, error) {
	if err := validateDocumentID(documentID); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, fmt.Errorf("%w: version must be positive", domain.ErrValidation)
	}

	return s.versionRepo.UpdateContent(ctx, documentID, version, content)
}

// Save resolves the target exactly as GetDocument does (latest when version
// is nil), then overwrites its content. It refuses to create new rows; only
// CreateVersion inserts.
func (s *documentService) Save(ctx context.Context, documentID int64, content string, version *int) (*models.SaveResult, error) {
	if err := validateDocumentID(documentID); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	existing, err := s.versionRepo.Get(ctx, documentID, version)
	if err != nil {
		return nil, err
	}

	updated, err := s.versionRepo.UpdateContent(ctx, documentID, existing.Version, content)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("document saved",
		"document_id", documentID,
		"version", updated.Version,
	)

	return &models.SaveResult{
		DocumentID: documentID,
		Version:    updated.Version,
		Content:    updated.Content,
	}, nil
}

func validateDocumentID(documentID int64) error {
	if err := validation.Validate(documentID, validation.Required, validation.Min(int64(1))); err != nil {
		return fmt.Errorf("%w: document id: %v", domain.ErrValidation, err)
	}
	return nil
}

// validateContent caps content size. Empty content is allowed: clearing a
// document is a legitimate save.
func validateContent(content string) error {
	if err := validation.Validate(content, validation.Length(0, config.MaxDocumentContentLength)); err != nil {
		return fmt.Errorf("%w: content: %v", domain.ErrValidation, err)
	}
	return nil
}
