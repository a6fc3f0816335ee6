package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"redline/internal/domain"
	"redline/internal/domain/models"
)

// stubDocumentService returns canned values and records the last call.
type stubDocumentService struct {
	doc  *models.DocumentVersion
	list *models.VersionList
	save *models.SaveResult
	err  error

	lastDocumentID int64
	lastVersion    *int
	lastContent    string
}

func (s *stubDocumentService) GetDocument(ctx context.Context, documentID int64, version *int) (*models.DocumentVersion, error) {
	s.lastDocumentID, s.lastVersion = documentID, version
	return s.doc, s.err
}

func (s *stubDocumentService) ListVersions(ctx context.Context, documentID int64) (*models.VersionList, error) {
	s.lastDocumentID = documentID
	return s.list, s.err
}

func (s *stubDocumentService) CreateVersion(ctx context.Context, documentID int64, content string) (*models.DocumentVersion, error) {
	s.lastDocumentID, s.lastContent = documentID, content
	return s.doc, s.err
}

func (s *stubDocumentService) UpdateVersion(ctx context.Context, documentID int64, version int, content string) (*models.DocumentVersion, error) {
	s.lastDocumentID, s.lastVersion, s.lastContent = documentID, &version, content
	return s.doc, s.err
}

func (s *stubDocumentService) Save(ctx context.Context, documentID int64, content string, version *int) (*models.SaveResult, error) {
	s.lastDocumentID, s.lastVersion, s.lastContent = documentID, version, content
	return s.save, s.err
}

func newTestMux(svc *stubDocumentService) *http.ServeMux {
	h := NewDocumentHandler(svc, slog.New(slog.DiscardHandler))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /document/{document_id}", h.GetDocument)
	mux.HandleFunc("GET /document/{document_id}/versions", h.ListVersions)
	mux.HandleFunc("POST /document/{document_id}/version", h.CreateVersion)
	mux.HandleFunc("PUT /document/{document_id}/version/{version}", h.UpdateVersion)
	mux.HandleFunc("POST /save/{document_id}", h.Save)
	return mux
}

func sampleDoc(version int) *models.DocumentVersion {
	return &models.DocumentVersion{
		ID:         "row-1",
		DocumentID: 1,
		Version:    version,
		Content:    "content",
		CreatedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetDocumentHandler(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		serviceErr  error
		wantStatus  int
		wantVersion *int
	}{
		{
			name:       "latest when version omitted",
			url:        "/document/1",
			wantStatus: http.StatusOK,
		},
		{
			name:        "exact version from query",
			url:         "/document/1?version=2",
			wantStatus:  http.StatusOK,
			wantVersion: intPtr(2),
		},
		{
			name:       "absent document is 404",
			url:        "/document/9",
			serviceErr: fmt.Errorf("document 9: %w", domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non-numeric id is 400",
			url:        "/document/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-numeric version is 400",
			url:        "/document/1?version=two",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubDocumentService{doc: sampleDoc(2), err: tt.serviceErr}
			mux := newTestMux(svc)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body)
			}

			if tt.wantStatus != http.StatusOK {
				return
			}
			if (tt.wantVersion == nil) != (svc.lastVersion == nil) {
				t.Errorf("service version = %v, want %v", svc.lastVersion, tt.wantVersion)
			}
			if tt.wantVersion != nil && *svc.lastVersion != *tt.wantVersion {
				t.Errorf("service version = %d, want %d", *svc.lastVersion, *tt.wantVersion)
			}
		})
	}
}

func TestListVersionsHandler(t *testing.T) {
	svc := &stubDocumentService{list: &models.VersionList{
		DocumentID:    1,
		Versions:      []models.VersionInfo{{Version: 2}, {Version: 1}},
		LatestVersion: 2,
	}}
	mux := newTestMux(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/document/1/versions", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got models.VersionList
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.LatestVersion != 2 || len(got.Versions) != 2 {
		t.Errorf("response = %+v", got)
	}
}

func TestListVersionsHandlerNotFound(t *testing.T) {
	svc := &stubDocumentService{err: fmt.Errorf("document 5: %w", domain.ErrNotFound)}
	mux := newTestMux(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/document/5/versions", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q, want problem+json", ct)
	}
}

func TestCreateVersionHandler(t *testing.T) {
	svc := &stubDocumentService{doc: sampleDoc(3)}
	mux := newTestMux(svc)

	body := strings.NewReader(`{"content":"new draft"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/document/1/version", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body)
	}
	if svc.lastContent != "new draft" {
		t.Errorf("service content = %q", svc.lastContent)
	}

	var got models.DocumentVersion
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Version != 3 {
		t.Errorf("version = %d, want 3", got.Version)
	}
}

func TestCreateVersionHandlerBadBody(t *testing.T) {
	svc := &stubDocumentService{doc: sampleDoc(1)}
	mux := newTestMux(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/document/1/version", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateVersionHandler(t *testing.T) {
	t.Run("updates the addressed version", func(t *testing.T) {
		svc := &stubDocumentService{doc: sampleDoc(2)}
		mux := newTestMux(svc)

		body := strings.NewReader(`{"content":"edited"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/document/1/version/2", body))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body)
		}
		if svc.lastVersion == nil || *svc.lastVersion != 2 {
			t.Errorf("service version = %v, want 2", svc.lastVersion)
		}
	})

	t.Run("absent version is 404", func(t *testing.T) {
		svc := &stubDocumentService{err: fmt.Errorf("document 1 version 9: %w", domain.ErrNotFound)}
		mux := newTestMux(svc)

		body := strings.NewReader(`{"content":"edited"}`)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/document/1/version/9", body))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestSaveHandler(t *testing.T) {
	svc := &stubDocumentService{save: &models.SaveResult{DocumentID: 1, Version: 2, Content: "saved"}}
	mux := newTestMux(svc)

	body := strings.NewReader(`{"content":"saved"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/save/1?version=2", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body)
	}
	if svc.lastVersion == nil || *svc.lastVersion != 2 {
		t.Errorf("service version = %v, want 2", svc.lastVersion)
	}

	var got models.SaveResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got != (models.SaveResult{DocumentID: 1, Version: 2, Content: "saved"}) {
		t.Errorf("response = %+v", got)
	}
}

func intPtr(v int) *int { return &v }
