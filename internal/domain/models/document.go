package models

import (
	"time"
)

// DocumentVersion is one stored snapshot of a logical document.
// (document_id, version) is unique; the store enforces it.
type DocumentVersion struct {
	ID         string    `json:"id" db:"id"`
	DocumentID int64     `json:"document_id" db:"document_id"`
	Version    int       `json:"version" db:"version"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// VersionInfo is the per-version metadata returned when listing versions.
type VersionInfo struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// VersionList is the response shape for listing all versions of a document.
type VersionList struct {
	DocumentID    int64         `json:"document_id"`
	Versions      []VersionInfo `json:"versions"`
	LatestVersion int           `json:"latest_version"`
}

// SaveResult summarizes a save: which version was resolved and what was written.
type SaveResult struct {
	DocumentID int64  `json:"document_id"`
	Version    int    `json:"version"`
	Content    string `json:"content"`
}
