package config

const (
	// MaxDocumentContentLength is the maximum length in bytes for document
	// content on create, update and save. Generous enough for long patent
	// documents while keeping single rows well under TOAST pathology.
	MaxDocumentContentLength = 1 << 20 // 1 MiB

	// MaxReviewInputLength is the maximum length in bytes for a single
	// review request received on the streaming channel. Inputs beyond this
	// are rejected before sanitization.
	MaxReviewInputLength = 256 << 10 // 256 KiB
)
