package model

import "time"

// Document represents an uploaded file after text extraction.
// This is a pure domain model with no database-specific dependencies or tags.
// Only the extracted text is kept; the original file bytes are discarded
// once extraction succeeds.
type Document struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Content     string    `json:"content"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentSummary is the listing projection of a Document. It carries a
// short preview instead of the full extracted text so that list responses
// stay small regardless of document size.
type DocumentSummary struct {
	ID             string    `json:"id"`
	Filename       string    `json:"filename"`
	ContentPreview string    `json:"content_preview"`
	Size           int64     `json:"size"`
	ContentType    string    `json:"content_type"`
	CreatedAt      time.Time `json:"created_at"`
}
