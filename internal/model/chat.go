package model

import "time"

// ChatRecord is one answered question tied to a document. The document
// reference is soft: deleting a document leaves its records in place, so
// DocumentID may point at a document that no longer exists.
type ChatRecord struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
}
