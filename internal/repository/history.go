package repository

import (
	"context"

	"docqa/internal/model"
)

// HistoryQuery filters chat history listings. A nil DocumentID lists
// records across all documents.
type HistoryQuery struct {
	DocumentID *string
	Limit      int
}

// HistoryRepository defines data access for chat records. Records are
// append-only; the only removal path is the bulk Clear.
type HistoryRepository interface {
	// Create inserts a new chat record and returns the stored row.
	Create(ctx context.Context, rec *model.ChatRecord) (*model.ChatRecord, error)

	// List returns records most-recent-first, truncated to the query limit.
	List(ctx context.Context, hq HistoryQuery) ([]model.ChatRecord, error)

	// Clear removes all history, or only one document's when documentID is
	// non-nil, and returns the number of rows removed.
	Clear(ctx context.Context, documentID *string) (int64, error)
}
