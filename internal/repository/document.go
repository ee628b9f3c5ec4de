package repository

import (
	"context"

	"docqa/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record.
	// The caller should provide required fields (e.g., ID, CreatedAt) according to the database schema defaults.
	// Returns the stored document (may include values set by the DB).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, including its full content.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindLatest returns the most recently uploaded document.
	FindLatest(ctx context.Context) (*model.Document, error)

	// List returns a most-recent-first page of document summaries and the
	// total rows count. Summaries carry a content preview, never the full text.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.DocumentSummary], error)

	// Delete removes a document by ID and reports whether a row was deleted.
	// Chat history referencing the document is left untouched.
	Delete(ctx context.Context, id string) (bool, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
