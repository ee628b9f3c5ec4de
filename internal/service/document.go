package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"docqa/internal/model"
	"docqa/internal/repository"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("document not found")
	ErrFileEmpty  = errors.New("file is empty")
)

// ExtractFunc turns raw file bytes into plain text based on the filename's
// extension. It is injected so the service can be tested without parsing
// real files.
type ExtractFunc func(data []byte, filename string) (string, error)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.DocumentSummary `json:"data"`
	Total int                     `json:"total"`
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload extracts the file's text and persists it with metadata. The
	// raw bytes are discarded after extraction; only derived text is kept.
	// Extraction errors pass through typed (extract.ErrUnsupportedFormat,
	// extract.ErrCorruptFile) so the HTTP layer can map them to statuses.
	Upload(ctx context.Context, data []byte, filename string) (*model.Document, error)

	// List returns document summaries using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID, content included.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Delete removes a document by ID. Chat history referencing the
	// document stays in place.
	Delete(ctx context.Context, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	extract ExtractFunc
	repo    repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(extract ExtractFunc, repo repository.DocumentRepository) DocumentService {
	return &documentService{extract: extract, repo: repo}
}

func (s *documentService) Upload(ctx context.Context, data []byte, filename string) (*model.Document, error) {
	if len(data) == 0 {
		return nil, ErrFileEmpty
	}

	content, err := s.extract(data, filename)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		Filename:    filename,
		Content:     content,
		Size:        int64(len(data)),
		ContentType: mimetype.Detect(data).String(),
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns paginated document summaries without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes a document's row. History rows referencing the document
// are deliberately left behind (soft reference).
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
