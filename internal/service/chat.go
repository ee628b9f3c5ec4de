package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"docqa/internal/model"
	"docqa/internal/repository"
)

var ErrQuestionRequired = errors.New("question is required")

// defaultHistoryLimit caps history listings when the caller does not ask
// for a specific page size.
const defaultHistoryLimit = 20

// Answerer produces an answer from a question and a document's text.
// *answer.Engine satisfies it.
type Answerer interface {
	Answer(question, context string) string
}

// AskResult is what an answered question returns to the HTTP layer.
type AskResult struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	DocumentID string    `json:"document_id"`
	Filename   string    `json:"filename"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatService defines the question/answer use cases.
type ChatService interface {
	// Ask answers a question against one document and records the exchange.
	// An empty documentID targets the most recent upload; ErrNotFound is
	// returned when the referenced document (or any document) is absent.
	Ask(ctx context.Context, question, documentID string) (*AskResult, error)

	// History lists answered questions most-recent-first. An empty
	// documentID lists across all documents; limit <= 0 uses the default.
	History(ctx context.Context, documentID string, limit int) ([]model.ChatRecord, error)

	// ClearHistory removes chat records in bulk, optionally scoped to one
	// document, and returns the removed row count.
	ClearHistory(ctx context.Context, documentID string) (int64, error)
}

type chatService struct {
	engine  Answerer
	docs    repository.DocumentRepository
	history repository.HistoryRepository
}

// NewChatService constructs a new ChatService.
func NewChatService(engine Answerer, docs repository.DocumentRepository, history repository.HistoryRepository) ChatService {
	return &chatService{engine: engine, docs: docs, history: history}
}

func (s *chatService) Ask(ctx context.Context, question, documentID string) (*AskResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrQuestionRequired
	}

	var doc *model.Document
	var err error
	if documentID == "" {
		doc, err = s.docs.FindLatest(ctx)
	} else {
		doc, err = s.docs.FindByID(ctx, documentID)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	answerText := s.engine.Answer(question, doc.Content)

	rec := &model.ChatRecord{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		Question:   question,
		Answer:     answerText,
		CreatedAt:  time.Now().UTC(),
	}
	stored, err := s.history.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}

	return &AskResult{
		Question:   stored.Question,
		Answer:     stored.Answer,
		DocumentID: stored.DocumentID,
		Filename:   doc.Filename,
		CreatedAt:  stored.CreatedAt,
	}, nil
}

func (s *chatService) History(ctx context.Context, documentID string, limit int) ([]model.ChatRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	hq := repository.HistoryQuery{Limit: limit}
	if documentID != "" {
		hq.DocumentID = &documentID
	}
	return s.history.List(ctx, hq)
}

func (s *chatService) ClearHistory(ctx context.Context, documentID string) (int64, error) {
	if documentID == "" {
		return s.history.Clear(ctx, nil)
	}
	return s.history.Clear(ctx, &documentID)
}
