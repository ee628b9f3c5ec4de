package handler

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docqa/internal/extract"
	"docqa/internal/model"
	"docqa/internal/service"
)

// previewRunes is how much extracted text an upload response echoes back.
const previewRunes = 200

// uploadResponse is the body returned after a successful upload. The full
// extracted text is retrievable via GET /documents/:id; the upload response
// only carries a preview.
type uploadResponse struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
	Characters  int       `json:"characters"`
	Preview     string    `json:"preview"`
}

type askRequest struct {
	Question   string `json:"question"`
	DocumentID string `json:"document_id"`
}

type historyResponse struct {
	Data  []model.ChatRecord `json:"data"`
	Count int                `json:"count"`
}

// Root returns a small service banner so a bare GET / is not a 404.
func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "docqa",
			"status":  "ok",
			"docs":    "/docs",
		})
	}
}

// HealthCheck reports whether the database dependency is reachable.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness probe with no dependency checks.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListDocuments handles GET /documents with limit & offset pagination.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// UploadDocument handles POST /documents (multipart/form-data, field name: file).
// The file is read fully into memory, text is extracted, and the raw bytes are
// discarded. maxSize bounds the accepted upload size in bytes.
func UploadDocument(svc service.DocumentService, maxSize int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		if fh.Size > maxSize {
			return writeError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", "file exceeds the maximum allowed size")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
		}
		if int64(len(data)) > maxSize {
			return writeError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", "file exceeds the maximum allowed size")
		}

		doc, err := svc.Upload(c.UserContext(), data, fh.Filename)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrFileEmpty):
				return writeError(c, fiber.StatusBadRequest, "FILE_EMPTY", "uploaded file is empty")
			case errors.Is(err, extract.ErrUnsupportedFormat):
				return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", "unsupported file format")
			case errors.Is(err, extract.ErrCorruptFile):
				return writeError(c, fiber.StatusUnprocessableEntity, "CORRUPT_FILE", "file could not be parsed")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(uploadResponse{
			ID:          doc.ID,
			Filename:    doc.Filename,
			Size:        doc.Size,
			ContentType: doc.ContentType,
			CreatedAt:   doc.CreatedAt,
			Characters:  len([]rune(doc.Content)),
			Preview:     truncateRunes(doc.Content, previewRunes),
		})
	}
}

// GetDocument handles GET /documents/:id and returns the full document,
// extracted text included.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(doc)
	}
}

// DeleteDocument handles DELETE /documents/:id. Chat history rows that
// reference the document are left in place.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AskQuestion handles POST /ask. The body carries a question and an optional
// document_id; when document_id is omitted the most recent upload is used.
func AskQuestion(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req askRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}
		if req.DocumentID != "" {
			if _, err := uuid.Parse(req.DocumentID); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid document_id format")
			}
		}

		res, err := svc.Ask(c.UserContext(), req.Question, req.DocumentID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrQuestionRequired):
				return writeError(c, fiber.StatusBadRequest, "QUESTION_REQUIRED", "question is required")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(res)
	}
}

// GetHistory handles GET /history with optional document_id and limit filters.
func GetHistory(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		documentID := c.Query("document_id")
		if documentID != "" {
			if _, err := uuid.Parse(documentID); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid document_id format")
			}
		}
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			var err error
			limit, err = strconv.Atoi(raw)
			if err != nil || limit < 0 {
				return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
			}
		}

		records, err := svc.History(c.UserContext(), documentID, limit)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if records == nil {
			records = []model.ChatRecord{}
		}
		return c.JSON(historyResponse{Data: records, Count: len(records)})
	}
}

// ClearHistory handles DELETE /history. Without a document_id filter it wipes
// the whole history table.
func ClearHistory(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		documentID := c.Query("document_id")
		if documentID != "" {
			if _, err := uuid.Parse(documentID); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid document_id format")
			}
		}

		removed, err := svc.ClearHistory(c.UserContext(), documentID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"removed": removed})
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
