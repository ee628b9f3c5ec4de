package handler

import (
	"github.com/gofiber/fiber/v2"

	"docqa/internal/http/middleware"
)

// errorPayload is the uniform error response body. Every error a client sees
// carries the request ID so a log line can be found for it.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError responds with the uniform error envelope. code is the
// machine-readable short code (e.g. "INVALID_ID", "NOT_FOUND"); message must
// stay safe for clients, internal error details never reach the body.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

// ErrorHandler is the Fiber global error handler. It catches errors that
// escape the route handlers (unmatched routes, method mismatches, panics
// surfaced as fiber.Errors) and renders them in the envelope format.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		code, message := "INTERNAL_ERROR", "internal server error"
		switch status {
		case fiber.StatusBadRequest:
			code, message = "BAD_REQUEST", "bad request"
		case fiber.StatusNotFound:
			code, message = "NOT_FOUND", "resource not found"
		case fiber.StatusMethodNotAllowed:
			code, message = "METHOD_NOT_ALLOWED", "method not allowed"
		}
		return writeError(c, status, code, message)
	}
}
