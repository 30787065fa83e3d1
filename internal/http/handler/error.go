package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"clinicdocs/internal/http/middleware"
	"clinicdocs/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "VALIDATION_ERROR", "NOT_FOUND")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps the service error taxonomy onto HTTP responses.
// Each taxonomy entry has exactly one status code:
// validation 422, access denied 403, storage 502, database 500, not found 404.
func writeServiceError(c *fiber.Ctx, err error) error {
	var (
		vErr  *service.ValidationError
		aErr  *service.AccessDeniedError
		sErr  *service.StorageError
		dbErr *service.DatabaseError
	)
	switch {
	case errors.As(err, &vErr):
		return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", vErr.Error())
	case errors.As(err, &aErr):
		return writeError(c, fiber.StatusForbidden, "ACCESS_DENIED", aErr.Error())
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.As(err, &sErr):
		return writeError(c, fiber.StatusBadGateway, "STORAGE_ERROR", "object storage unavailable")
	case errors.As(err, &dbErr):
		return writeError(c, fiber.StatusInternalServerError, "DATABASE_ERROR", "persistence failure")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
