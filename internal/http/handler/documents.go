package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clinicdocs/internal/service"
)

// uploadURLRequest is the body of POST /api/documents/upload-url.
type uploadURLRequest struct {
	ClinicID    string `json:"clinic_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

// registerRequest is the body of POST /api/documents.
type registerRequest struct {
	ClinicID    string `json:"clinic_id"`
	FileName    string `json:"file_name"`
	S3URL       string `json:"s3_url"`
	ContentType string `json:"content_type"`
}

// CreateUploadURL issues a scoped, time-bounded upload authorization. The
// client uploads the binary directly to the store; no bytes pass through here.
func CreateUploadURL(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req uploadURLRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed JSON body")
		}

		auth, err := svc.IssueUploadURL(c.UserContext(), req.ClinicID, req.FileName, req.ContentType)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(auth)
	}
}

// RegisterDocument validates a client-reported object reference and persists
// the document record.
func RegisterDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed JSON body")
		}

		doc, err := svc.Register(c.UserContext(), req.ClinicID, req.FileName, req.S3URL, req.ContentType)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns a single document by ID.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// ListDocuments lists a clinic's documents with limit & offset.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clinicID := c.Query("clinic_id")
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListByClinic(c.UserContext(), clinicID, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateDownloadURL issues a presigned GET for an existing document. The
// authorization is ephemeral, so the route is a plain read.
func CreateDownloadURL(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		auth, err := svc.IssueDownloadURL(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(auth)
	}
}
