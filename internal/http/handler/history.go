package handler

import (
	"github.com/gofiber/fiber/v2"

	"clinicdocs/internal/service"
)

// FetchClinicalHistory returns a clinic's documents after consulting the
// authorization service. Every attempt, granted or denied, lands in the
// audit log.
func FetchClinicalHistory(svc service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clinicID := c.Params("clinic_id")
		requestedBy := c.Query("requested_by")

		docs, err := svc.Fetch(c.UserContext(), clinicID, requestedBy)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(docs)
	}
}

// ListAccessLogs returns a clinic's history-access audit entries.
func ListAccessLogs(svc service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clinicID := c.Params("clinic_id")

		entries, err := svc.ListAccessLogs(c.UserContext(), clinicID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(entries)
	}
}
