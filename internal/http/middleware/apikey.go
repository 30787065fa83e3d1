package middleware

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"clinicdocs/internal/config"
)

// APIKey is the request-boundary gate protecting the API surface.
//
// Behavior:
// - With no configured key, every request passes through unconditionally.
// - Otherwise the configured header (default x-api-key) must carry the exact
//   secret; the comparison is constant-time to avoid timing side-channels.
// - A missing or wrong value terminates the request with 401 before any
//   downstream handler runs. The decision is per-request with no memory
//   across requests.
func APIKey(cfg config.APIConfig) fiber.Handler {
	// Hashing both sides fixes the compared lengths, so neither length nor
	// content leaks through timing.
	want := sha256.Sum256([]byte(cfg.Key))

	return func(c *fiber.Ctx) error {
		if cfg.Key == "" {
			return c.Next()
		}

		got := sha256.Sum256([]byte(c.Get(cfg.HeaderName)))
		if subtle.ConstantTimeCompare(want[:], got[:]) != 1 {
			rid, _ := c.Locals(RequestIDLocalKey).(string)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"request_id": rid,
				"error": fiber.Map{
					"code":    "UNAUTHORIZED",
					"message": "invalid or missing API key",
				},
			})
		}
		return c.Next()
	}
}
