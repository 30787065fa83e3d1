package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"clinicdocs/internal/config"
)

func newGatedApp(cfg config.APIConfig) *fiber.App {
	app := fiber.New()
	app.Use(RequestID())
	app.Use(APIKey(cfg))
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAPIKey_Disabled(t *testing.T) {
	app := newGatedApp(config.APIConfig{Key: "", HeaderName: "x-api-key"})

	t.Run("no header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("arbitrary header value still passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("x-api-key", "anything")
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestAPIKey_Enabled(t *testing.T) {
	app := newGatedApp(config.APIConfig{Key: "secret", HeaderName: "x-api-key"})

	t.Run("correct key passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("x-api-key", "secret")
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("x-api-key", "wrong")
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body struct {
			RequestID string `json:"request_id"`
			Error     struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
		assert.NotEmpty(t, body.RequestID)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("custom header name", func(t *testing.T) {
		custom := newGatedApp(config.APIConfig{Key: "secret", HeaderName: "x-clinic-key"})

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("x-clinic-key", "secret")
		resp, _ := custom.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		// The default header is ignored when a custom one is configured.
		req = httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("x-api-key", "secret")
		resp, _ = custom.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
