package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"clinicdocs/internal/config"
	"clinicdocs/internal/http/middleware"
	"clinicdocs/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. The API key
// gate covers everything under /api; health probes, docs and metrics stay
// public.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, histSvc service.HistoryService, apiCfg config.APIConfig) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Readiness probe: checks DB connectivity only
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api", middleware.APIKey(apiCfg))

	api.Post("/documents/upload-url", CreateUploadURL(docSvc))
	api.Post("/documents", RegisterDocument(docSvc))
	api.Get("/documents", ListDocuments(docSvc))
	api.Get("/documents/:id", GetDocument(docSvc))
	api.Get("/documents/:id/download-url", CreateDownloadURL(docSvc))

	api.Get("/clinical-history/:clinic_id", FetchClinicalHistory(histSvc))
	api.Get("/clinical-history/:clinic_id/access-logs", ListAccessLogs(histSvc))
}
