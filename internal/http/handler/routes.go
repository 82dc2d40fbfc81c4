package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"docremedy/internal/service"
)

// Services bundles the application services the routes depend on.
type Services struct {
	Documents service.DocumentService
	Scans     service.ScanService
	Suggests  service.SuggestService
	Changes   service.ChangeService

	// PresignExpiry is the lifetime of presigned download URLs.
	PresignExpiry time.Duration
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; everything goes through the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, s Services) {
	if s.PresignExpiry <= 0 {
		s.PresignExpiry = 15 * time.Minute
	}

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

	// Health: readiness checks DB connectivity, healthz is plain liveness
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Documents
	app.Post("/documents/upload", UploadDocument(s.Documents))
	app.Get("/documents", ListDocuments(s.Documents))
	app.Get("/documents/:id", GetDocument(s.Documents))
	app.Get("/documents/:id/file", DownloadDocument(s.Documents, s.PresignExpiry))
	app.Get("/documents/:id/render", RenderDocument(s.Documents))
	app.Delete("/documents/:id", DeleteDocument(s.Documents))

	// Scanning and issues
	app.Get("/documents/:id/scan", ScanDocument(s.Scans))
	app.Get("/issues/:documentId", ListIssues(s.Scans))
	app.Post("/issues/:id/suggest-fix", SuggestFix(s.Suggests))

	// Staged changes
	app.Post("/issues/:id/stage-change", StageChange(s.Changes))
	app.Get("/changes/:documentId", ListChanges(s.Changes))
	app.Post("/documents/:id/apply-changes", ApplyChanges(s.Changes))
	app.Delete("/changes/:id", CancelChange(s.Changes))
	app.Post("/changes/:id/clear", ClearChange(s.Changes))
}
