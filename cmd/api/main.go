package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docremedy/docs"
	"docremedy/internal/config"
	"docremedy/internal/database"
	"docremedy/internal/database/migration"
	handlers "docremedy/internal/http/handler"
	"docremedy/internal/http/middleware"
	"docremedy/internal/otel"
	"docremedy/internal/repository/postgres"
	"docremedy/internal/scan"
	"docremedy/internal/service"
	"docremedy/internal/storage"
	"docremedy/internal/suggest"
)

// @title DocRemedy API
// @version 1.0
// @description Accessibility scanning and remediation service for DOCX documents.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC
	ctx := context.Background()

	// OpenTelemetry tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Create the schema on first start
	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Accessibility rule set: embedded defaults unless a path is configured
	scanCfg := scan.DefaultConfig()
	if cfg.Scan.RuleSetPath != "" {
		scanCfg, err = scan.LoadConfig(cfg.Scan.RuleSetPath)
		if err != nil {
			log.Fatalf("failed to load scan rule set: %v", err)
		}
	}

	// Fix suggester: the rule table always works; Gemini is layered on top
	// when configured and falls back to the table on failure.
	var suggester suggest.Suggester = suggest.NewRuleSuggester()
	if cfg.Suggest.Provider == "gemini" && cfg.Suggest.APIKey != "" {
		suggester, err = suggest.NewGemini(ctx, cfg.Suggest.APIKey, cfg.Suggest.Model, suggester)
		if err != nil {
			log.Fatalf("failed to initialize gemini suggester: %v", err)
		}
	}

	// Initialize repositories and services
	docRepo := postgres.NewDocumentPostgres(db)
	issueRepo := postgres.NewIssuePostgres(db)
	changeRepo := postgres.NewChangePostgres(db)

	svcs := handlers.Services{
		Documents:     service.NewDocumentService(objStore, docRepo),
		Scans:         service.NewScanService(objStore, docRepo, issueRepo, scanCfg),
		Suggests:      service.NewSuggestService(issueRepo, suggester),
		Changes:       service.NewChangeService(objStore, docRepo, issueRepo, changeRepo),
		PresignExpiry: time.Duration(cfg.Upload.PresignExpiryMin) * time.Minute,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.Upload.MaxSizeMB * 1024 * 1024,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())

	if cfg.RateLimit.RPM > 0 {
		app.Use(middleware.NewRateLimiter(cfg.RateLimit.RPM).Handler())
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, svcs)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
