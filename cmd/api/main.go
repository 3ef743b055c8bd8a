package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/archlens/backend/internal/api/handlers"
	"github.com/archlens/backend/internal/catalog"
	"github.com/archlens/backend/internal/export"
	"github.com/archlens/backend/internal/metrics"
	"github.com/archlens/backend/internal/middleware/ratelimit"
	"github.com/archlens/backend/internal/middleware/security"
	"github.com/archlens/backend/internal/middleware/validation"
	"github.com/archlens/backend/internal/rollup"
	"github.com/archlens/backend/internal/storage/sqlite"
	"github.com/archlens/backend/pkg/config"
	appLogger "github.com/archlens/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting architecture catalog server")

	metrics.Init()

	store, err := sqlite.NewClient(cfg.SQLite.Path)
	if err != nil {
		appLogger.Fatal("Failed to create SQLite client", zap.Error(err))
	}
	defer store.Close()

	err = store.InitSchema()
	if err != nil {
		appLogger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	service := catalog.NewService(store)
	engine := rollup.NewEngine()
	exportOpts := exportOptions(cfg.Export)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: cfg.RateLimit.MaxRequestsPerMinute,
		Logger:               appLogger.Log,
	})
	defer limiter.Stop()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{IsDevelopment: true}))
	app.Use(limiter.Middleware())
	app.Use(validation.Middleware(validation.Config{}))

	lensHandler := handlers.NewLensHandler(service)
	itemHandler := handlers.NewItemHandler(service)
	relHandler := handlers.NewRelationshipHandler(service)
	taskHandler := handlers.NewTaskHandler(service)
	noteHandler := handlers.NewNoteHandler(service)
	teamHandler := handlers.NewTeamHandler(service)
	analysisHandler := handlers.NewAnalysisHandler(service, engine, exportOpts)

	api := app.Group("/api/v1")

	api.Get("/lenses", lensHandler.List)
	api.Post("/lenses", lensHandler.Create)
	api.Put("/lenses/:key", lensHandler.Update)
	api.Delete("/lenses/:key", lensHandler.Delete)

	api.Get("/items", itemHandler.List)
	api.Post("/items", itemHandler.Create)
	api.Get("/items/:id", itemHandler.Get)
	api.Put("/items/:id", itemHandler.Update)
	api.Delete("/items/:id", itemHandler.Delete)

	api.Get("/relationships", relHandler.List)
	api.Post("/relationships", relHandler.Create)
	api.Put("/relationships/:id", relHandler.Update)
	api.Delete("/relationships/:id", relHandler.Delete)

	api.Get("/tasks", taskHandler.List)
	api.Post("/tasks", taskHandler.Create)
	api.Get("/tasks/:id", taskHandler.Get)
	api.Put("/tasks/:id", taskHandler.Update)
	api.Post("/tasks/:id/complete", taskHandler.ToggleComplete)
	api.Delete("/tasks/:id", taskHandler.Delete)

	api.Get("/notes", noteHandler.List)
	api.Post("/notes", noteHandler.Create)
	api.Get("/notes/:id", noteHandler.Get)
	api.Put("/notes/:id", noteHandler.Update)
	api.Delete("/notes/:id", noteHandler.Delete)
	api.Post("/notes/:id/tasks", noteHandler.CreateTask)

	api.Get("/team", teamHandler.List)
	api.Post("/team", teamHandler.Create)
	api.Put("/team/:id", teamHandler.Update)
	api.Delete("/team/:id", teamHandler.Delete)
	api.Get("/team/coverage", teamHandler.Coverage)

	api.Get("/analysis", analysisHandler.Analyze)
	api.Get("/analysis/export", analysisHandler.Export)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api.Get("/ready", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	})

	app.Get("/metrics", metrics.MetricsHandler())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}

func exportOptions(cfg config.ExportConfig) export.Options {
	return export.Options{
		FontSize:       cfg.FontSize,
		BoxWidth:       cfg.BoxWidth,
		BoxHeight:      cfg.BoxHeight,
		BoxGap:         cfg.BoxGap,
		ColumnGap:      cfg.ColumnGap,
		GroupGap:       cfg.GroupGap,
		Padding:        cfg.Padding,
		MaxBoxesPerRow: cfg.MaxBoxesPerRow,
		Theme: export.Theme{
			Error:      cfg.Theme.Error,
			Success:    cfg.Theme.Success,
			Info:       cfg.Theme.Info,
			Warning:    cfg.Theme.Warning,
			Primary:    cfg.Theme.Primary,
			Text:       cfg.Theme.Text,
			Background: cfg.Theme.Background,
		},
	}
}
