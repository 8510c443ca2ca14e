package main

import (
	"ppm-service/internal/dbstore"
	"ppm-service/internal/handler"
	"ppm-service/internal/middleware"
	"ppm-service/internal/store"
	"ppm-service/internal/workbook"
	"ppm-service/pkg/config"
	"ppm-service/pkg/database"
	"ppm-service/pkg/jwtutil"
	"ppm-service/pkg/logger"
	"ppm-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting PPM productivity service...", cfg.LogConfig()...)

	// Initialize the persistence backend
	st, err := buildStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize store", zap.Error(err))
	}

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics()
	log.Info("Prometheus metrics initialized")

	// Initialize Echo framework
	e := echo.New()
	e.Validator = handler.NewRequestValidator()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	h := handler.New(st)

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Phone-entry login gate
	auth := e.Group("/auth")
	auth.POST("/login", h.Login)

	// API routes - all require a logged-in session
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	// Reference data for the form selectors
	api.GET("/projects/owners", h.ListOwners)
	api.GET("/projects", h.ListProjects)
	api.GET("/projects/remaining", h.Remaining)
	api.GET("/technicians", h.ListTechnicians)

	// Data entry and the read-only recent view
	api.POST("/submissions", h.CreateSubmission)
	api.GET("/submissions/recent", h.RecentSubmissions)

	// Admin-only summary, full listing and export
	admin := api.Group("", middleware.RequireAdmin)
	admin.GET("/summary", h.Summary)
	admin.GET("/submissions", h.ListSubmissions)
	admin.GET("/submissions/export", h.ExportSubmissions)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

// buildStore selects the persistence backend. The workbook driver matches the
// field workflow (one shared xlsx plus a users CSV); the postgres driver keeps
// the same surface but appends submissions as single rows, seeding its
// reference tables from the workbook when they are empty.
func buildStore(cfg *config.Config, log *zap.Logger) (store.Store, error) {
	wb := workbook.New(cfg.Store.WorkbookPath, cfg.Store.UsersPath)

	if cfg.Store.Driver == config.DriverWorkbook {
		log.Info("Using workbook store",
			zap.String("workbook", cfg.Store.WorkbookPath),
			zap.String("users", cfg.Store.UsersPath))
		return wb, nil
	}

	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		return nil, err
	}
	log.Info("Database connection established")

	ds := dbstore.New(db)
	if err := ds.Seed(wb); err != nil {
		log.Warn("Reference data seeding skipped", zap.Error(err))
	}
	return ds, nil
}
