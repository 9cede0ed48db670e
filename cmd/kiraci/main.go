package main

import (
	"log/slog"
	"os"

	"github.com/selimgur/kiraci/internal/adapters/database/sqlite"
	"github.com/selimgur/kiraci/internal/adapters/providers/oecd"
	"github.com/selimgur/kiraci/internal/adapters/providers/tcmb"
	"github.com/selimgur/kiraci/internal/core/services"
	"github.com/selimgur/kiraci/internal/handlers"
	"github.com/selimgur/kiraci/internal/middleware"
	"github.com/selimgur/kiraci/pkg/config"
	"github.com/selimgur/kiraci/pkg/database"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		logger.Error("Failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	// --- Run Database Migrations ---
	logger.Info("Running database migrations...")
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		logger.Error("Could not create sqlite driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "sqlite", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Database migrations applied.")
	// --- End Database Migrations ---

	// Wire adapters into the service container.
	repos := sqlite.NewRepositoryProvider(db)
	rateProvider := tcmb.NewClient(cfg.TCMBBaseURL, cfg.TCMBAPIKey, cfg.ProviderTimeout, cfg.ProviderMaxRetries, logger)
	inflationProvider := oecd.NewClient(cfg.OECDBaseURL, cfg.ProviderTimeout, cfg.ProviderMaxRetries, logger)
	serviceContainer := services.NewContainer(repos, rateProvider, inflationProvider)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
