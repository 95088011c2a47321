package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/journalist-portfolio-api/internal/api"
	"github.com/journalist-portfolio-api/internal/config"
	"github.com/journalist-portfolio-api/internal/database"
	"github.com/journalist-portfolio-api/internal/metrics"
	"github.com/journalist-portfolio-api/internal/repository"
	"github.com/journalist-portfolio-api/internal/seed"
	"github.com/journalist-portfolio-api/internal/service"
	"github.com/journalist-portfolio-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New(config.Default().Log)
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info().Msg("Starting portfolio API server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	if err := metrics.RegisterDBStats(db.DB, string(db.Dialect)); err != nil {
		log.Warn().Err(err).Msg("Failed to register database metrics")
	}

	// First-run seeding
	if cfg.Seed.Enabled {
		seeded, err := seed.Run(context.Background(), db, seed.Options{
			AdminUsername: cfg.Admin.Username,
			AdminEmail:    cfg.Admin.Email,
			AdminPassword: cfg.Admin.Password,
		}, log)
		metrics.ObserveSeed(seeded, err)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed database")
		}
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	// Initialize router
	router := api.NewRouter(services, db, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Bool("admin", cfg.Admin.Enabled).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
