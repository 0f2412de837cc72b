package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/auth"
	"github.com/SergeNasr/memoro/pkg/config"
	"github.com/SergeNasr/memoro/pkg/database"
	"github.com/SergeNasr/memoro/pkg/handlers"
	"github.com/SergeNasr/memoro/pkg/llm"
	"github.com/SergeNasr/memoro/pkg/logging"
	"github.com/SergeNasr/memoro/pkg/middleware"
	"github.com/SergeNasr/memoro/pkg/repositories"
	"github.com/SergeNasr/memoro/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.URL())),
		zap.String("extraction_provider", cfg.Extraction.Provider),
		zap.Bool("search_cache", cfg.Redis.Host != ""))

	// Migrations run through database/sql; the pool itself is pgx native.
	sqlDB, err := sql.Open("pgx", cfg.Database.URL())
	if err != nil {
		return err
	}
	if err := database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger); err != nil {
		_ = sqlDB.Close()
		return err
	}
	_ = sqlDB.Close()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	llmClient, err := llm.NewExtractionClient(&cfg.Extraction, logger)
	if err != nil {
		return err
	}

	contactRepo := repositories.NewContactRepository()
	interactionRepo := repositories.NewInteractionRepository()
	familyRepo := repositories.NewFamilyMemberRepository()

	extractionService := services.NewExtractionService(llmClient, cfg.Extraction.MaxRetries, logger)
	interactionService := services.NewInteractionService(contactRepo, interactionRepo, familyRepo, logger)
	contactService := services.NewContactService(contactRepo, interactionRepo, familyRepo, logger)
	searchService := services.NewSearchService(
		contactRepo, interactionRepo,
		redisClient, time.Duration(cfg.Search.CacheTTLSeconds)*time.Second,
		logger)

	// Every API request runs as the placeholder owner on a pinned database
	// connection. Real authentication replaces the first wrapper.
	owner := auth.Middleware(auth.PlaceholderOwnerID)
	scoped := middleware.DatabaseScope(db, logger)
	rm := func(next http.HandlerFunc) http.HandlerFunc {
		return owner(scoped(next))
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewInteractionHandler(extractionService, interactionService, logger).RegisterRoutes(mux, rm)
	handlers.NewContactHandler(contactService, logger).RegisterRoutes(mux, rm)
	handlers.NewSearchHandler(searchService, cfg.Search, logger).RegisterRoutes(mux, rm)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.BindAddr, cfg.Port),
		Handler:           middleware.RequestLogger(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting memoro",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
