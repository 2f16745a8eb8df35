package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/fintrack/internal/archive"
	"github.com/SscSPs/fintrack/internal/categorizer"
	"github.com/SscSPs/fintrack/internal/core/services"
	"github.com/SscSPs/fintrack/internal/handlers"
	"github.com/SscSPs/fintrack/internal/jobs"
	"github.com/SscSPs/fintrack/internal/middleware"
	"github.com/SscSPs/fintrack/internal/platform/config"
	"github.com/SscSPs/fintrack/internal/repositories/database/pgsql"
	"github.com/SscSPs/fintrack/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const shutdownTimeout = 15 * time.Second

// @title Fintrack API
// @version 1.0
// @description Bank statement ingestion, review and monthly reporting.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	infra, closeInfra := setupInfrastructure(ctx, logger, cfg)
	defer closeInfra()

	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), infra)

	// Workers outlive the request that enqueued the job, so they run on a context
	// that is only cancelled by Stop.
	if err := infra.Dispatcher.Start(context.Background(), container.Ingestion.ProcessCategorization); err != nil {
		logger.Error("Failed to start categorization workers", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	}
	if err := infra.Dispatcher.Stop(shutdownCtx); err != nil {
		logger.Error("Categorization workers did not drain", slog.String("error", err.Error()))
	}
}

// runMigrations applies all pending "up" migrations over a temporary database/sql connection.
func runMigrations(logger *slog.Logger, cfg *config.Config) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// setupInfrastructure builds the categorizer, the job queue and the optional statement
// archive. Missing credentials downgrade to no-op collaborators rather than failing startup.
func setupInfrastructure(ctx context.Context, logger *slog.Logger, cfg *config.Config) (services.Infrastructure, func()) {
	var oracle categorizer.Oracle = categorizer.NoopOracle{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := categorizer.NewGeminiOracle(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("Gemini unavailable, transactions will stay uncategorized", slog.String("error", err.Error()))
		} else {
			oracle = gemini
			logger.Info("Categorization enabled", slog.String("model", cfg.GeminiModel))
		}
	} else {
		logger.Info("GEMINI_API_KEY not set, categorization disabled")
	}

	infra := services.Infrastructure{
		Categorizer: categorizer.NewAdapter(oracle, categorizer.WithTimeout(cfg.CategorizerTimeout)),
		Dispatcher:  jobs.NewQueue(cfg.CategorizerQueueSize, cfg.CategorizerWorkers, logger),
	}

	closeFn := func() {}
	if cfg.ArchiveBucket != "" {
		var opts []option.ClientOption
		if cfg.GCSCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GCSCredentialsFile))
		}
		archiver, err := archive.NewGCSArchiver(ctx, cfg.ArchiveBucket, cfg.ArchivePrefix, opts...)
		if err != nil {
			logger.Warn("Statement archive unavailable", slog.String("bucket", cfg.ArchiveBucket), slog.String("error", err.Error()))
		} else {
			infra.Archiver = archiver
			closeFn = func() {
				if err := archiver.Close(); err != nil {
					logger.Error("Failed to close statement archive", slog.String("error", err.Error()))
				}
			}
			logger.Info("Statement archive enabled", slog.String("bucket", cfg.ArchiveBucket))
		}
	}

	return infra, closeFn
}
