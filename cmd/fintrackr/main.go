package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr_backend/internal/core/services"
	"github.com/fintrackr/fintrackr_backend/internal/handlers"
	"github.com/fintrackr/fintrackr_backend/internal/middleware"
	"github.com/fintrackr/fintrackr_backend/internal/notification"
	"github.com/fintrackr/fintrackr_backend/internal/platform/config"
	"github.com/fintrackr/fintrackr_backend/internal/repositories/database/pgsql"
	"github.com/fintrackr/fintrackr_backend/pkg/database"
)

// @title fintrackr API
// @version 1.0
// @description Personal finance tracker: accounts, expenses, loans and subscriptions.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)

	var sender portssvc.NotificationSender
	if cfg.SMTPHost != "" {
		sender = notification.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	} else {
		sender = notification.NewLogSender(logger)
	}

	svcs := services.NewServiceContainer(&repos, sender, cfg.JWTSecret, cfg.JWTExpiryDuration)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svcs)

	scheduler := startReminderScheduler(logger, cfg.ReminderCronSpec, svcs.ReminderSvc)
	defer scheduler.Stop()

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection compatible with the pgx pool.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
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

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// startReminderScheduler runs the reminder sweep on the configured cron
// schedule and once at startup to catch anything missed while down.
func startReminderScheduler(logger *slog.Logger, spec string, reminderSvc portssvc.ReminderService) *cron.Cron {
	sweep := func() {
		ctx := middleware.WithLogger(context.Background(), logger)
		sent, err := reminderSvc.SweepDueReminders(ctx)
		if err != nil {
			logger.Error("Reminder sweep failed", slog.String("error", err.Error()))
			return
		}
		logger.Info("Reminder sweep completed", slog.Int("sent", sent))
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, sweep); err != nil {
		logger.Error("Invalid reminder cron spec, scheduler disabled",
			slog.String("spec", spec),
			slog.String("error", err.Error()),
		)
		return c
	}
	c.Start()

	go sweep()
	return c
}
