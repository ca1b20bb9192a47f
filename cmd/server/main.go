package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/notify"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Persist ERROR+ logs (async batch)
	dbLogHandler := logging.NewDBHandler(db, 5*time.Second)
	logging.AttachSink(dbLogHandler)

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, 24*time.Hour, cleanupDone)

	// Mail transport
	mailer, err := notify.NewSMTPMailer(cfg)
	if err != nil {
		slog.Error("mail transport setup failed", "error", err)
		os.Exit(1)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Services
	reportService := services.NewReportService(repository.NewGormReportStore(db), mailer, m, services.ReportServiceConfig{
		MailFrom:         cfg.MailFrom,
		MaintenanceEmail: cfg.MaintenanceEmail,
		StoreTimeout:     cfg.StoreTimeout,
		MailTimeout:      cfg.MailTimeout,
	})

	// Handlers
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(db)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, reportHandler, healthHandler, registry)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
