package routes

import (
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	app *fiber.App,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	gatherer prometheus.Gatherer,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	api.Post("/reports", reportHandler.CreateReport)
	api.Get("/reports/status/:contact", reportHandler.GetStatus)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
