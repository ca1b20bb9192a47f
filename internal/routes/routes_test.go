package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/notify"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nopMailer struct{}

func (nopMailer) Send(context.Context, notify.Message) error { return nil }

func TestSetupServesRoutesAndMetrics(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, db.AutoMigrate(&models.Report{}))

	registry := prometheus.NewRegistry()
	svc := services.NewReportService(repository.NewGormReportStore(db), nopMailer{}, metrics.New(registry), services.ReportServiceConfig{
		MailFrom:         "alerts@example.org",
		MaintenanceEmail: "maintenance@example.org",
		StoreTimeout:     time.Second,
		MailTimeout:      time.Second,
	})

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	Setup(app, handlers.NewReportHandler(svc), handlers.NewHealthHandler(db), registry)

	req := httptest.NewRequest(http.MethodPost, "/api/reports",
		strings.NewReader(`{"name":"A","contact":"+263771234567","location":"L","issue":"I"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/reports/status/+263771234567", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "leak_reports_submitted_total 1")
	assert.Contains(t, string(body), "leak_notifications_sent_total 1")
	assert.Contains(t, string(body), `leak_status_lookups_total{result="found"} 1`)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
