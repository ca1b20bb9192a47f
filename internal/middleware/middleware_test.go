package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/logging"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityHeadersAndCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS(&config.Config{CORSOrigins: "*"}))
	app.Use(SecurityHeaders())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestContextCarriesRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(RequestContext())
	app.Get("/id", func(c *fiber.Ctx) error {
		return c.SendString(logging.RequestIDFrom(c.UserContext()))
	})

	req := httptest.NewRequest("GET", "/id", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "req-123", string(body))
}
