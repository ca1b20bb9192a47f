package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Mail transport
	SMTPHost               string
	SMTPPort               int
	SMTPUsername           string
	SMTPPassword           string
	SMTPInsecureSkipVerify bool
	MailFrom               string
	MaintenanceEmail       string

	// Pipeline timeouts
	StoreTimeout time.Duration
	MailTimeout  time.Duration

	// Server
	Port        string
	CORSOrigins string

	// Observability
	SentryDSN        string
	AppEnv           string
	LogRetentionDays int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))
	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}

	smtpUser := getEnv("SMTP_USERNAME", "")
	return &Config{
		DBDriver:   driver,
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", defaultPort),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "water_management"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "water_management.db"),

		SMTPHost:               getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:               parseInt(getEnv("SMTP_PORT", "587"), 587),
		SMTPUsername:           smtpUser,
		SMTPPassword:           getEnv("SMTP_PASSWORD", getEnv("GMAIL_APP_PASSWORD", "")),
		SMTPInsecureSkipVerify: parseBool(getEnv("SMTP_INSECURE_SKIP_VERIFY", "true")),
		MailFrom:               getEnv("MAIL_FROM", smtpUser),
		MaintenanceEmail:       getEnv("MAINTENANCE_EMAIL", ""),

		StoreTimeout: parseDuration(getEnv("STORE_TIMEOUT", "5s"), 5*time.Second),
		MailTimeout:  parseDuration(getEnv("MAIL_TIMEOUT", "15s"), 15*time.Second),

		Port:        getEnv("PORT", "5001"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		SentryDSN:        getEnv("SENTRY_DSN", ""),
		AppEnv:           getEnv("APP_ENV", "development"),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
	}
}

// Validate reports the first setting that prevents the server from running.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return errors.New("DB_DRIVER must be one of mysql, postgres, sqlite")
	}
	if c.SMTPUsername == "" || c.SMTPPassword == "" {
		return errors.New("SMTP_USERNAME and SMTP_PASSWORD (or GMAIL_APP_PASSWORD) are required")
	}
	if c.MailFrom == "" {
		return errors.New("MAIL_FROM is required")
	}
	if c.MaintenanceEmail == "" {
		return errors.New("MAINTENANCE_EMAIL is required")
	}
	return nil
}

// DSN renders the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return "host=" + c.DBHost +
			" user=" + c.DBUser +
			" password=" + c.DBPassword +
			" dbname=" + c.DBName +
			" port=" + c.DBPort +
			" sslmode=" + c.DBSSLMode +
			" TimeZone=UTC"
	case "sqlite":
		return c.DBPath
	default:
		return c.DBUser + ":" + c.DBPassword +
			"@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName +
			"?charset=utf8mb4&parseTime=True&loc=UTC"
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
