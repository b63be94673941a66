package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// SMTP Configuration
	EmailHost   string
	EmailPort   int
	EmailSecure bool
	EmailUser   string
	EmailPass   string
	EmailFrom   string
	EmailTo     string

	// Company details rendered into emails and PDFs
	CompanyName    string
	CompanyAddress string
	CompanyCity    string
	CompanyPhone   string
	CompanyEmail   string

	// PDF generation
	PDFOutputDir string
	PDFDebugMode bool

	// Rate limiting on /api/
	RateLimitWindow time.Duration
	RateLimitMax    int

	// Allowed frontend origin for CORS
	FrontendURL string

	// Application base URL (for debug download links)
	BaseURL string

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 3000),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		EmailHost:   getEnv("EMAIL_HOST", "smtp.gmail.com"),
		EmailPort:   getEnvInt("EMAIL_PORT", 587),
		EmailSecure: getEnvBool("EMAIL_SECURE", false),
		EmailUser:   getEnv("EMAIL_USER", ""),
		EmailPass:   getEnv("EMAIL_PASS", ""),
		EmailTo:     getEnv("EMAIL_TO", "hey@mitra-sanitaer.de"),

		CompanyName:    getEnv("COMPANY_NAME", "Mitra Sanitär GmbH"),
		CompanyAddress: getEnv("COMPANY_ADDRESS", "Borussiastraße 62a"),
		CompanyCity:    getEnv("COMPANY_CITY", "12103 Berlin"),
		CompanyPhone:   getEnv("COMPANY_PHONE", "030 76008921"),
		CompanyEmail:   getEnv("COMPANY_EMAIL", "hey@mitra-sanitaer.de"),

		PDFOutputDir: getEnv("PDF_OUTPUT_DIR", "./generated-pdfs"),
		PDFDebugMode: getEnvBool("PDF_DEBUG_MODE", false),

		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX_REQUESTS", 10),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:4200"),

		// Metrics authentication
		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	// Sender falls back to the SMTP user, matching most relay setups
	cfg.EmailFrom = getEnv("EMAIL_FROM", cfg.EmailUser)

	cfg.BaseURL = getEnv("BASE_URL", fmt.Sprintf("http://localhost:%d", cfg.Port))

	if cfg.RateLimitMax < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX_REQUESTS must be at least 1, got: %d", cfg.RateLimitMax)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be a valid TCP port, got: %d", cfg.Port)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
