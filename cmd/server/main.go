package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mitra-sanitaer/backend/internal"
	"github.com/mitra-sanitaer/backend/internal/handler"
	"github.com/mitra-sanitaer/backend/internal/intake"
	"github.com/mitra-sanitaer/backend/internal/mail"
	"github.com/mitra-sanitaer/backend/internal/metrics"
	"github.com/mitra-sanitaer/backend/internal/middleware"
	"github.com/mitra-sanitaer/backend/internal/pdf"
	"github.com/mitra-sanitaer/backend/internal/render"
)

const version = "1.0.0"

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	company := render.CompanyInfo{
		Name:    cfg.CompanyName,
		Address: cfg.CompanyAddress,
		City:    cfg.CompanyCity,
		Phone:   cfg.CompanyPhone,
		Email:   cfg.CompanyEmail,
	}

	// PDF pipeline
	store, err := pdf.NewStore(pdf.StoreConfig{
		Dir:       cfg.PDFOutputDir,
		BaseURL:   cfg.BaseURL,
		DebugMode: cfg.PDFDebugMode,
	}, internal.ComponentLogger(logger, "pdf"))
	if err != nil {
		return fmt.Errorf("pdf store initialization failed: %w", err)
	}

	converter := pdf.NewChromeConverter(company)
	pdfService := pdf.NewService(converter, store, company, internal.ComponentLogger(logger, "pdf"))

	// Mail gateway; falls back to simulated mode on its own, never fails
	gateway := mail.NewGateway(ctx, mail.GatewayConfig{
		SMTP: mail.SMTPConfig{
			Host:   cfg.EmailHost,
			Port:   cfg.EmailPort,
			Secure: cfg.EmailSecure,
			Credentials: mail.Credentials{
				User: cfg.EmailUser,
				Pass: cfg.EmailPass,
			},
		},
		FromName:    cfg.CompanyName,
		FromAddress: cfg.EmailFrom,
		To:          cfg.EmailTo,
		Company:     company,
		Debug:       cfg.Env == "development",
	}, internal.ComponentLogger(logger, "mail"))

	// Form validation
	validator := intake.New(internal.ComponentLogger(logger, "intake"))

	// Initialize handlers
	apiHandler := handler.NewAPIHandler(validator, pdfService, gateway, store,
		internal.ComponentLogger(logger, "api"),
		handler.APIConfig{
			Env:       cfg.Env,
			Version:   version,
			DebugMode: cfg.PDFDebugMode,
		})

	// Initialize middleware
	isSecure := cfg.Env != "development"
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	corsMw := middleware.NewCORSMiddleware(cfg.FrontendURL)
	recoverMw := middleware.NewRecoverMiddleware(logger, cfg.Env == "development")
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)

	limiter := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow, logger)
	rateLimitMw := middleware.NewRateLimitMiddleware(limiter, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	apiHandler.RegisterRoutes(mux)

	// Prometheus metrics (basic auth when configured)
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	// Everything else is an unknown route
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handler.NotFoundResponse(w, r, logger)
	})

	// Rate limiting covers the API surface only
	limitAPI := func(next http.Handler) http.Handler {
		limited := rateLimitMw.Limit(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	stack := middleware.Stack(
		metrics.Middleware,
		loggingMw.Handler,
		recoverMw.Handler,
		securityMw.Handler,
		corsMw.Handler,
		limitAPI,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           stack(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Mitra Sanitär Backend läuft", "port", cfg.Port, "env", cfg.Env)
		logger.Info("E-Mail Ziel", "to", cfg.EmailTo, "mode", string(gateway.Mode()))
		logger.Info("CORS aktiviert", "frontend", cfg.FrontendURL)
		logger.Info("PDF Debug Modus", "enabled", cfg.PDFDebugMode)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
