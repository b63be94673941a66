// Package handler exposes the JSON API: the two form intake endpoints, the
// PDF test endpoint, the debug PDF management endpoints, and the health check.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mitra-sanitaer/backend/internal/domain"
	"github.com/mitra-sanitaer/backend/internal/intake"
	"github.com/mitra-sanitaer/backend/internal/mail"
	"github.com/mitra-sanitaer/backend/internal/metrics"
	"github.com/mitra-sanitaer/backend/internal/pdf"
)

// maxBodyBytes caps request bodies; configurator payloads carry catalog data.
const maxBodyBytes = 10 << 20 // 10 MB

// PDFGenerator produces the configurator PDF.
type PDFGenerator interface {
	GenerateBathroomConfiguration(ctx context.Context, cfg domain.BathroomConfiguration) pdf.Result
}

// MailSender delivers rendered submissions.
type MailSender interface {
	SendContactForm(ctx context.Context, s domain.ContactFormSubmission) domain.DeliveryResult
	SendBathroomConfiguration(ctx context.Context, d mail.BathroomDelivery) domain.DeliveryResult
}

// DocumentStore lists and clears generated PDFs.
type DocumentStore interface {
	Dir() string
	List() ([]domain.GeneratedDocument, string, error)
	Clear() (int, error)
}

// APIConfig carries the handler's environment knobs.
type APIConfig struct {
	Env       string
	Version   string
	DebugMode bool
}

// APIHandler handles all API routes.
type APIHandler struct {
	validator *intake.Validator
	pdfs      PDFGenerator
	mailer    MailSender
	store     DocumentStore
	logger    *slog.Logger
	config    APIConfig

	startTime time.Time
}

// NewAPIHandler creates the API handler.
func NewAPIHandler(validator *intake.Validator, pdfs PDFGenerator, mailer MailSender, store DocumentStore, logger *slog.Logger, config APIConfig) *APIHandler {
	return &APIHandler{
		validator: validator,
		pdfs:      pdfs,
		mailer:    mailer,
		store:     store,
		logger:    logger,
		config:    config,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers all API routes on the mux.
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/contact", h.handleContact)
	mux.HandleFunc("POST /api/send-bathroom-configuration", h.handleBathroomConfiguration)
	mux.HandleFunc("POST /api/generate-pdf-only", h.handleGeneratePDFOnly)
	mux.HandleFunc("GET /api/debug-pdfs", h.handleListDebugPDFs)
	mux.HandleFunc("DELETE /api/debug-pdfs", h.handleClearDebugPDFs)
	mux.HandleFunc("GET /api/health", h.handleHealth)

	// Generated PDFs are only served in debug mode
	if h.config.DebugMode {
		fileServer := http.FileServer(http.Dir(h.store.Dir()))
		mux.Handle("GET /debug/pdfs/", http.StripPrefix("/debug/pdfs/", fileServer))
		h.logger.Info("Debug PDF Route aktiviert", "route", "/debug/pdfs")
	}
}

func (h *APIHandler) isDev() bool {
	return h.config.Env == "development"
}

// =============================================================================
// POST /api/contact
// =============================================================================

func (h *APIHandler) handleContact(w http.ResponseWriter, r *http.Request) {
	var submission domain.ContactFormSubmission
	if !h.decodeBody(w, r, &submission) {
		return
	}

	h.logger.Info("Kontaktformular empfangen",
		"first_name", submission.FirstName,
		"last_name", submission.LastName,
		"service", submission.Service,
	)

	if fields := h.validator.ValidateContact(submission); len(fields) > 0 {
		metrics.SubmissionsTotal.WithLabelValues("contact", "invalid").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Validierungsfehler in den Formulardaten",
			"errors":  fields,
		})
		return
	}

	result := h.mailer.SendContactForm(r.Context(), submission)
	if !result.Success {
		metrics.SubmissionsTotal.WithLabelValues("contact", "failure").Inc()
		h.serverError(w, r, "handler.contact", "Fehler beim Senden der E-Mail. Bitte versuchen Sie es erneut oder kontaktieren Sie uns direkt.", result.Message, nil)
		return
	}

	h.logger.Info("Kontaktformular gesendet",
		"to", result.Recipient,
		"subject", result.Subject,
	)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "Ihre Nachricht wurde erfolgreich versendet. Wir melden uns schnellstmöglich bei Ihnen zurück.",
		"timestamp":   time.Now().Format(time.RFC3339),
		"referenceId": result.ReferenceID,
	})
}

// =============================================================================
// POST /api/send-bathroom-configuration
// =============================================================================

func (h *APIHandler) handleBathroomConfiguration(w http.ResponseWriter, r *http.Request) {
	var cfg domain.BathroomConfiguration
	if !h.decodeBody(w, r, &cfg) {
		return
	}

	h.logger.Info("Badkonfigurator Anfrage empfangen",
		"customer", cfg.CustomerName(),
		"bathroom_size", cfg.SizeLabel(),
		"equipment_count", len(cfg.SelectedEquipment()),
	)

	// Advisory only: findings are logged inside, the request always proceeds.
	h.validator.CheckBathroom(cfg)

	pdfResult := h.pdfs.GenerateBathroomConfiguration(r.Context(), cfg)
	if !pdfResult.Success {
		metrics.SubmissionsTotal.WithLabelValues("bathroom", "failure").Inc()
		h.bathroomError(w, r, false, fmt.Sprintf("PDF Generierung fehlgeschlagen: %s", pdfResult.Message))
		return
	}

	emailResult := h.mailer.SendBathroomConfiguration(r.Context(), mail.BathroomDelivery{
		Config:      cfg,
		PDFPath:     pdfResult.FilePath,
		PDFFilename: pdfResult.Filename,
	})
	if !emailResult.Success {
		metrics.SubmissionsTotal.WithLabelValues("bathroom", "failure").Inc()
		h.bathroomError(w, r, true, emailResult.Message)
		return
	}

	h.logger.Info("Badkonfigurator E-Mail gesendet",
		"to", emailResult.Recipient,
		"customer", cfg.CustomerName(),
		"pdf_attached", pdfResult.FilePath != "",
	)

	body := map[string]interface{}{
		"success":      true,
		"message":      "Ihre Badkonfiguration wurde erfolgreich versendet. Wir erstellen Ihnen gerne ein individuelles Angebot.",
		"timestamp":    time.Now().Format(time.RFC3339),
		"referenceId":  emailResult.ReferenceID,
		"pdfGenerated": true,
		"emailSent":    true,
	}
	if h.config.DebugMode {
		body["debug"] = map[string]interface{}{
			"filename":    pdfResult.Filename,
			"downloadUrl": pdfResult.DownloadURL,
			"pdfSize":     pdfResult.Size,
			"pdfSaved":    pdfResult.Saved,
		}
	}
	writeJSON(w, http.StatusOK, body)
}

// bathroomError answers a failed configurator request. The PDF and email
// stages report independently: a delivery failure after a successful render
// still carries pdfGenerated true. The caller-facing message stays generic;
// the cause lands in the log only.
func (h *APIHandler) bathroomError(w http.ResponseWriter, r *http.Request, pdfGenerated bool, cause string) {
	err := domain.Wrap(errors.New(cause), domain.EINTERNAL, "handler.bathroomConfiguration",
		"Fehler beim Verarbeiten Ihrer Badkonfiguration. Bitte versuchen Sie es erneut.")
	ErrorResponseWith(w, r, h.logger, err, h.isDev(), map[string]interface{}{
		"pdfGenerated": pdfGenerated,
		"emailSent":    false,
	})
}

// =============================================================================
// POST /api/generate-pdf-only
// =============================================================================

func (h *APIHandler) handleGeneratePDFOnly(w http.ResponseWriter, r *http.Request) {
	var cfg domain.BathroomConfiguration
	if !h.decodeBody(w, r, &cfg) {
		return
	}

	h.logger.Info("PDF-Test angefordert", "customer", cfg.CustomerName())

	h.validator.CheckBathroom(cfg)

	result := h.pdfs.GenerateBathroomConfiguration(r.Context(), cfg)
	if !result.Success {
		h.serverError(w, r, "handler.generatePDF", "Fehler beim Generieren des Test-PDFs", result.Message, nil)
		return
	}

	h.logger.Info("Test PDF erfolgreich generiert",
		"filename", result.Filename,
		"size", result.Size,
	)

	debug := map[string]interface{}{
		"filename":    result.Filename,
		"downloadUrl": result.DownloadURL,
		"pdfSize":     result.Size,
		"pdfSaved":    result.Saved,
	}
	if h.isDev() {
		debug["outputPath"] = result.FilePath
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "PDF wurde erfolgreich generiert",
		"timestamp": time.Now().Format(time.RFC3339),
		"debug":     debug,
	})
}

// =============================================================================
// GET /api/debug-pdfs
// =============================================================================

func (h *APIHandler) handleListDebugPDFs(w http.ResponseWriter, r *http.Request) {
	if !h.config.DebugMode {
		err := domain.Errorf(domain.EFORBIDDEN, "handler.listDebugPDFs", "Debug Modus ist nicht aktiviert")
		ErrorResponseWith(w, r, h.logger, err, h.isDev(), map[string]interface{}{
			"debugMode": false,
		})
		return
	}

	docs, totalSize, err := h.store.List()
	if err != nil {
		h.serverError(w, r, "handler.listDebugPDFs", "Fehler beim Auflisten der Debug-PDFs", err.Error(), map[string]interface{}{
			"debugMode": true,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"debugMode":       true,
		"count":           len(docs),
		"pdfs":            docs,
		"totalSize":       totalSize,
		"outputDirectory": h.store.Dir(),
		"timestamp":       time.Now().Format(time.RFC3339),
	})
}

// =============================================================================
// DELETE /api/debug-pdfs
// =============================================================================

func (h *APIHandler) handleClearDebugPDFs(w http.ResponseWriter, r *http.Request) {
	if !h.config.DebugMode {
		err := domain.Errorf(domain.EFORBIDDEN, "handler.clearDebugPDFs", "Debug Modus ist nicht aktiviert")
		ErrorResponse(w, r, h.logger, err, h.isDev())
		return
	}

	deleted, err := h.store.Clear()
	if err != nil {
		h.serverError(w, r, "handler.clearDebugPDFs", "Fehler beim Löschen der Debug-PDFs", err.Error(), nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      fmt.Sprintf("%d Debug-PDFs wurden gelöscht", deleted),
		"deletedCount": deleted,
		"timestamp":    time.Now().Format(time.RFC3339),
	})
}

// =============================================================================
// GET /api/health
// =============================================================================

func (h *APIHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "OK",
		"timestamp":   time.Now().Format(time.RFC3339),
		"service":     "Mitra Sanitär Backend",
		"version":     h.config.Version,
		"uptime":      time.Since(h.startTime).Seconds(),
		"environment": h.config.Env,
		"endpoints": map[string]string{
			"health":                "/api/health",
			"contact":               "/api/contact",
			"bathroomConfiguration": "/api/send-bathroom-configuration",
			"pdfTest":               "/api/generate-pdf-only",
			"debugPdfs":             "/api/debug-pdfs",
		},
	})
}

// =============================================================================
// Helpers
// =============================================================================

// decodeBody decodes the JSON request body. A malformed body answers 400 and
// returns false.
func (h *APIHandler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		ErrorResponse(w, r, h.logger, domain.Wrap(err, domain.EINVALID, "handler.decodeBody", "Ungültiger Request-Body"), h.isDev())
		return false
	}
	return true
}

// serverError answers 500 with a caller-facing German message; the cause only
// reaches the log (and the body in development).
func (h *APIHandler) serverError(w http.ResponseWriter, r *http.Request, op, message, cause string, extra map[string]interface{}) {
	err := domain.Wrap(errors.New(cause), domain.EINTERNAL, op, message)
	ErrorResponseWith(w, r, h.logger, err, h.isDev(), extra)
}
