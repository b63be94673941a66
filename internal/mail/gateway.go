package mail

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mitra-sanitaer/backend/internal/domain"
	"github.com/mitra-sanitaer/backend/internal/metrics"
	"github.com/mitra-sanitaer/backend/internal/render"
)

// =============================================================================
// Gateway
// =============================================================================

// GatewayConfig configures the mail gateway.
type GatewayConfig struct {
	SMTP SMTPConfig

	// FromName and FromAddress identify the sender.
	FromName    string
	FromAddress string

	// To is the company mailbox receiving all submissions.
	To string

	// Company details rendered into email bodies.
	Company render.CompanyInfo

	// Debug enables body previews in simulated mode.
	Debug bool
}

// BathroomDelivery bundles a configuration with its optional PDF for sending.
type BathroomDelivery struct {
	Config      domain.BathroomConfiguration
	PDFPath     string
	PDFFilename string
}

// Gateway delivers rendered form submissions to the company mailbox. The
// delivery mode is fixed at construction and never changes at runtime.
type Gateway struct {
	transport Transport
	mode      domain.DeliveryMode
	config    GatewayConfig
	logger    *slog.Logger

	now func() time.Time
}

// NewGateway resolves the delivery mode and returns a ready gateway.
//
// Live mode requires credentials that pass the plausibility check and an SMTP
// server that answers a verification handshake. Anything else falls back to
// simulated mode with a warning; construction itself cannot fail.
func NewGateway(ctx context.Context, cfg GatewayConfig, logger *slog.Logger) *Gateway {
	g := &Gateway{
		config: cfg,
		logger: logger,
		now:    time.Now,
	}

	if !cfg.SMTP.Credentials.Valid() {
		logger.Warn("Keine gültigen SMTP-Zugangsdaten, E-Mail-Versand wird simuliert")
		g.transport = NewMockTransport(logger, cfg.Debug)
		g.mode = domain.DeliveryModeSimulated
		return g
	}

	smtpTransport := NewSMTPTransport(cfg.SMTP, logger)
	if err := smtpTransport.Verify(ctx); err != nil {
		logger.Warn("SMTP-Verbindung fehlgeschlagen, E-Mail-Versand wird simuliert", "error", err)
		g.transport = NewMockTransport(logger, cfg.Debug)
		g.mode = domain.DeliveryModeSimulated
		return g
	}

	logger.Info("SMTP-Verbindung verifiziert", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)
	g.transport = smtpTransport
	g.mode = domain.DeliveryModeLive
	return g
}

// NewGatewayWithTransport creates a gateway around an explicit transport.
func NewGatewayWithTransport(transport Transport, mode domain.DeliveryMode, cfg GatewayConfig, logger *slog.Logger) *Gateway {
	return &Gateway{
		transport: transport,
		mode:      mode,
		config:    cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Mode returns the resolved delivery mode.
func (g *Gateway) Mode() domain.DeliveryMode {
	return g.mode
}

func (g *Gateway) simulated() bool {
	return g.mode == domain.DeliveryModeSimulated
}

// SendContactForm delivers a contact form submission. Failures are folded
// into the result; this method never returns an error.
func (g *Gateway) SendContactForm(ctx context.Context, submission domain.ContactFormSubmission) (result domain.DeliveryResult) {
	defer g.recoverInto(&result)

	referenceID := "CONTACT-" + uuid.NewString()[:8]
	subject := fmt.Sprintf("Kontaktanfrage: %s", submission.Subject)

	html, err := render.ContactEmail(submission, referenceID, render.Context{
		Now:      g.now(),
		TestMode: g.simulated(),
		Company:  g.config.Company,
	})
	if err != nil {
		g.logger.Error("Fehler beim Rendern der Kontakt-E-Mail", "error", err)
		metrics.EmailsSentTotal.WithLabelValues(string(g.mode), "failure").Inc()
		return domain.DeliveryResult{
			Success:  false,
			Message:  fmt.Sprintf("E-Mail konnte nicht versendet werden: %v", err),
			TestMode: g.simulated(),
		}
	}

	receipt, err := g.transport.Send(ctx, Message{
		FromName:    g.config.FromName,
		FromAddress: g.config.FromAddress,
		To:          []string{g.config.To},
		ReplyTo:     submission.Email,
		Subject:     subject,
		HTMLBody:    html,
	})
	if err != nil {
		g.logger.Error("Fehler beim E-Mail-Versand", "error", err, "reference_id", referenceID)
		metrics.EmailsSentTotal.WithLabelValues(string(g.mode), "failure").Inc()
		return domain.DeliveryResult{
			Success:  false,
			Message:  fmt.Sprintf("E-Mail konnte nicht versendet werden: %v", err),
			TestMode: g.simulated(),
		}
	}

	g.logger.Info("Kontaktanfrage versendet",
		"reference_id", referenceID,
		"message_id", receipt.MessageID,
		"mock", receipt.MockMode,
	)
	metrics.EmailsSentTotal.WithLabelValues(string(g.mode), "success").Inc()
	metrics.SubmissionsTotal.WithLabelValues("contact", "success").Inc()

	message := "E-Mail erfolgreich versendet"
	if receipt.MockMode {
		message = "Mock E-Mail erfolgreich simuliert (Test-Modus)"
	}
	return domain.DeliveryResult{
		Success:     true,
		Message:     message,
		ReferenceID: referenceID,
		Recipient:   g.config.To,
		Subject:     subject,
		TestMode:    receipt.MockMode,
	}
}

// SendBathroomConfiguration delivers a bathroom configuration, attaching the
// generated PDF when it exists on disk. A missing PDF downgrades to an email
// without attachment instead of failing the delivery.
func (g *Gateway) SendBathroomConfiguration(ctx context.Context, delivery BathroomDelivery) (result domain.DeliveryResult) {
	defer g.recoverInto(&result)

	cfg := delivery.Config
	referenceID := "BATHROOM-" + uuid.NewString()[:8]
	subject := fmt.Sprintf("Badkonfigurator Anfrage - %s %s",
		cfg.ContactData.FirstName, cfg.ContactData.LastName)

	html, err := render.BathroomEmail(cfg, referenceID, render.Context{
		Now:      g.now(),
		TestMode: g.simulated(),
		Company:  g.config.Company,
	})
	if err != nil {
		g.logger.Error("Fehler beim Rendern der Badkonfigurator-E-Mail", "error", err)
		metrics.EmailsSentTotal.WithLabelValues(string(g.mode), "failure").Inc()
		return domain.DeliveryResult{
			Success:  false,
			Message:  fmt.Sprintf("Badkonfiguration konnte nicht versendet werden: %v", err),
			TestMode: g.simulated(),
		}
	}

	var attachments []Attachment
	if delivery.PDFPath != "" {
		if _, err := os.Stat(delivery.PDFPath); err == nil {
			filename := delivery.PDFFilename
			if filename == "" {
				filename = "Badkonfiguration.pdf"
			}
			attachments = append(attachments, Attachment{
				Filename:    filename,
				Path:        delivery.PDFPath,
				ContentType: "application/pdf",
			})
		} else {
			g.logger.Warn("PDF-Anhang nicht gefunden, E-Mail wird ohne Anhang versendet",
				"path", delivery.PDFPath)
		}
	}

	receipt, err := g.transport.Send(ctx, Message{
		FromName:    g.config.FromName,
		FromAddress: g.config.FromAddress,
		To:          []string{g.config.To},
		ReplyTo:     cfg.ContactData.Email,
		Subject:     subject,
		HTMLBody:    html,
		Attachments: attachments,
	})
	if err != nil {
		g.logger.Error("Fehler beim E-Mail-Versand", "error", err, "reference_id", referenceID)
		metrics.EmailsSentTotal.WithLabelValues(string(g.mode), "failure").Inc()
		return domain.DeliveryResult{
			Success:  false,
			Message:  fmt.Sprintf("Badkonfiguration konnte nicht versendet werden: %v", err),
			TestMode: g.simulated(),
		}
	}

	g.logger.Info("Badkonfiguration versendet",
		"reference_id", referenceID,
		"message_id", receipt.MessageID,
		"attachments", len(attachments),
		"mock", receipt.MockMode,
	)
	metrics.EmailsSentTotal.WithLabelValues(string(g.mode), "success").Inc()
	metrics.SubmissionsTotal.WithLabelValues("bathroom", "success").Inc()

	message := "Badkonfiguration erfolgreich versendet"
	if receipt.MockMode {
		message = "Mock Badkonfiguration erfolgreich simuliert (Test-Modus)"
	}
	return domain.DeliveryResult{
		Success:     true,
		Message:     message,
		ReferenceID: referenceID,
		Recipient:   g.config.To,
		Subject:     subject,
		TestMode:    receipt.MockMode,
	}
}

func (g *Gateway) recoverInto(result *domain.DeliveryResult) {
	if r := recover(); r != nil {
		g.logger.Error("Unerwarteter Fehler beim E-Mail-Versand", "panic", fmt.Sprint(r))
		metrics.EmailsSentTotal.WithLabelValues(string(g.mode), "failure").Inc()
		*result = domain.DeliveryResult{
			Success:  false,
			Message:  fmt.Sprintf("E-Mail konnte nicht versendet werden: unerwarteter Fehler: %v", r),
			TestMode: g.simulated(),
		}
	}
}
