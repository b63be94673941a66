// Package pdf converts rendered configurator documents to PDF files in the
// output directory. Each conversion runs in its own headless browser with
// guaranteed teardown; failures surface as structured results, never as
// errors or panics escaping the service.
package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mitra-sanitaer/backend/internal/domain"
	"github.com/mitra-sanitaer/backend/internal/metrics"
	"github.com/mitra-sanitaer/backend/internal/render"
)

// Result is the structured outcome of one PDF generation.
type Result struct {
	Success     bool
	Message     string
	Filename    string
	FilePath    string
	Size        string
	Saved       bool
	DownloadURL string
}

// Service renders a bathroom configuration and persists it as a PDF.
type Service struct {
	converter Converter
	store     *Store
	company   render.CompanyInfo
	logger    *slog.Logger

	// now is injectable for deterministic filenames in tests.
	now func() time.Time
}

// NewService creates a PDF generation service.
func NewService(converter Converter, store *Store, company render.CompanyInfo, logger *slog.Logger) *Service {
	return &Service{
		converter: converter,
		store:     store,
		company:   company,
		logger:    logger,
		now:       time.Now,
	}
}

// GenerateBathroomConfiguration renders the configuration, converts it, and
// writes the PDF to the output directory. All failures are folded into the
// returned Result.
func (s *Service) GenerateBathroomConfiguration(ctx context.Context, cfg domain.BathroomConfiguration) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Fehler bei PDF-Generierung", "panic", fmt.Sprint(r))
			result = failure(fmt.Errorf("unerwarteter Fehler: %v", r))
		}
	}()

	start := s.now()
	filename := s.store.Filename(cfg.ContactData.LastName, start)

	s.logger.Info("PDF Generierung gestartet",
		"customer", cfg.CustomerName(),
		"filename", filename,
	)

	referenceID := "BATHROOM-" + uuid.NewString()[:8]
	html, err := render.BathroomDocument(cfg, referenceID, render.Context{
		Now:     start,
		Company: s.company,
	})
	if err != nil {
		s.logger.Error("Fehler bei PDF-Generierung", "error", err)
		metrics.PDFGenerationsTotal.WithLabelValues("failure").Inc()
		return failure(err)
	}

	data, err := s.converter.Convert(ctx, html)
	if err != nil {
		s.logger.Error("Fehler bei PDF-Generierung", "error", err)
		metrics.PDFGenerationsTotal.WithLabelValues("failure").Inc()
		return failure(err)
	}

	doc, err := s.store.Save(filename, data, start)
	if err != nil {
		s.logger.Error("Fehler beim Speichern des PDFs", "error", err)
		metrics.PDFGenerationsTotal.WithLabelValues("failure").Inc()
		return failure(err)
	}

	metrics.PDFGenerationsTotal.WithLabelValues("success").Inc()
	metrics.PDFGenerationDuration.Observe(time.Since(start).Seconds())

	return Result{
		Success:     true,
		Message:     "PDF erfolgreich generiert",
		Filename:    doc.Filename,
		FilePath:    doc.FilePath,
		Size:        doc.SizeLabel,
		Saved:       true,
		DownloadURL: doc.DownloadURL,
	}
}

func failure(err error) Result {
	return Result{
		Success: false,
		Message: fmt.Sprintf("PDF konnte nicht generiert werden: %v", err),
	}
}
