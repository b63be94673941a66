// Package render produces the HTML bodies for outbound email and for the
// configurator PDF. All functions are pure: input plus an explicit Context
// (clock, delivery mode, company details) fully determines the output, so
// the same payload rendered twice is byte-identical.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/mitra-sanitaer/backend/internal/domain"
)

// CompanyInfo carries the company details stamped into every document.
type CompanyInfo struct {
	Name    string
	Address string
	City    string
	Phone   string
	Email   string
}

// Context is the injected environment for a render call. Now replaces any
// internal clock read; TestMode prepends the simulation banner.
type Context struct {
	Now      time.Time
	TestMode bool
	Company  CompanyInfo
}

// Timestamp formats the injected time the way it appears in emails and PDFs.
func (c Context) Timestamp() string {
	return c.Now.Format("02.01.2006 15:04:05")
}

// =============================================================================
// Email Bodies
// =============================================================================

type contactEmailData struct {
	Ctx          Context
	Timestamp    string
	ReferenceID  string
	Submission   domain.ContactFormSubmission
	ServiceLabel string
}

// ContactEmail renders the HTML body for a contact form notification.
func ContactEmail(s domain.ContactFormSubmission, referenceID string, ctx Context) (string, error) {
	return execute(contactEmailTmpl, contactEmailData{
		Ctx:          ctx,
		Timestamp:    ctx.Timestamp(),
		ReferenceID:  referenceID,
		Submission:   s,
		ServiceLabel: s.ServiceLabel(),
	})
}

type bathroomEmailData struct {
	Ctx             Context
	Timestamp       string
	ReferenceID     string
	Config          domain.BathroomConfiguration
	CustomerName    string
	SizeLabel       string
	QualityName     string
	Equipment       []domain.SelectedEquipment
	FloorTiles      string
	WallTiles       string
	Heating         string
	AdditionalInfos []string
}

// BathroomEmail renders the HTML body for a configurator notification.
// Every nested field is guarded; an empty configuration still renders.
func BathroomEmail(c domain.BathroomConfiguration, referenceID string, ctx Context) (string, error) {
	return execute(bathroomEmailTmpl, bathroomEmailData{
		Ctx:             ctx,
		Timestamp:       ctx.Timestamp(),
		ReferenceID:     referenceID,
		Config:          c,
		CustomerName:    c.CustomerName(),
		SizeLabel:       c.SizeLabel(),
		QualityName:     c.QualityName(),
		Equipment:       c.SelectedEquipment(),
		FloorTiles:      domain.JoinList(c.FloorTiles()),
		WallTiles:       domain.JoinList(c.WallTiles()),
		Heating:         domain.JoinList(c.Heating()),
		AdditionalInfos: c.AdditionalInfoLabels(),
	})
}

// =============================================================================
// PDF Document
// =============================================================================

type bathroomDocumentData struct {
	Ctx                Context
	Timestamp          string
	ReferenceID        string
	Config             domain.BathroomConfiguration
	CustomerName       string
	SizeLabel          string
	QualityName        string
	QualityDescription string
	Equipment          []domain.SelectedEquipment
	FloorTiles         []string
	WallTiles          []string
	Heating            []string
	AdditionalInfos    []string
}

// BathroomDocument renders the standalone print-oriented HTML document that
// the converter turns into the configurator PDF.
func BathroomDocument(c domain.BathroomConfiguration, referenceID string, ctx Context) (string, error) {
	return execute(bathroomDocumentTmpl, bathroomDocumentData{
		Ctx:                ctx,
		Timestamp:          ctx.Timestamp(),
		ReferenceID:        referenceID,
		Config:             c,
		CustomerName:       c.CustomerName(),
		SizeLabel:          c.SizeLabel(),
		QualityName:        c.QualityName(),
		QualityDescription: c.QualityDescription(),
		Equipment:          c.SelectedEquipment(),
		FloorTiles:         nonEmpty(c.FloorTiles()),
		WallTiles:          nonEmpty(c.WallTiles()),
		Heating:            nonEmpty(c.Heating()),
		AdditionalInfos:    c.AdditionalInfoLabels(),
	})
}

// PrintHeader returns the running page header used by the PDF printer.
func PrintHeader(ctx Context) string {
	return fmt.Sprintf(`<div style="font-size: 10px; width: 100%%; text-align: center; color: #666;">
  <span style="float: left;">%s - Badkonfigurator</span>
  <span style="float: right;">Seite <span class="pageNumber"></span> von <span class="totalPages"></span></span>
</div>`, template.HTMLEscapeString(ctx.Company.Name))
}

// PrintFooter returns the running page footer used by the PDF printer.
func PrintFooter(ctx Context) string {
	return fmt.Sprintf(`<div style="font-size: 10px; width: 100%%; text-align: center; color: #666; padding: 5px;">
  <span>Erstellt am %s | %s | %s | %s</span>
</div>`,
		ctx.Timestamp(),
		template.HTMLEscapeString(ctx.Company.Name),
		template.HTMLEscapeString(ctx.Company.Phone),
		template.HTMLEscapeString(ctx.Company.Email),
	)
}

func execute(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
