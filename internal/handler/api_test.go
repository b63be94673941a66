package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitra-sanitaer/backend/internal/domain"
	"github.com/mitra-sanitaer/backend/internal/intake"
	"github.com/mitra-sanitaer/backend/internal/mail"
	"github.com/mitra-sanitaer/backend/internal/pdf"
)

// =============================================================================
// Mocks
// =============================================================================

type mockPDFGenerator struct {
	generateFunc func(ctx context.Context, cfg domain.BathroomConfiguration) pdf.Result
}

func (m *mockPDFGenerator) GenerateBathroomConfiguration(ctx context.Context, cfg domain.BathroomConfiguration) pdf.Result {
	return m.generateFunc(ctx, cfg)
}

type mockMailSender struct {
	contactFunc  func(ctx context.Context, s domain.ContactFormSubmission) domain.DeliveryResult
	bathroomFunc func(ctx context.Context, d mail.BathroomDelivery) domain.DeliveryResult
}

func (m *mockMailSender) SendContactForm(ctx context.Context, s domain.ContactFormSubmission) domain.DeliveryResult {
	return m.contactFunc(ctx, s)
}

func (m *mockMailSender) SendBathroomConfiguration(ctx context.Context, d mail.BathroomDelivery) domain.DeliveryResult {
	return m.bathroomFunc(ctx, d)
}

type mockDocumentStore struct {
	dir       string
	listFunc  func() ([]domain.GeneratedDocument, string, error)
	clearFunc func() (int, error)
}

func (m *mockDocumentStore) Dir() string { return m.dir }

func (m *mockDocumentStore) List() ([]domain.GeneratedDocument, string, error) {
	return m.listFunc()
}

func (m *mockDocumentStore) Clear() (int, error) {
	return m.clearFunc()
}

// =============================================================================
// Fixtures
// =============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

type testDeps struct {
	pdfs   *mockPDFGenerator
	mailer *mockMailSender
	store  *mockDocumentStore
}

func defaultDeps() *testDeps {
	return &testDeps{
		pdfs: &mockPDFGenerator{
			generateFunc: func(ctx context.Context, cfg domain.BathroomConfiguration) pdf.Result {
				return pdf.Result{
					Success:  true,
					Message:  "PDF erfolgreich generiert",
					Filename: "Badkonfigurator_Test.pdf",
					FilePath: "/tmp/Badkonfigurator_Test.pdf",
					Size:     "10.00 KB",
					Saved:    true,
				}
			},
		},
		mailer: &mockMailSender{
			contactFunc: func(ctx context.Context, s domain.ContactFormSubmission) domain.DeliveryResult {
				return domain.DeliveryResult{
					Success:     true,
					Message:     "E-Mail erfolgreich versendet",
					ReferenceID: "CONTACT-abc12345",
					Recipient:   "hey@mitra-sanitaer.de",
					Subject:     "Kontaktanfrage: " + s.Subject,
				}
			},
			bathroomFunc: func(ctx context.Context, d mail.BathroomDelivery) domain.DeliveryResult {
				return domain.DeliveryResult{
					Success:     true,
					Message:     "Badkonfiguration erfolgreich versendet",
					ReferenceID: "BATHROOM-def67890",
					Recipient:   "hey@mitra-sanitaer.de",
				}
			},
		},
		store: &mockDocumentStore{
			dir: "/tmp/generated-pdfs",
			listFunc: func() ([]domain.GeneratedDocument, string, error) {
				return nil, "0.00 KB", nil
			},
			clearFunc: func() (int, error) { return 0, nil },
		},
	}
}

func newTestMux(deps *testDeps, debugMode bool) *http.ServeMux {
	h := NewAPIHandler(
		intake.New(testLogger()),
		deps.pdfs,
		deps.mailer,
		deps.store,
		testLogger(),
		APIConfig{Env: "test", Version: "1.0.0", DebugMode: debugMode},
	)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

const validContactBody = `{
	"firstName": "Max",
	"lastName": "Mustermann",
	"email": "max@example.com",
	"subject": "Heizung defekt",
	"message": "Bitte um Rückruf."
}`

const validBathroomBody = `{
	"contactData": {
		"firstName": "Max",
		"lastName": "Mustermann",
		"email": "max@example.com"
	},
	"bathroomData": {"bathroomSize": 7.5}
}`

// =============================================================================
// Contact Form
// =============================================================================

func TestHandleContact_Success(t *testing.T) {
	mux := newTestMux(defaultDeps(), false)

	rec, body := doJSON(t, mux, "POST", "/api/contact", validContactBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Regexp(t, `^CONTACT-[0-9a-f]{8}$`, body["referenceId"])
	assert.Contains(t, body["message"], "erfolgreich versendet")
}

func TestHandleContact_MissingEmailRejected(t *testing.T) {
	mux := newTestMux(defaultDeps(), false)

	rec, body := doJSON(t, mux, "POST", "/api/contact", `{
		"firstName": "Max",
		"lastName": "Mustermann",
		"subject": "Test",
		"message": "Test"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validierungsfehler in den Formulardaten", body["message"])

	errs, ok := body["errors"].([]interface{})
	require.True(t, ok)
	require.Len(t, errs, 1)
	field := errs[0].(map[string]interface{})
	assert.Equal(t, "email", field["field"])
}

func TestHandleContact_MalformedBodyRejected(t *testing.T) {
	mux := newTestMux(defaultDeps(), false)

	rec, body := doJSON(t, mux, "POST", "/api/contact", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestHandleContact_DeliveryFailure(t *testing.T) {
	deps := defaultDeps()
	deps.mailer.contactFunc = func(ctx context.Context, s domain.ContactFormSubmission) domain.DeliveryResult {
		return domain.DeliveryResult{Success: false, Message: "E-Mail konnte nicht versendet werden: timeout"}
	}
	mux := newTestMux(deps, false)

	rec, body := doJSON(t, mux, "POST", "/api/contact", validContactBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "Fehler beim Senden der E-Mail")
	// Env is not development; the cause stays out of the response.
	assert.NotContains(t, rec.Body.String(), "timeout")
}

// =============================================================================
// Bathroom Configuration
// =============================================================================

func TestHandleBathroomConfiguration_Success(t *testing.T) {
	mux := newTestMux(defaultDeps(), false)

	rec, body := doJSON(t, mux, "POST", "/api/send-bathroom-configuration", validBathroomBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["pdfGenerated"])
	assert.Equal(t, true, body["emailSent"])
	assert.Regexp(t, `^BATHROOM-[0-9a-f]{8}$`, body["referenceId"])
	assert.NotContains(t, body, "debug")
}

func TestHandleBathroomConfiguration_DebugBlock(t *testing.T) {
	mux := newTestMux(defaultDeps(), true)

	rec, body := doJSON(t, mux, "POST", "/api/send-bathroom-configuration", validBathroomBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	debug, ok := body["debug"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Badkonfigurator_Test.pdf", debug["filename"])
	assert.Equal(t, "10.00 KB", debug["pdfSize"])
	assert.Equal(t, true, debug["pdfSaved"])
}

func TestHandleBathroomConfiguration_InvalidContactDataStillProcessed(t *testing.T) {
	// Advisory validation: a payload with missing contact fields must not 400.
	mux := newTestMux(defaultDeps(), false)

	rec, body := doJSON(t, mux, "POST", "/api/send-bathroom-configuration", `{"comments": "nur ein Kommentar"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
}

func TestHandleBathroomConfiguration_PDFFailure(t *testing.T) {
	deps := defaultDeps()
	deps.pdfs.generateFunc = func(ctx context.Context, cfg domain.BathroomConfiguration) pdf.Result {
		return pdf.Result{Success: false, Message: "PDF konnte nicht generiert werden: browser crashed"}
	}
	mux := newTestMux(deps, false)

	rec, body := doJSON(t, mux, "POST", "/api/send-bathroom-configuration", validBathroomBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, false, body["pdfGenerated"])
	assert.Equal(t, false, body["emailSent"])
}

func TestHandleBathroomConfiguration_EmailFailure(t *testing.T) {
	deps := defaultDeps()
	deps.mailer.bathroomFunc = func(ctx context.Context, d mail.BathroomDelivery) domain.DeliveryResult {
		return domain.DeliveryResult{Success: false, Message: "Badkonfiguration konnte nicht versendet werden: timeout"}
	}
	mux := newTestMux(deps, false)

	rec, body := doJSON(t, mux, "POST", "/api/send-bathroom-configuration", validBathroomBody)

	// The stages report independently: the PDF succeeded, only delivery failed.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, true, body["pdfGenerated"])
	assert.Equal(t, false, body["emailSent"])
	assert.NotContains(t, rec.Body.String(), "timeout")
}

// =============================================================================
// PDF Test Endpoint
// =============================================================================

func TestHandleGeneratePDFOnly_Success(t *testing.T) {
	mux := newTestMux(defaultDeps(), false)

	rec, body := doJSON(t, mux, "POST", "/api/generate-pdf-only", validBathroomBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	debug, ok := body["debug"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Badkonfigurator_Test.pdf", debug["filename"])
}

// =============================================================================
// Debug PDFs
// =============================================================================

func TestHandleListDebugPDFs_ForbiddenWithoutDebugMode(t *testing.T) {
	mux := newTestMux(defaultDeps(), false)

	rec, body := doJSON(t, mux, "GET", "/api/debug-pdfs", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Debug Modus ist nicht aktiviert", body["message"])
	assert.Equal(t, false, body["debugMode"])
}

func TestHandleListDebugPDFs_Success(t *testing.T) {
	deps := defaultDeps()
	deps.store.listFunc = func() ([]domain.GeneratedDocument, string, error) {
		return []domain.GeneratedDocument{
			{Filename: "a.pdf", SizeLabel: "1.00 KB", CreatedAt: "14.03.2025 09:30:45"},
			{Filename: "b.pdf", SizeLabel: "2.00 KB", CreatedAt: "14.03.2025 09:31:00"},
		}, "3.00 KB", nil
	}
	mux := newTestMux(deps, true)

	rec, body := doJSON(t, mux, "GET", "/api/debug-pdfs", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["debugMode"])
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, "3.00 KB", body["totalSize"])
	assert.Equal(t, "/tmp/generated-pdfs", body["outputDirectory"])
}

func TestHandleClearDebugPDFs(t *testing.T) {
	deps := defaultDeps()
	deps.store.clearFunc = func() (int, error) { return 3, nil }
	mux := newTestMux(deps, true)

	rec, body := doJSON(t, mux, "DELETE", "/api/debug-pdfs", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["deletedCount"])
	assert.Equal(t, "3 Debug-PDFs wurden gelöscht", body["message"])
}

func TestHandleClearDebugPDFs_ForbiddenWithoutDebugMode(t *testing.T) {
	mux := newTestMux(defaultDeps(), false)

	rec, _ := doJSON(t, mux, "DELETE", "/api/debug-pdfs", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// =============================================================================
// Health Check
// =============================================================================

func TestHandleHealth(t *testing.T) {
	mux := newTestMux(defaultDeps(), false)

	rec, body := doJSON(t, mux, "GET", "/api/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Mitra Sanitär Backend", body["service"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, "test", body["environment"])

	endpoints, ok := body["endpoints"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "/api/contact", endpoints["contact"])
	assert.Equal(t, "/api/send-bathroom-configuration", endpoints["bathroomConfiguration"])
}
