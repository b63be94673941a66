package pdf

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitra-sanitaer/backend/internal/domain"
	"github.com/mitra-sanitaer/backend/internal/render"
)

// mockConverter implements Converter with an injectable function.
type mockConverter struct {
	convertFunc func(ctx context.Context, html string) ([]byte, error)
}

func (m *mockConverter) Convert(ctx context.Context, html string) ([]byte, error) {
	return m.convertFunc(ctx, html)
}

func testCompany() render.CompanyInfo {
	return render.CompanyInfo{Name: "Mitra Sanitär GmbH", Phone: "030 76008921"}
}

func testConfiguration() domain.BathroomConfiguration {
	return domain.BathroomConfiguration{
		ContactData: domain.ContactData{
			FirstName: "Max",
			LastName:  "Müller",
			Email:     "max@example.com",
		},
	}
}

func TestGenerateBathroomConfiguration_Success(t *testing.T) {
	store := newTestStore(t, true)
	converter := &mockConverter{
		convertFunc: func(ctx context.Context, html string) ([]byte, error) {
			assert.Contains(t, html, "Ihr Badkonfigurator")
			return []byte("%PDF-1.4 fake content"), nil
		},
	}

	svc := NewService(converter, store, testCompany(), testLogger())
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 9, 30, 45, 0, time.UTC) }

	result := svc.GenerateBathroomConfiguration(context.Background(), testConfiguration())

	require.True(t, result.Success)
	assert.Equal(t, "PDF erfolgreich generiert", result.Message)
	assert.Equal(t, "Badkonfigurator_Muller_2025-03-14_09-30-45.pdf", result.Filename)
	assert.True(t, result.Saved)
	assert.FileExists(t, result.FilePath)
	assert.NotEmpty(t, result.DownloadURL)
}

func TestGenerateBathroomConfiguration_ConverterFailure(t *testing.T) {
	store := newTestStore(t, false)
	converter := &mockConverter{
		convertFunc: func(ctx context.Context, html string) ([]byte, error) {
			return nil, errors.New("browser crashed")
		},
	}

	svc := NewService(converter, store, testCompany(), testLogger())

	result := svc.GenerateBathroomConfiguration(context.Background(), testConfiguration())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "PDF konnte nicht generiert werden")
	assert.Contains(t, result.Message, "browser crashed")
	assert.False(t, result.Saved)
}

func TestGenerateBathroomConfiguration_PanicIsContained(t *testing.T) {
	store := newTestStore(t, false)
	converter := &mockConverter{
		convertFunc: func(ctx context.Context, html string) ([]byte, error) {
			panic("unexpected")
		},
	}

	svc := NewService(converter, store, testCompany(), testLogger())

	assert.NotPanics(t, func() {
		result := svc.GenerateBathroomConfiguration(context.Background(), testConfiguration())
		assert.False(t, result.Success)
		assert.Contains(t, result.Message, "PDF konnte nicht generiert werden")
	})
}
