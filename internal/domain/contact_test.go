package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceLabel(t *testing.T) {
	tests := []struct {
		service string
		want    string
	}{
		{"heating", "Heizungsbau"},
		{"bathroom", "Bäderbau"},
		{"installation", "Installation"},
		{"emergency", "Notdienst"},
		{"consultation", "Beratung"},
		{"", "Nicht angegeben"},
		{"unbekannt", "Nicht angegeben"},
	}

	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			s := ContactFormSubmission{Service: tt.service}
			assert.Equal(t, tt.want, s.ServiceLabel())
		})
	}
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Max Mustermann", ContactFormSubmission{FirstName: "Max", LastName: "Mustermann"}.FullName())
	assert.Equal(t, "Max", ContactFormSubmission{FirstName: "Max"}.FullName())
	assert.Equal(t, "", ContactFormSubmission{}.FullName())
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "1.00 KB", FormatFileSize(1024))
	assert.Equal(t, "0.50 KB", FormatFileSize(512))
	assert.Equal(t, "150.56 KB", FormatFileSize(154173))
}
