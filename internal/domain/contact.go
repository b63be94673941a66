package domain

import "strings"

// =============================================================================
// Contact Form Submission
// =============================================================================

// ContactFormSubmission is a single contact form request. It lives only for
// the duration of the request: decoded from the body, rendered, delivered,
// then discarded.
type ContactFormSubmission struct {
	FirstName string `json:"firstName" validate:"required,min=1"`
	LastName  string `json:"lastName" validate:"required,min=1"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Service   string `json:"service,omitempty"`
	Subject   string `json:"subject" validate:"required,min=1"`
	Message   string `json:"message" validate:"required,min=1"`
	Urgent    bool   `json:"urgent,omitempty"`
}

// serviceLabels maps service codes from the frontend to display labels.
var serviceLabels = map[string]string{
	"heating":      "Heizungsbau",
	"bathroom":     "Bäderbau",
	"installation": "Installation",
	"emergency":    "Notdienst",
	"consultation": "Beratung",
}

// FullName returns "FirstName LastName" with surrounding whitespace trimmed.
func (s ContactFormSubmission) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// ServiceLabel resolves the service code to its display label.
// Unknown or missing codes degrade to "Nicht angegeben".
func (s ContactFormSubmission) ServiceLabel() string {
	if label, ok := serviceLabels[s.Service]; ok {
		return label
	}
	return "Nicht angegeben"
}
