// Package intake validates incoming form submissions.
//
// The two forms carry deliberately different policies:
//
//   - Contact form: strict. Missing required fields reject the request.
//   - Bathroom configurator: advisory. Validation findings are logged and the
//     request always proceeds — a half-broken configurator payload is still a
//     lead, and losing it costs more than tolerating it. Do not "fix" this
//     asymmetry; it is a business rule, not an oversight.
package intake

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mitra-sanitaer/backend/internal/domain"
)

// Validator schema-checks form payloads and reports field-level findings.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a Validator. Field names in findings use the json tag so they
// match what the frontend sent.
func New(logger *slog.Logger) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v, logger: logger}
}

// ValidateContact checks a contact form submission against the strict schema.
// A non-empty result means the request must be rejected with 400.
func (v *Validator) ValidateContact(s domain.ContactFormSubmission) []domain.FieldError {
	fields := v.check(s)
	if len(fields) > 0 {
		v.logger.Warn("Kontaktformular Validierungsfehler", "errors", len(fields))
		return fields
	}
	v.logger.Info("Kontaktformular validiert")
	return nil
}

// CheckBathroom checks a configurator payload against the advisory schema.
// Findings are returned for logging only; callers must proceed regardless.
// A fault inside the validator itself is swallowed for the same reason.
func (v *Validator) CheckBathroom(c domain.BathroomConfiguration) (fields []domain.FieldError) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("Validierung Fehler (ignoriert)", "panic", fmt.Sprint(r))
			fields = nil
		}
	}()

	fields = v.check(c)
	if len(fields) > 0 {
		customer := c.ContactData.FirstName
		if customer == "" {
			customer = "Unknown"
		}
		v.logger.Warn("Badkonfigurator Validierungswarnungen (werden ignoriert)",
			"warnings", len(fields),
			"customer", customer,
		)
	}
	return fields
}

func (v *Validator) check(payload interface{}) []domain.FieldError {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError: the payload itself was unusable.
		return []domain.FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: messageFor(fe),
			Value:   fe.Value(),
		})
	}
	return out
}

// fieldPath strips the root struct name from a namespace:
// "BathroomConfiguration.contactData.email" -> "contactData.email".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q ist erforderlich", fe.Field())
	case "email":
		return fmt.Sprintf("%q muss eine gültige E-Mail-Adresse sein", fe.Field())
	case "min":
		return fmt.Sprintf("%q darf nicht leer sein", fe.Field())
	case "gte":
		return fmt.Sprintf("%q muss mindestens %s sein", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%q ist ungültig (%s)", fe.Field(), fe.Tag())
	}
}
