// Package mail delivers form submissions to the company mailbox.
//
// The gateway operates in one of two modes resolved at construction:
//
//   - live: messages go out over a verified SMTP connection
//   - simulated: messages are logged in full structured detail and never
//     leave the process
//
// Simulated mode is chosen automatically when the configured credentials are
// missing, match a known placeholder, are too short, or fail SMTP
// verification. Startup never fails because of mail configuration.
package mail

import (
	"context"
	"strings"
)

// =============================================================================
// Transport Interface
// =============================================================================

// Message is a single outbound email.
type Message struct {
	FromName    string
	FromAddress string
	To          []string
	ReplyTo     string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Attachment references a file on local disk to attach.
type Attachment struct {
	Filename    string
	Path        string
	ContentType string
}

// Receipt is what a transport reports back for a sent message.
type Receipt struct {
	MessageID string
	Response  string
	Accepted  []string
	MockMode  bool
}

// Transport moves a message towards its recipients. Implementations:
// SMTPTransport (live) and MockTransport (simulated).
type Transport interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// =============================================================================
// Credentials
// =============================================================================

// placeholderValues are dummy credentials shipped in setup instructions and
// .env templates. They must never select live mode.
var placeholderValues = map[string]bool{
	"your-email@gmail.com": true,
	"deine-email@gmail.com": true,
	"test@example.com":      true,
	"your-app-password":     true,
	"dein-app-passwort":     true,
	"app-passwort":          true,
	"auto-generated":        true,
}

// Credentials is an SMTP user/secret pair.
type Credentials struct {
	User string
	Pass string
}

// Valid reports whether the pair looks like real credentials: both present,
// neither a known placeholder, user at least 5 and secret at least 8
// characters.
func (c Credentials) Valid() bool {
	if c.User == "" || c.Pass == "" {
		return false
	}
	if placeholderValues[strings.ToLower(c.User)] || placeholderValues[strings.ToLower(c.Pass)] {
		return false
	}
	if len(c.User) < 5 || len(c.Pass) < 8 {
		return false
	}
	return true
}
