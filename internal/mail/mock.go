package mail

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"regexp"
	"strings"
	"time"
)

// =============================================================================
// Mock Transport
// =============================================================================

// MockTransport simulates delivery by logging the full message details.
// Nothing leaves the process. Used whenever live SMTP is unavailable so the
// rest of the pipeline behaves identically in development and production.
type MockTransport struct {
	logger *slog.Logger

	// debug additionally logs a plain-text preview of the message body.
	debug bool
}

// NewMockTransport creates a simulated transport.
func NewMockTransport(logger *slog.Logger, debug bool) *MockTransport {
	return &MockTransport{logger: logger, debug: debug}
}

var htmlTags = regexp.MustCompile(`<[^>]*>`)

// Send logs the message and returns a synthetic receipt.
func (t *MockTransport) Send(ctx context.Context, msg Message) (Receipt, error) {
	attrs := []any{
		"from", fmt.Sprintf("%s <%s>", msg.FromName, msg.FromAddress),
		"to", strings.Join(msg.To, ", "),
		"subject", msg.Subject,
		"body_length", len(msg.HTMLBody),
	}
	if msg.ReplyTo != "" {
		attrs = append(attrs, "reply_to", msg.ReplyTo)
	}
	for _, att := range msg.Attachments {
		size := "unbekannt"
		if info, err := os.Stat(att.Path); err == nil {
			size = fmt.Sprintf("%.2f KB", float64(info.Size())/1024)
		}
		attrs = append(attrs, "attachment", fmt.Sprintf("%s (%s)", att.Filename, size))
	}

	t.logger.Info("Mock E-Mail simuliert", attrs...)

	if t.debug {
		preview := strings.TrimSpace(htmlTags.ReplaceAllString(msg.HTMLBody, ""))
		// Truncate on rune boundaries so umlauts are never split.
		if runes := []rune(preview); len(runes) > 200 {
			preview = string(runes[:200])
		}
		t.logger.Debug("Mock E-Mail Vorschau", "body", preview)
	}

	return Receipt{
		MessageID: fmt.Sprintf("mock-%d-%04d@test.mitra-sanitaer.de", time.Now().Unix(), rand.Intn(10000)),
		Response:  "250 2.0.0 OK Mock email queued for delivery",
		Accepted:  msg.To,
		MockMode:  true,
	}, nil
}

var _ Transport = (*MockTransport)(nil)
