package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"os"
	"time"
)

// =============================================================================
// SMTP Transport
// =============================================================================

// SMTPConfig holds SMTP server configuration.
type SMTPConfig struct {
	Host        string
	Port        int
	Secure      bool // implicit TLS (port 465 style) instead of STARTTLS
	Credentials Credentials
}

// SMTPTransport sends messages over SMTP with hand-built MIME bodies.
type SMTPTransport struct {
	config SMTPConfig
	logger *slog.Logger
}

// NewSMTPTransport creates a live SMTP transport.
func NewSMTPTransport(config SMTPConfig, logger *slog.Logger) *SMTPTransport {
	return &SMTPTransport{config: config, logger: logger}
}

// Verify opens a connection to the SMTP server and performs a handshake
// (plus authentication when supported) without sending anything. Used at
// gateway construction to decide between live and simulated mode.
func (t *SMTPTransport) Verify(ctx context.Context) error {
	client, err := t.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Hello("localhost"); err != nil {
		return fmt.Errorf("smtp hello: %w", err)
	}
	if !t.config.Secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: t.config.Host}); err != nil {
				return fmt.Errorf("smtp starttls: %w", err)
			}
		}
	}
	if ok, _ := client.Extension("AUTH"); ok {
		if err := client.Auth(t.auth()); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	return client.Quit()
}

// Send transmits the message and reports the server's acknowledgement.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) (Receipt, error) {
	client, err := t.dial(ctx)
	if err != nil {
		return Receipt{}, err
	}
	defer client.Close()

	if err := client.Hello("localhost"); err != nil {
		return Receipt{}, fmt.Errorf("smtp hello: %w", err)
	}
	if !t.config.Secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: t.config.Host}); err != nil {
				return Receipt{}, fmt.Errorf("smtp starttls: %w", err)
			}
		}
	}
	if ok, _ := client.Extension("AUTH"); ok {
		if err := client.Auth(t.auth()); err != nil {
			return Receipt{}, fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(msg.FromAddress); err != nil {
		return Receipt{}, fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt); err != nil {
			return Receipt{}, fmt.Errorf("smtp rcpt to %s: %w", rcpt, err)
		}
	}

	raw, err := buildMessage(msg)
	if err != nil {
		return Receipt{}, err
	}

	w, err := client.Data()
	if err != nil {
		return Receipt{}, fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return Receipt{}, fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return Receipt{}, fmt.Errorf("smtp close data: %w", err)
	}
	if err := client.Quit(); err != nil {
		return Receipt{}, fmt.Errorf("smtp quit: %w", err)
	}

	return Receipt{
		MessageID: fmt.Sprintf("%d@%s", time.Now().UnixNano(), t.config.Host),
		Response:  "250 2.0.0 OK",
		Accepted:  msg.To,
	}, nil
}

func (t *SMTPTransport) dial(ctx context.Context) (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", t.config.Host, t.config.Port)
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	var conn net.Conn
	var err error
	if t.config.Secure {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: t.config.Host})
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("smtp dial %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, t.config.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return client, nil
}

func (t *SMTPTransport) auth() smtp.Auth {
	return smtp.PlainAuth("", t.config.Credentials.User, t.config.Credentials.Pass, t.config.Host)
}

// =============================================================================
// MIME Assembly
// =============================================================================

const mixedBoundary = "===============MITRA_MIXED==============="

// buildMessage constructs the raw RFC 2822 message. Without attachments the
// body is a single HTML part; with attachments it becomes multipart/mixed
// with the PDF base64-encoded.
func buildMessage(msg Message) ([]byte, error) {
	var buf bytes.Buffer

	write := func(format string, args ...interface{}) {
		fmt.Fprintf(&buf, format, args...)
	}

	write("From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", msg.FromName), msg.FromAddress)
	write("To: %s\r\n", joinAddresses(msg.To))
	if msg.ReplyTo != "" {
		write("Reply-To: %s\r\n", msg.ReplyTo)
	}
	write("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")

	if len(msg.Attachments) == 0 {
		write("Content-Type: text/html; charset=utf-8\r\n")
		write("Content-Transfer-Encoding: 8bit\r\n")
		write("\r\n")
		buf.WriteString(msg.HTMLBody)
		buf.WriteString("\r\n")
		return buf.Bytes(), nil
	}

	write("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", mixedBoundary)
	write("\r\n")

	// HTML part
	write("--%s\r\n", mixedBoundary)
	write("Content-Type: text/html; charset=utf-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n")
	write("\r\n")
	buf.WriteString(msg.HTMLBody)
	write("\r\n")

	// Attachment parts
	for _, att := range msg.Attachments {
		data, err := os.ReadFile(att.Path)
		if err != nil {
			return nil, fmt.Errorf("read attachment %s: %w", att.Path, err)
		}
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		write("--%s\r\n", mixedBoundary)
		write("Content-Type: %s; name=\"%s\"\r\n", contentType, att.Filename)
		write("Content-Disposition: attachment; filename=\"%s\"\r\n", att.Filename)
		write("Content-Transfer-Encoding: base64\r\n")
		write("\r\n")

		encoded := base64.StdEncoding.EncodeToString(data)
		// Fold base64 at 76 columns per RFC 2045.
		for len(encoded) > 76 {
			buf.WriteString(encoded[:76])
			buf.WriteString("\r\n")
			encoded = encoded[76:]
		}
		buf.WriteString(encoded)
		write("\r\n")
	}

	write("--%s--\r\n", mixedBoundary)
	return buf.Bytes(), nil
}

func joinAddresses(addrs []string) string {
	var b bytes.Buffer
	for i, a := range addrs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a)
	}
	return b.String()
}

var _ Transport = (*SMTPTransport)(nil)
