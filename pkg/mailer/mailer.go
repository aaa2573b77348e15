// Package mailer sends plain notification emails over SMTP. It exists for
// exactly one flow: telling the site owner a new contact message arrived.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer holds SMTP connection settings.
type Mailer struct {
	Host string
	Port string
	User string
	Pass string
}

// New creates a Mailer. Host, user and password are required.
func New(host, port, user, pass string) (*Mailer, error) {
	if host == "" {
		return nil, fmt.Errorf("SMTP host cannot be empty")
	}
	if user == "" || pass == "" {
		return nil, fmt.Errorf("SMTP username and password must be provided")
	}
	if port == "" {
		port = "2525"
	}
	return &Mailer{Host: host, Port: port, User: user, Pass: pass}, nil
}

// Send delivers one email. The body may be plain text or HTML; the
// Content-Type is inferred from basic HTML tags.
func (m *Mailer) Send(recipient, sender, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}
	if sender == "" {
		return fmt.Errorf("sender email address cannot be empty")
	}
	if subject == "" {
		return fmt.Errorf("email subject cannot be empty")
	}

	contentType := "text/plain; charset=\"UTF-8\""
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<p>") {
		contentType = "text/html; charset=\"UTF-8\""
	}

	msg := strings.Join([]string{
		"From: " + sender,
		"To: " + recipient,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: " + contentType,
		"",
		body,
	}, "\r\n")

	addr := m.Host + ":" + m.Port
	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	if err := smtp.SendMail(addr, auth, sender, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email via %s: %w", addr, err)
	}
	return nil
}
