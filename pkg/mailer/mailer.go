// Package mailer sends transactional email over SMTP. The server address and
// credentials come from configuration; a Mailtrap inbox works for development.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Config holds SMTP connection settings.
type Config struct {
	Host   string
	Port   string
	User   string
	Pass   string
	Sender string
}

// SMTPMailer sends mail through a single SMTP server.
type SMTPMailer struct {
	cfg Config
}

// Sender is the minimal mail-sending interface services depend on.
type Sender interface {
	Send(recipient, subject, body string) error
}

// NewSMTPMailer validates the configuration and returns a mailer.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Port == "" {
		return nil, fmt.Errorf("SMTP host and port must be provided")
	}
	if cfg.User == "" || cfg.Pass == "" {
		return nil, fmt.Errorf("SMTP username and password must be provided")
	}
	if cfg.Sender == "" {
		return nil, fmt.Errorf("sender email address cannot be empty")
	}
	return &SMTPMailer{cfg: cfg}, nil
}

// Send delivers one message. The Content-Type is inferred from the body: a
// body containing basic HTML tags is sent as text/html.
func (m *SMTPMailer) Send(recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}
	if subject == "" {
		return fmt.Errorf("email subject cannot be empty")
	}

	contentType := "text/plain; charset=UTF-8"
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html>") || strings.Contains(lower, "<p>") {
		contentType = "text/html; charset=UTF-8"
	}

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: %s\r\n"+
		"\r\n"+
		"%s\r\n", recipient, m.cfg.Sender, subject, contentType, body))

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.Sender, []string{recipient}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
