package services

import (
	"context"
	"crypto/tls"
	"fmt"

	mail "github.com/go-mail/mail/v2"
	"github.com/rpupo63/developer-portfolio-backend/config"
)

// SMTPEmail sends notifications through an SMTP relay using STARTTLS.
type SMTPEmail struct {
	dialer     *mail.Dialer
	from       string
	recipients []string
}

// NewSMTPFromConfig returns false when SMTP_HOST, SMTP_FROM or
// NOTIFY_EMAIL_TO is missing.
func NewSMTPFromConfig(cfg map[string]string) (*SMTPEmail, bool) {
	host := config.GetString(cfg, "SMTP_HOST", "")
	from := config.GetString(cfg, "SMTP_FROM", "")
	to := config.GetStrings(cfg, "NOTIFY_EMAIL_TO", nil)
	if host == "" || from == "" || len(to) == 0 {
		return nil, false
	}

	d := mail.NewDialer(host,
		config.GetInt(cfg, "SMTP_PORT", 587),
		config.GetString(cfg, "SMTP_USER", ""),
		config.GetString(cfg, "SMTP_PASS", ""),
	)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: config.GetBool(cfg, "SMTP_SKIP_TLS_VERIFY", false),
	}

	return &SMTPEmail{dialer: d, from: from, recipients: to}, true
}

func (s *SMTPEmail) Name() string {
	return "smtp"
}

// Send dials the relay for every message. go-mail has no context support, so
// ctx is only checked before dialing.
func (s *SMTPEmail) Send(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(s.message(n)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (s *SMTPEmail) message(n Notification) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.recipients...)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/plain", n.Text)
	if n.HTML != "" {
		m.AddAlternative("text/html", n.HTML)
	}
	return m
}
