package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"buildxpert/internal/config"
)

// SMTPProvider delivers mail over plain SMTP. Primary backend for
// self-hosted deployments.
type SMTPProvider struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPProvider(cfg config.EmailConfig) *SMTPProvider {
	return &SMTPProvider{
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
	}
}

func (p *SMTPProvider) Name() string { return "smtp" }

func (p *SMTPProvider) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.from, p.fromName)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)

	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		if msg.HTMLBody != "" {
			m.AddAlternative("text/html", msg.HTMLBody)
		}
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}

	// gomail has no context support; honor cancellation before dialing.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
