package email

import (
	"fmt"

	"workhub_backend/internal/config"
	"workhub_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// Provider abstracts outbound mail so services can be tested with a mock.
type Provider interface {
	Send(to, subject, htmlBody string) error
}

type SMTPProvider struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	d := gomail.NewDialer(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUsername,
		cfg.Email.SMTPPassword,
	)
	from := fmt.Sprintf("%s <%s>", cfg.Email.FromName, cfg.Email.FromEmail)
	return &SMTPProvider{dialer: d, from: from}
}

func (p *SMTPProvider) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := p.dialer.DialAndSend(m); err != nil {
		logger.Error("failed to send email", "to", to, "subject", subject, "error", err)
		return err
	}
	return nil
}

// NoopProvider is used in development and tests where no SMTP server exists.
type NoopProvider struct{}

func (NoopProvider) Send(to, subject, _ string) error {
	logger.Debug("email suppressed", "to", to, "subject", subject)
	return nil
}
