package mail

import (
	"context"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
)

// LogMailer writes mails to the log instead of delivering them.
type LogMailer struct {
	logger ports.LoggerPort
}

var _ ports.MailerPort = (*LogMailer)(nil)

func NewLogMailer(logger ports.LoggerPort) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, email *domain.Email) error {
	m.logger.Info("Email not delivered, SMTP disabled", map[string]interface{}{
		"to":      email.To,
		"subject": email.Subject,
		"body":    email.Body,
	})
	return nil
}
