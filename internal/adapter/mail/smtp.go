package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/garagehub/garage_services/internal/config"
	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	addr   string
	auth   smtp.Auth
	from   string
	send   sendFunc
	logger ports.LoggerPort
}

var _ ports.MailerPort = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg *config.Mail, logger ports.LoggerPort) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		addr:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.PortInt())),
		auth:   auth,
		from:   cfg.From,
		send:   smtp.SendMail,
		logger: logger,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, email *domain.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// net/smtp has no context support; the caller stops waiting at its deadline.
	done := make(chan error, 1)
	go func() {
		done <- m.send(m.addr, m.auth, m.from, []string{email.To}, buildMessage(m.from, email))
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail to %s: %w", email.To, err)
		}
	case <-ctx.Done():
		return fmt.Errorf("send mail to %s: %w", email.To, ctx.Err())
	}
	m.logger.Info("Email sent", map[string]interface{}{
		"to":      email.To,
		"subject": email.Subject,
	})
	return nil
}

func buildMessage(from string, email *domain.Email) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + email.To + "\r\n")
	b.WriteString("Subject: " + email.Subject + "\r\n")
	b.WriteString("Date: " + time.Now().UTC().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(email.Body, "\n", "\r\n"))
	return []byte(b.String())
}
