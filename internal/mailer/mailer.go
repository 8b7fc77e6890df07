package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"yamdb/internal/config"

	"golang.org/x/time/rate"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers outbound email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer relays mail through an SMTP server, throttled to a fixed rate.
type SMTPMailer struct {
	addr        string
	from        string
	auth        smtp.Auth
	rateLimiter *rate.Limiter
	send        sendFunc
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	burst := int(cfg.MailRatePerSecond)
	if burst < 1 {
		burst = 1
	}
	return &SMTPMailer{
		addr:        cfg.SMTPAddr(),
		from:        cfg.MailFrom,
		auth:        auth,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.MailRatePerSecond), burst),
		send:        smtp.SendMail,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("mailer: empty recipient")
	}
	if strings.ContainsAny(msg.To+msg.Subject, "\r\n") {
		return errors.New("mailer: header contains line break")
	}
	if err := m.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("mailer: rate limiter: %w", err)
	}

	body := []byte("Subject: " + msg.Subject + "\r\n" +
		"From: " + m.from + "\r\n" +
		"To: " + msg.To + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		msg.Body + "\r\n")

	if err := m.send(m.addr, m.auth, m.from, []string{msg.To}, body); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", msg.To, err)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them. Used when no
// SMTP relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "outbound email",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

// New picks the SMTP relay when one is configured and the log otherwise.
func New(cfg *config.Config, logger *slog.Logger) Mailer {
	if cfg.SMTPAddr() == "" {
		logger.Warn("SMTP_HOST not set, emails will be written to the log")
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg)
}
