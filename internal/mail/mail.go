// Package mail delivers confirmation codes out of band.
package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"yamdb/internal/config"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends a message; implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer, or a logging one when no SMTP host is configured.
func New(cfg *config.Config, log *zap.Logger) Mailer {
	if cfg.SMTPHost == "" {
		return NewLogMailer(log, cfg.IsDevelopment())
	}
	return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
}

// SMTPMailer sends over SMTP. Send returns when ctx is done even if the
// SMTP exchange is still in flight; that exchange is abandoned in the background.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	send   func(...*gomail.Message) error
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	dialer := gomail.NewDialer(host, port, username, password)
	return &SMTPMailer{
		dialer: dialer,
		from:   from,
		send:   dialer.DialAndSend,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	done := make(chan error, 1)
	go func() { done <- m.send(gm) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail to %s: %w", msg.To, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send mail to %s: %w", msg.To, ctx.Err())
	}
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	log         *zap.Logger
	includeBody bool
}

// NewLogMailer logs bodies only when includeBody is set, since they carry codes.
func NewLogMailer(log *zap.Logger, includeBody bool) *LogMailer {
	return &LogMailer{log: log, includeBody: includeBody}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	fields := []zap.Field{zap.String("to", msg.To), zap.String("subject", msg.Subject)}
	if m.includeBody {
		fields = append(fields, zap.String("body", msg.Body))
	}
	m.log.Info("mail not sent, no SMTP host configured", fields...)
	return nil
}
