package mailer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ===============================
// SMTP
// ===============================

type SMTPConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	From    string
	Timeout time.Duration
}

// SMTPMailer sends through gomail. Each attempt is bounded by Timeout and
// a failed attempt is retried once.
type SMTPMailer struct {
	from    string
	timeout time.Duration
	log     *zap.Logger
	send    func(*gomail.Message) error
}

const attempts = 2

func NewSMTP(cfg SMTPConfig, log *zap.Logger) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &SMTPMailer{
		from:    cfg.From,
		timeout: timeout,
		log:     log.Named("mailer"),
		send:    func(gm *gomail.Message) error { return d.DialAndSend(gm) },
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	var err error
	for i := 1; i <= attempts; i++ {
		if err = m.attempt(ctx, gm); err == nil {
			return nil
		}
		m.log.Warn("email send failed",
			zap.Int("attempt", i),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("send email: %w", err)
}

func (m *SMTPMailer) attempt(ctx context.Context, gm *gomail.Message) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- m.send(gm) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ===============================
// Log (no SMTP configured)
// ===============================

type LogMailer struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log.Named("mailer")}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("email not sent, SMTP disabled",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.HTML),
	)
	return nil
}
