package mail

import (
	"context"
	"fmt"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/config"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	domainErrors "github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// dialer is the part of gomail.Dialer the mailer needs
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends rendered templates through an SMTP relay
type SMTPMailer struct {
	dialer   dialer
	renderer *Renderer
	from     string
	fromName string
	logger   *zap.Logger
}

// NewSMTPMailer creates a mailer for the configured relay
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) (*SMTPMailer, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		renderer: renderer,
		from:     from,
		fromName: cfg.FromName,
		logger:   logger,
	}, nil
}

// Send renders msg and hands it to the relay
func (s *SMTPMailer) Send(ctx context.Context, msg *entity.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body, err := s.renderer.Render(msg)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, s.fromName))
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send email",
			zap.String("template", msg.Template),
			zap.String("to", msg.To),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent",
		zap.String("template", msg.Template),
		zap.String("to", msg.To))
	return nil
}

// DisabledMailer is used when no SMTP host is configured
type DisabledMailer struct {
	logger *zap.Logger
}

func NewDisabledMailer(logger *zap.Logger) *DisabledMailer {
	return &DisabledMailer{logger: logger}
}

func (d *DisabledMailer) Send(_ context.Context, msg *entity.EmailMessage) error {
	d.logger.Warn("SMTP is not configured, email dropped",
		zap.String("template", msg.Template),
		zap.String("to", msg.To))
	return domainErrors.ErrMailDisabled
}
