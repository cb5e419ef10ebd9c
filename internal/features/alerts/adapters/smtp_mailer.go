package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-tracker/internal/core/config"
	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/features/alerts/domain"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// ErrMissingCredentials is returned when EMAIL_USER or EMAIL_PASS is not set.
var ErrMissingCredentials = errors.New("missing EMAIL_USER or EMAIL_PASS")

// SMTPMailer sends stock alerts through an authenticated SMTP server.
type SMTPMailer struct {
	cfg     config.MailConfig
	to      []string
	timeout time.Duration
	logger  *zap.Logger
}

// NewSMTPMailer creates a new SMTPMailer. It fails with ErrMissingCredentials
// when the configuration cannot authenticate.
func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	if !cfg.HasCredentials() {
		return nil, ErrMissingCredentials
	}

	return &SMTPMailer{
		cfg:     cfg,
		to:      config.SplitList(cfg.Recipient(), ","),
		timeout: 30 * time.Second,
		logger:  logger.Get(),
	}, nil
}

// buildMessage turns a composed alert into a MIME message.
func (m *SMTPMailer) buildMessage(msg *domain.Message) (*mail.Msg, error) {
	out := mail.NewMsg()
	if err := out.FromFormat(m.cfg.FromName, m.cfg.Username); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := out.To(m.to...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return out, nil
}

func (m *SMTPMailer) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(m.timeout),
	}
	if m.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	return mail.NewClient(m.cfg.Host, opts...)
}

// Send delivers the alert to the configured recipient.
func (m *SMTPMailer) Send(ctx context.Context, msg *domain.Message) error {
	out, err := m.buildMessage(msg)
	if err != nil {
		return err
	}

	client, err := m.client()
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	m.logger.Debug("Sending stock alert",
		zap.String("host", m.cfg.Host),
		zap.Int("port", m.cfg.Port),
		zap.Strings("to", m.to),
	)

	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
