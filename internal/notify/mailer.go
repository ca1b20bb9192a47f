package notify

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/config"
	"github.com/wneessen/go-mail"
)

// Mailer delivers a Message. A nil error means the transport accepted it.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends through an authenticated SMTP relay using STARTTLS.
type SMTPMailer struct {
	client *mail.Client
}

func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName:         cfg.SMTPHost,
			InsecureSkipVerify: cfg.SMTPInsecureSkipVerify,
		}),
		mail.WithTimeout(cfg.MailTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &SMTPMailer{client: client}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	envelope, err := buildMsg(msg)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, envelope); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

func buildMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	return m, nil
}
