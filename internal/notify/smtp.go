package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/tiyasha05/Dental-Art-api/internal/config"
	"github.com/tiyasha05/Dental-Art-api/internal/models"
)

const maxAttachmentSize = 10 * 1024 * 1024 // 10MB

// SMTPSender delivers notifications through an SMTP account, dialing per send.
type SMTPSender struct {
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if cfg.TLSSkipVerify {
		d.TLSConfig = &tls.Config{
			ServerName:         cfg.Host,
			InsecureSkipVerify: true,
		}
	}
	return &SMTPSender{dialer: d}
}

func (s *SMTPSender) Send(ctx context.Context, n models.Notification) error {
	m, err := buildMessage(n)
	if err != nil {
		return err
	}

	// gomail has no context support; abandon the dial when ctx expires.
	errc := make(chan error, 1)
	go func() {
		errc <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("failed to send email: %w", ctx.Err())
	}

	slog.Info("Email sent successfully", "provider", config.ProviderSMTP, "recipient", n.To, "subject", n.Subject)
	return nil
}

func buildMessage(n models.Notification) (*gomail.Message, error) {
	if n.To == "" {
		return nil, fmt.Errorf("recipient is required")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.From)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/html", n.HTML)

	if a := n.Attachment; a != nil {
		if len(a.Content) > maxAttachmentSize {
			return nil, fmt.Errorf("attachment size exceeds the limit of %dMB", maxAttachmentSize/1024/1024)
		}
		content := a.Content
		m.Attach(a.Filename,
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		)
	}

	return m, nil
}
