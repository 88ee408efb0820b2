package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tiyasha05/Dental-Art-api/internal/config"
	"github.com/tiyasha05/Dental-Art-api/internal/models"
)

// ResendSender posts notifications to the Resend email API.
type ResendSender struct {
	client *resty.Client
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type resendEmail struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

type resendError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func NewResendSender(cfg config.ResendConfig, timeout time.Duration) *ResendSender {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &ResendSender{client: client}
}

func (s *ResendSender) Send(ctx context.Context, n models.Notification) error {
	payload := resendEmail{
		From:    n.From,
		To:      []string{n.To},
		Subject: n.Subject,
		HTML:    n.HTML,
	}
	if n.Attachment != nil {
		// The API only accepts attachment content as base64.
		payload.Attachments = []resendAttachment{{
			Filename: n.Attachment.Filename,
			Content:  base64.StdEncoding.EncodeToString(n.Attachment.Content),
		}}
	}

	var sent resendResponse
	res, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&sent).
		SetError(&resendError{}).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if res.IsError() {
		perr := &ProviderError{StatusCode: res.StatusCode(), Message: http.StatusText(res.StatusCode())}
		if apiErr, ok := res.Error().(*resendError); ok && apiErr.Message != "" {
			perr.Message = apiErr.Message
		}
		return perr
	}

	slog.Info("Email sent successfully", "provider", config.ProviderResend, "id", sent.ID, "subject", n.Subject)
	return nil
}
