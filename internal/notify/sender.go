// Package notify delivers submission emails to clinic staff through a
// transactional email API or an SMTP account.
package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/tiyasha05/Dental-Art-api/internal/config"
	"github.com/tiyasha05/Dental-Art-api/internal/models"
)

// Sender delivers one notification. Implementations make a single attempt.
type Sender interface {
	Send(ctx context.Context, n models.Notification) error
}

// ProviderError is a rejection reported by the email provider itself.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("email provider rejected message (status %d): %s", e.StatusCode, e.Message)
}

// New returns the backend selected by cfg.Email.Provider.
func New(cfg *config.Config) (Sender, error) {
	switch cfg.Email.Provider {
	case config.ProviderResend:
		return NewResendSender(cfg.Resend, cfg.Email.SendTimeout), nil
	case config.ProviderSMTP:
		return NewSMTPSender(cfg.SMTP), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Email.Provider)
	}
}

// MockSender records notifications instead of sending them.
type MockSender struct {
	Err   error
	Calls []models.Notification
	mu    sync.Mutex
}

func (m *MockSender) Send(ctx context.Context, n models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, n)
	return m.Err
}

// Sent returns a copy of every notification passed to Send.
func (m *MockSender) Sent() []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]models.Notification(nil), m.Calls...)
}
