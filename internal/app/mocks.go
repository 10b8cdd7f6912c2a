package app

import (
	"gatherly_backend/internal/email"
	"gatherly_backend/internal/logger"
)

// MockEmailProvider stands in when SMTP is not configured. Deliveries are
// logged and reported as sent.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Message) error {
	logger.Info("mock mail delivery", "to", msg.To, "subject", msg.Subject)
	return nil
}
