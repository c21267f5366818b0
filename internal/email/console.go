package email

import (
	"context"

	"go.uber.org/zap"
)

// consoleMailer logs messages instead of delivering them. Used when no
// SendGrid key is configured, typically in local development.
type consoleMailer struct {
	logger *zap.Logger
}

// NewConsoleMailer returns a Mailer that writes messages to the log.
func NewConsoleMailer(logger *zap.Logger) Mailer {
	return &consoleMailer{logger: logger}
}

func (m *consoleMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("email (console transport)",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.TextBody))
	return nil
}
