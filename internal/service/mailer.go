package service

import (
	"context"

	"go.uber.org/zap"
)

// Mailer delivers notification mail. The default implementation only logs,
// real delivery is wired in deployments that configure an SMTP relay.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer records outbound mail in the application log instead of sending
// it. Used when mail delivery is disabled.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer constructs the logging mailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

// Send logs the message and reports success.
func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("mail suppressed, delivery disabled",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)))
	return nil
}
