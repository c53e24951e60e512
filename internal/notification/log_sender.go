package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
)

// LogSender writes reminders to the log instead of delivering them. Used
// when no SMTP relay is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a log-only reminder sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

var _ portssvc.NotificationSender = (*LogSender)(nil)

// SendReminder logs the reminder and reports success.
func (s *LogSender) SendReminder(_ context.Context, recipient string, due domain.DueReminder) error {
	s.logger.Info("payment reminder",
		slog.String("recipient", recipient),
		slog.String("subscription", due.SubscriptionName),
		slog.String("next_payment_date", due.NextPaymentDate.Format(time.DateOnly)),
	)
	return nil
}
