package services

import (
	"context"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
)

// NotificationSender delivers a payment reminder to the user. Implementations
// decide the channel (email, log).
type NotificationSender interface {
	SendReminder(ctx context.Context, recipient string, due domain.DueReminder) error
}
