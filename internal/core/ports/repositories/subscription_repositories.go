package repositories

import (
	"context"
	"time"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
)

// SubscriptionReader defines read operations for subscription data.
type SubscriptionReader interface {
	// FindSubscriptionByID retrieves a subscription by its unique identifier.
	FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error)

	// ListSubscriptions retrieves all subscriptions owned by a user, ordered
	// by next payment date.
	ListSubscriptions(ctx context.Context, userID string) ([]domain.Subscription, error)

	// ListUnsentReminders retrieves a subscription's pending reminders,
	// earliest first.
	ListUnsentReminders(ctx context.Context, subscriptionID string) ([]domain.SubscriptionReminder, error)
}

// SubscriptionWriter defines write operations for subscription data.
type SubscriptionWriter interface {
	// SaveSubscription persists a new subscription and its first reminder in
	// one transaction.
	SaveSubscription(ctx context.Context, sub domain.Subscription, reminder domain.SubscriptionReminder) error

	// UpdateSubscription updates mutable subscription fields.
	UpdateSubscription(ctx context.Context, sub domain.Subscription) error

	// DeleteSubscription removes a subscription and its reminders.
	DeleteSubscription(ctx context.Context, subscriptionID string) error

	// AdvanceNextPayment stores the advanced next payment date and inserts
	// the reminder for the new cycle in one transaction. Prior reminders are
	// left untouched.
	AdvanceNextPayment(ctx context.Context, sub domain.Subscription, reminder domain.SubscriptionReminder) error
}

// ReminderRepository defines the operations the reminder sweep needs. The
// sweep only writes reminder rows; subscription data is read-only to it.
type ReminderRepository interface {
	// FindDueReminders retrieves unsent reminders with reminderDate <= asOf,
	// joined with their subscription's name, next payment date and active
	// flag, plus the owner's email for delivery.
	FindDueReminders(ctx context.Context, asOf time.Time) ([]domain.DueReminder, error)

	// MarkReminderSent flags a reminder as delivered.
	MarkReminderSent(ctx context.Context, reminderID string) error
}

// SubscriptionRepository combines all subscription-related repository interfaces.
type SubscriptionRepository interface {
	SubscriptionReader
	SubscriptionWriter
}
