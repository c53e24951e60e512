package services

import (
	"context"

	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

// SubscriptionService defines the business operations for recurring
// subscriptions and their billing cycle.
type SubscriptionService interface {
	// CreateSubscription creates a subscription with its next payment date
	// one cycle after the start date, plus the reminder for that charge.
	CreateSubscription(ctx context.Context, userID string, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)

	// GetSubscriptionByID retrieves one of the user's subscriptions.
	GetSubscriptionByID(ctx context.Context, userID, subscriptionID string) (*dto.SubscriptionResponse, error)

	// ListSubscriptions retrieves all of the user's subscriptions.
	ListSubscriptions(ctx context.Context, userID string) ([]dto.SubscriptionResponse, error)

	// UpdateSubscription applies the provided fields. A frequency change
	// takes effect from the next cycle advance; the already scheduled next
	// payment date keeps its slot.
	UpdateSubscription(ctx context.Context, userID, subscriptionID string, req dto.UpdateSubscriptionRequest) (*dto.SubscriptionResponse, error)

	// DeleteSubscription removes a subscription and its reminders.
	DeleteSubscription(ctx context.Context, userID, subscriptionID string) error

	// AdvanceCycle moves an active subscription's next payment date one
	// frequency interval forward and schedules the next reminder. Used after
	// a charge date passes.
	AdvanceCycle(ctx context.Context, userID, subscriptionID string) (*dto.SubscriptionResponse, error)

	// ListReminders retrieves the subscription's pending reminders.
	ListReminders(ctx context.Context, userID, subscriptionID string) ([]dto.ReminderResponse, error)
}
