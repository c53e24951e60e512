package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
)

// CreateSubscriptionRequest defines the data needed to create a subscription.
type CreateSubscriptionRequest struct {
	Name      string           `json:"name" binding:"required"`
	Amount    decimal.Decimal  `json:"amount" binding:"required"`
	Frequency domain.Frequency `json:"frequency" binding:"required,oneof=WEEKLY MONTHLY YEARLY"`
	StartDate *time.Time       `json:"startDate"` // defaults to now
}

// UpdateSubscriptionRequest defines the data allowed for updating a subscription.
type UpdateSubscriptionRequest struct {
	Name      *string           `json:"name"`
	Amount    *decimal.Decimal  `json:"amount"`
	Frequency *domain.Frequency `json:"frequency"`
	IsActive  *bool             `json:"isActive"`
}

// SubscriptionResponse defines the data returned for a subscription.
type SubscriptionResponse struct {
	SubscriptionID  string           `json:"subscriptionID"`
	Name            string           `json:"name"`
	Amount          decimal.Decimal  `json:"amount"`
	Frequency       domain.Frequency `json:"frequency"`
	StartDate       time.Time        `json:"startDate"`
	NextPaymentDate time.Time        `json:"nextPaymentDate"`
	IsActive        bool             `json:"isActive"`
	CreatedAt       time.Time        `json:"createdAt"`
	LastUpdatedAt   time.Time        `json:"lastUpdatedAt"`
}

// ReminderResponse defines the data returned for a pending reminder.
type ReminderResponse struct {
	ReminderID   string    `json:"reminderID"`
	ReminderDate time.Time `json:"reminderDate"`
	Sent         bool      `json:"sent"`
}

// ToSubscriptionResponse converts a domain.Subscription to a response DTO.
func ToSubscriptionResponse(s *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID:  s.SubscriptionID,
		Name:            s.Name,
		Amount:          s.Amount,
		Frequency:       s.Frequency,
		StartDate:       s.StartDate,
		NextPaymentDate: s.NextPaymentDate,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		LastUpdatedAt:   s.LastUpdatedAt,
	}
}

// ToListSubscriptionResponse converts domain.Subscriptions to response DTOs.
func ToListSubscriptionResponse(subs []domain.Subscription) []SubscriptionResponse {
	res := make([]SubscriptionResponse, len(subs))
	for i := range subs {
		res[i] = ToSubscriptionResponse(&subs[i])
	}
	return res
}

// ToReminderResponses converts reminders to response DTOs.
func ToReminderResponses(reminders []domain.SubscriptionReminder) []ReminderResponse {
	res := make([]ReminderResponse, len(reminders))
	for i, r := range reminders {
		res[i] = ReminderResponse{
			ReminderID:   r.ReminderID,
			ReminderDate: r.ReminderDate,
			Sent:         r.Sent,
		}
	}
	return res
}
