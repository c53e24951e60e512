package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often a subscription charges.
type Frequency string

const (
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
	Yearly  Frequency = "YEARLY"
)

// ValidFrequency reports whether f is one of the known frequencies.
func ValidFrequency(f Frequency) bool {
	switch f {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Subscription is a recurring charge. NextPaymentDate advances by one cycle
// each time a payment is processed.
type Subscription struct {
	SubscriptionID  string          `json:"subscriptionID"`
	UserID          string          `json:"userID"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	Frequency       Frequency       `json:"frequency"`
	StartDate       time.Time       `json:"startDate"`
	NextPaymentDate time.Time       `json:"nextPaymentDate"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// SubscriptionReminder is a pending notification, due three days before the
// subscription's next payment. The reminder sweep marks it sent.
type SubscriptionReminder struct {
	ReminderID     string    `json:"reminderID"`
	SubscriptionID string    `json:"subscriptionID"`
	ReminderDate   time.Time `json:"reminderDate"`
	Sent           bool      `json:"sent"`
	CreatedAt      time.Time `json:"createdAt"`
}

// DueReminder is the read model the reminder sweep works on: the unsent
// reminder joined with the subscription fields needed for delivery.
type DueReminder struct {
	Reminder           SubscriptionReminder `json:"reminder"`
	SubscriptionName   string               `json:"subscriptionName"`
	NextPaymentDate    time.Time            `json:"nextPaymentDate"`
	SubscriptionActive bool                 `json:"subscriptionActive"`
	UserEmail          string               `json:"userEmail"`
}
