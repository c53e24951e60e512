package models

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

// Subscription represents a row in the subscriptions table.
type Subscription struct {
	SubscriptionID  string          `db:"subscription_id"`
	UserID          string          `db:"user_id"`
	Name            string          `db:"name"`
	Amount          decimal.Decimal `db:"amount"`
	Frequency       Frequency       `db:"frequency"`
	StartDate       time.Time       `db:"start_date"`
	NextPaymentDate time.Time       `db:"next_payment_date"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}

// SubscriptionReminder represents a row in the subscription_reminders table.
type SubscriptionReminder struct {
	ReminderID     string    `db:"reminder_id"`
	SubscriptionID string    `db:"subscription_id"`
	ReminderDate   time.Time `db:"reminder_date"`
	Sent           bool      `db:"sent"`
	CreatedAt      time.Time `db:"created_at"`
}
