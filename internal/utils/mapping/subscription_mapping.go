package mapping

import (
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	"github.com/fintrackr/fintrackr_backend/internal/models"
)

// ToModelSubscription converts a domain Subscription to a model Subscription.
func ToModelSubscription(d domain.Subscription) models.Subscription {
	return models.Subscription{
		SubscriptionID:  d.SubscriptionID,
		UserID:          d.UserID,
		Name:            d.Name,
		Amount:          d.Amount,
		Frequency:       models.Frequency(d.Frequency),
		StartDate:       d.StartDate,
		NextPaymentDate: d.NextPaymentDate,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSubscription converts a model Subscription to a domain Subscription.
func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		SubscriptionID:  m.SubscriptionID,
		UserID:          m.UserID,
		Name:            m.Name,
		Amount:          m.Amount,
		Frequency:       domain.Frequency(m.Frequency),
		StartDate:       m.StartDate,
		NextPaymentDate: m.NextPaymentDate,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSubscriptionSlice converts model Subscriptions to domain Subscriptions.
func ToDomainSubscriptionSlice(ms []models.Subscription) []domain.Subscription {
	ds := make([]domain.Subscription, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSubscription(m)
	}
	return ds
}

// ToModelSubscriptionReminder converts a domain reminder to its model.
func ToModelSubscriptionReminder(d domain.SubscriptionReminder) models.SubscriptionReminder {
	return models.SubscriptionReminder{
		ReminderID:     d.ReminderID,
		SubscriptionID: d.SubscriptionID,
		ReminderDate:   d.ReminderDate,
		Sent:           d.Sent,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainSubscriptionReminder converts a model reminder to its domain.
func ToDomainSubscriptionReminder(m models.SubscriptionReminder) domain.SubscriptionReminder {
	return domain.SubscriptionReminder{
		ReminderID:     m.ReminderID,
		SubscriptionID: m.SubscriptionID,
		ReminderDate:   m.ReminderDate,
		Sent:           m.Sent,
		CreatedAt:      m.CreatedAt,
	}
}
