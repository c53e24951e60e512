package services

import (
	"context"
	"time"

	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
)

type reminderService struct {
	BaseService
	repo   portsrepo.ReminderRepository
	sender portssvc.NotificationSender
	now    func() time.Time
}

// NewReminderService creates the reminder sweep service.
func NewReminderService(repo portsrepo.ReminderRepository, sender portssvc.NotificationSender) portssvc.ReminderService {
	return &reminderService{repo: repo, sender: sender, now: time.Now}
}

// SweepDueReminders delivers every due, unsent reminder. A reminder is only
// marked sent after its notification goes out, so a crash or send failure
// leaves it due and it is retried on the next run. Delivery is therefore
// at-least-once.
func (s *reminderService) SweepDueReminders(ctx context.Context) (int, error) {
	asOf := s.now()
	due, err := s.repo.FindDueReminders(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "failed to load due reminders")
		return 0, err
	}

	sent := 0
	for _, d := range due {
		if !d.SubscriptionActive {
			// Stale reminder from before deactivation; skip without
			// marking so reactivation picks it up if still future-dated.
			continue
		}

		if err := s.sender.SendReminder(ctx, d.UserEmail, d); err != nil {
			s.LogError(ctx, err, "failed to deliver reminder",
				"reminder_id", d.Reminder.ReminderID,
				"subscription_id", d.Reminder.SubscriptionID,
			)
			continue
		}

		if err := s.repo.MarkReminderSent(ctx, d.Reminder.ReminderID); err != nil {
			s.LogError(ctx, err, "failed to mark reminder sent", "reminder_id", d.Reminder.ReminderID)
			continue
		}
		sent++
	}

	s.LogInfo(ctx, "reminder sweep finished", "due", len(due), "sent", sent)
	return sent, nil
}
