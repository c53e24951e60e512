package services

import "context"

// ReminderService runs the periodic reminder sweep.
type ReminderService interface {
	// SweepDueReminders finds unsent reminders that have come due, delivers
	// a notification for each and marks them sent. A delivery failure for
	// one reminder does not stop the sweep; such reminders stay unsent and
	// are retried on the next run. Returns the number delivered.
	SweepDueReminders(ctx context.Context) (int, error)
}
