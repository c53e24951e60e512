// Package notification provides NotificationSender implementations for the
// reminder sweep: SMTP email delivery and a log-only fallback for
// environments without a mail relay.
package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
)

// EmailSender delivers payment reminders over SMTP.
type EmailSender struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewEmailSender creates an SMTP-backed reminder sender.
func NewEmailSender(host, port, user, pass, from string) *EmailSender {
	return &EmailSender{host: host, port: port, user: user, pass: pass, from: from}
}

var _ portssvc.NotificationSender = (*EmailSender)(nil)

// SendReminder sends the upcoming-charge email to the recipient.
func (s *EmailSender) SendReminder(_ context.Context, recipient string, due domain.DueReminder) error {
	e := email.NewEmail()
	e.From = s.from
	e.To = []string{recipient}
	e.Subject = fmt.Sprintf("Upcoming payment: %s", due.SubscriptionName)
	e.Text = fmt.Appendf(nil,
		"Your subscription %q charges on %s.\n\nThis is an automated reminder from fintrackr.\n",
		due.SubscriptionName,
		due.NextPaymentDate.Format(time.DateOnly),
	)

	addr := s.host + ":" + s.port
	if err := e.Send(addr, smtp.PlainAuth("", s.user, s.pass, s.host)); err != nil {
		return fmt.Errorf("failed to send reminder email to %s: %w", recipient, err)
	}
	return nil
}
