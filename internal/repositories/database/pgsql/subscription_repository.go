package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrackr/fintrackr_backend/internal/apperrors"
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
	"github.com/fintrackr/fintrackr_backend/internal/models"
	"github.com/fintrackr/fintrackr_backend/internal/utils/mapping"
)

type PgxSubscriptionRepository struct {
	BaseRepository
}

// newPgxSubscriptionRepository creates a new repository for subscription data.
func newPgxSubscriptionRepository(pool *pgxpool.Pool) *PgxSubscriptionRepository {
	return &PgxSubscriptionRepository{BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.SubscriptionRepository = (*PgxSubscriptionRepository)(nil)
	_ portsrepo.ReminderRepository     = (*PgxSubscriptionRepository)(nil)
)

const subscriptionColumns = `subscription_id, user_id, name, amount, frequency, start_date, next_payment_date, is_active, created_at, last_updated_at`

func scanSubscription(row interface{ Scan(dest ...any) error }) (models.Subscription, error) {
	var m models.Subscription
	err := row.Scan(
		&m.SubscriptionID,
		&m.UserID,
		&m.Name,
		&m.Amount,
		&m.Frequency,
		&m.StartDate,
		&m.NextPaymentDate,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

const insertReminderQuery = `
	INSERT INTO subscription_reminders (reminder_id, subscription_id, reminder_date, sent, created_at)
	VALUES ($1, $2, $3, $4, $5);
`

func insertReminder(ctx context.Context, tx pgx.Tx, reminder domain.SubscriptionReminder) error {
	m := mapping.ToModelSubscriptionReminder(reminder)
	_, err := tx.Exec(ctx, insertReminderQuery, m.ReminderID, m.SubscriptionID, m.ReminderDate, m.Sent, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert reminder for subscription %s: %w", m.SubscriptionID, err)
	}
	return nil
}

// SaveSubscription persists a new subscription and its first reminder in one
// transaction.
func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription, reminder domain.SubscriptionReminder) error {
	m := mapping.ToModelSubscription(sub)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO subscriptions (` + subscriptionColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`
		_, err := tx.Exec(ctx, query,
			m.SubscriptionID,
			m.UserID,
			m.Name,
			m.Amount,
			m.Frequency,
			m.StartDate,
			m.NextPaymentDate,
			m.IsActive,
			m.CreatedAt,
			m.LastUpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: subscription with ID %s already exists", apperrors.ErrConflict, m.SubscriptionID)
			}
			return fmt.Errorf("failed to insert subscription %s: %w", m.SubscriptionID, err)
		}

		return insertReminder(ctx, tx, reminder)
	})
}

// FindSubscriptionByID retrieves a subscription by its ID.
func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE subscription_id = $1;`

	m, err := scanSubscription(r.Pool.QueryRow(ctx, query, subscriptionID))
	if err != nil {
		return nil, mapNotFound(err, "subscription "+subscriptionID)
	}
	d := mapping.ToDomainSubscription(m)
	return &d, nil
}

// ListSubscriptions retrieves all of a user's subscriptions ordered by next
// payment date.
func (r *PgxSubscriptionRepository) ListSubscriptions(ctx context.Context, userID string) ([]domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1 ORDER BY next_payment_date;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions for user %s: %w", userID, err)
	}
	defer rows.Close()

	subs := []models.Subscription{}
	for rows.Next() {
		m, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		subs = append(subs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscription rows: %w", err)
	}
	return mapping.ToDomainSubscriptionSlice(subs), nil
}

// ListUnsentReminders retrieves a subscription's pending reminders.
func (r *PgxSubscriptionRepository) ListUnsentReminders(ctx context.Context, subscriptionID string) ([]domain.SubscriptionReminder, error) {
	query := `
		SELECT reminder_id, subscription_id, reminder_date, sent, created_at
		FROM subscription_reminders
		WHERE subscription_id = $1 AND sent = FALSE
		ORDER BY reminder_date;
	`
	rows, err := r.Pool.Query(ctx, query, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders for subscription %s: %w", subscriptionID, err)
	}
	defer rows.Close()

	reminders := []domain.SubscriptionReminder{}
	for rows.Next() {
		var m models.SubscriptionReminder
		if err := rows.Scan(&m.ReminderID, &m.SubscriptionID, &m.ReminderDate, &m.Sent, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder row: %w", err)
		}
		reminders = append(reminders, mapping.ToDomainSubscriptionReminder(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminder rows: %w", err)
	}
	return reminders, nil
}

// UpdateSubscription updates mutable subscription fields.
func (r *PgxSubscriptionRepository) UpdateSubscription(ctx context.Context, sub domain.Subscription) error {
	m := mapping.ToModelSubscription(sub)

	query := `
		UPDATE subscriptions
		SET name = $2, amount = $3, frequency = $4, next_payment_date = $5, is_active = $6, last_updated_at = $7
		WHERE subscription_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.SubscriptionID,
		m.Name,
		m.Amount,
		m.Frequency,
		m.NextPaymentDate,
		m.IsActive,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription %s: %w", m.SubscriptionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: subscription %s", apperrors.ErrNotFound, m.SubscriptionID)
	}
	return nil
}

// DeleteSubscription removes a subscription; its reminders cascade.
func (r *PgxSubscriptionRepository) DeleteSubscription(ctx context.Context, subscriptionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM subscriptions WHERE subscription_id = $1;`, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription %s: %w", subscriptionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: subscription %s", apperrors.ErrNotFound, subscriptionID)
	}
	return nil
}

// AdvanceNextPayment stores the advanced next payment date and inserts the
// new cycle's reminder in one transaction.
func (r *PgxSubscriptionRepository) AdvanceNextPayment(ctx context.Context, sub domain.Subscription, reminder domain.SubscriptionReminder) error {
	m := mapping.ToModelSubscription(sub)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE subscriptions
			SET next_payment_date = $2, last_updated_at = $3
			WHERE subscription_id = $1;
		`
		tag, err := tx.Exec(ctx, query, m.SubscriptionID, m.NextPaymentDate, m.LastUpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to advance subscription %s: %w", m.SubscriptionID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: subscription %s", apperrors.ErrNotFound, m.SubscriptionID)
		}

		return insertReminder(ctx, tx, reminder)
	})
}

// FindDueReminders retrieves unsent reminders due as of the given time,
// joined with subscription and owner fields needed for delivery.
func (r *PgxSubscriptionRepository) FindDueReminders(ctx context.Context, asOf time.Time) ([]domain.DueReminder, error) {
	query := `
		SELECT sr.reminder_id, sr.subscription_id, sr.reminder_date, sr.sent, sr.created_at,
		       s.name, s.next_payment_date, s.is_active, u.email
		FROM subscription_reminders sr
		JOIN subscriptions s ON s.subscription_id = sr.subscription_id
		JOIN users u ON u.user_id = s.user_id
		WHERE sr.sent = FALSE AND sr.reminder_date <= $1
		ORDER BY sr.reminder_date;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	defer rows.Close()

	due := []domain.DueReminder{}
	for rows.Next() {
		var m models.SubscriptionReminder
		var d domain.DueReminder
		err := rows.Scan(
			&m.ReminderID,
			&m.SubscriptionID,
			&m.ReminderDate,
			&m.Sent,
			&m.CreatedAt,
			&d.SubscriptionName,
			&d.NextPaymentDate,
			&d.SubscriptionActive,
			&d.UserEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan due reminder row: %w", err)
		}
		d.Reminder = mapping.ToDomainSubscriptionReminder(m)
		due = append(due, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating due reminder rows: %w", err)
	}
	return due, nil
}

// MarkReminderSent flags a reminder as delivered.
func (r *PgxSubscriptionRepository) MarkReminderSent(ctx context.Context, reminderID string) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE subscription_reminders SET sent = TRUE WHERE reminder_id = $1;`, reminderID)
	if err != nil {
		return fmt.Errorf("failed to mark reminder %s sent: %w", reminderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: reminder %s", apperrors.ErrNotFound, reminderID)
	}
	return nil
}
