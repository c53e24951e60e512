package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/apperrors"
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
	"github.com/fintrackr/fintrackr_backend/internal/models"
	"github.com/fintrackr/fintrackr_backend/internal/utils/mapping"
)

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan data.
func newPgxLoanRepository(pool *pgxpool.Pool) *PgxLoanRepository {
	return &PgxLoanRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LoanRepository = (*PgxLoanRepository)(nil)

const loanColumns = `loan_id, user_id, name, principal, interest_rate, term_months, start_date, monthly_payment, status, created_at, last_updated_at`

func scanLoan(row interface{ Scan(dest ...any) error }) (models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.UserID,
		&m.Name,
		&m.Principal,
		&m.InterestRate,
		&m.TermMonths,
		&m.StartDate,
		&m.MonthlyPayment,
		&m.Status,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveLoanWithSchedule persists the loan and its amortization schedule in
// one transaction.
func (r *PgxLoanRepository) SaveLoanWithSchedule(ctx context.Context, loan domain.Loan, schedule []domain.AmortizationEntry) error {
	m := mapping.ToModelLoan(loan)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO loans (` + loanColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`
		_, err := tx.Exec(ctx, query,
			m.LoanID,
			m.UserID,
			m.Name,
			m.Principal,
			m.InterestRate,
			m.TermMonths,
			m.StartDate,
			m.MonthlyPayment,
			m.Status,
			m.CreatedAt,
			m.LastUpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: loan with ID %s already exists", apperrors.ErrConflict, m.LoanID)
			}
			return fmt.Errorf("failed to insert loan %s: %w", m.LoanID, err)
		}

		entryQuery := `
			INSERT INTO amortization_schedule (entry_id, loan_id, month, payment_date, payment, principal, interest, balance)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		for _, entry := range schedule {
			me := mapping.ToModelAmortizationEntry(entry)
			_, err := tx.Exec(ctx, entryQuery,
				me.EntryID,
				me.LoanID,
				me.Month,
				me.PaymentDate,
				me.Payment,
				me.Principal,
				me.Interest,
				me.Balance,
			)
			if err != nil {
				return fmt.Errorf("failed to insert schedule entry %d for loan %s: %w", me.Month, m.LoanID, err)
			}
		}
		return nil
	})
}

// FindLoanByID retrieves a loan by its ID.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`

	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		return nil, mapNotFound(err, "loan "+loanID)
	}
	d := mapping.ToDomainLoan(m)
	return &d, nil
}

// ListLoans retrieves all of a user's loans, newest first.
func (r *PgxLoanRepository) ListLoans(ctx context.Context, userID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans for user %s: %w", userID, err)
	}
	defer rows.Close()

	loans := []models.Loan{}
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}
	return mapping.ToDomainLoanSlice(loans), nil
}

// FindScheduleByLoanID retrieves the amortization schedule ordered by month.
func (r *PgxLoanRepository) FindScheduleByLoanID(ctx context.Context, loanID string) ([]domain.AmortizationEntry, error) {
	query := `
		SELECT entry_id, loan_id, month, payment_date, payment, principal, interest, balance
		FROM amortization_schedule
		WHERE loan_id = $1
		ORDER BY month;
	`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule for loan %s: %w", loanID, err)
	}
	defer rows.Close()

	entries := []domain.AmortizationEntry{}
	for rows.Next() {
		var m models.AmortizationEntry
		err := rows.Scan(
			&m.EntryID,
			&m.LoanID,
			&m.Month,
			&m.PaymentDate,
			&m.Payment,
			&m.Principal,
			&m.Interest,
			&m.Balance,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule row: %w", err)
		}
		entries = append(entries, mapping.ToDomainAmortizationEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule rows: %w", err)
	}
	return entries, nil
}

// ListPaymentsByLoanID retrieves the payment ledger ordered by paid_at.
func (r *PgxLoanRepository) ListPaymentsByLoanID(ctx context.Context, loanID string) ([]domain.LoanPayment, error) {
	query := `
		SELECT payment_id, loan_id, account_id, amount, principal, interest, paid_at
		FROM loan_payments
		WHERE loan_id = $1
		ORDER BY paid_at;
	`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for loan %s: %w", loanID, err)
	}
	defer rows.Close()

	payments := []domain.LoanPayment{}
	for rows.Next() {
		var m models.LoanPayment
		err := rows.Scan(
			&m.PaymentID,
			&m.LoanID,
			&m.AccountID,
			&m.Amount,
			&m.Principal,
			&m.Interest,
			&m.PaidAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainLoanPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

// UpdateLoan updates mutable loan fields.
func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)

	query := `
		UPDATE loans
		SET name = $2, status = $3, last_updated_at = $4
		WHERE loan_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.LoanID, m.Name, m.Status, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update loan %s: %w", m.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, m.LoanID)
	}
	return nil
}

// DeleteLoan removes a loan; the schedule and ledger cascade.
func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM loans WHERE loan_id = $1;`, loanID)
	if err != nil {
		return fmt.Errorf("failed to delete loan %s: %w", loanID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
	}
	return nil
}

// SaveLoanPayment locks the loan row, reads the principal aggregate, derives
// the ledger entry via compute, debits the paying account and appends the
// entry, all in one transaction. Concurrent payments on the same loan
// serialize on the row lock, so compute always sees the current balance.
func (r *PgxLoanRepository) SaveLoanPayment(ctx context.Context, loanID string, compute portsrepo.LoanPaymentFunc) (*domain.LoanPayment, error) {
	var payment domain.LoanPayment

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		lm, err := scanLoan(tx.QueryRow(ctx, `SELECT `+loanColumns+` FROM loans WHERE loan_id = $1 FOR UPDATE;`, loanID))
		if err != nil {
			return mapNotFound(err, "loan "+loanID)
		}

		var principalPaid decimal.Decimal
		err = tx.QueryRow(ctx, `SELECT COALESCE(SUM(principal), 0) FROM loan_payments WHERE loan_id = $1;`, loanID).Scan(&principalPaid)
		if err != nil {
			return fmt.Errorf("failed to sum principal paid for loan %s: %w", loanID, err)
		}

		p, markPaidOff, err := compute(mapping.ToDomainLoan(lm), principalPaid)
		if err != nil {
			return err
		}
		m := mapping.ToModelLoanPayment(p)

		if err := adjustBalance(ctx, tx, m.AccountID, m.Amount.Neg()); err != nil {
			return err
		}

		query := `
			INSERT INTO loan_payments (payment_id, loan_id, account_id, amount, principal, interest, paid_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`
		_, err = tx.Exec(ctx, query,
			m.PaymentID,
			m.LoanID,
			m.AccountID,
			m.Amount,
			m.Principal,
			m.Interest,
			m.PaidAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment for loan %s: %w", m.LoanID, err)
		}

		if markPaidOff {
			_, err := tx.Exec(ctx,
				`UPDATE loans SET status = $2, last_updated_at = NOW() WHERE loan_id = $1;`,
				m.LoanID, models.LoanPaidOff,
			)
			if err != nil {
				return fmt.Errorf("failed to mark loan %s paid off: %w", m.LoanID, err)
			}
		}

		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
