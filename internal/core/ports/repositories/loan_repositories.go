package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
)

// LoanReader defines read operations for loan data.
type LoanReader interface {
	// FindLoanByID retrieves a specific loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoans retrieves all loans owned by a user, newest first.
	ListLoans(ctx context.Context, userID string) ([]domain.Loan, error)

	// FindScheduleByLoanID retrieves the amortization schedule ordered by month.
	FindScheduleByLoanID(ctx context.Context, loanID string) ([]domain.AmortizationEntry, error)

	// ListPaymentsByLoanID retrieves the payment ledger ordered by paid_at.
	ListPaymentsByLoanID(ctx context.Context, loanID string) ([]domain.LoanPayment, error)
}

// LoanPaymentFunc derives a ledger entry from loan state read under the loan
// row lock. principalPaid is the sum of principal components recorded so far,
// the authoritative aggregate for the remaining balance. It returns the
// payment to append and whether the loan is paid off by it.
type LoanPaymentFunc func(loan domain.Loan, principalPaid decimal.Decimal) (domain.LoanPayment, bool, error)

// LoanWriter defines write operations for loan data.
type LoanWriter interface {
	// SaveLoanWithSchedule persists the loan and its full amortization
	// schedule in one transaction. The schedule is immutable afterwards.
	SaveLoanWithSchedule(ctx context.Context, loan domain.Loan, schedule []domain.AmortizationEntry) error

	// UpdateLoan updates mutable loan fields (name, status).
	UpdateLoan(ctx context.Context, loan domain.Loan) error

	// DeleteLoan removes a loan along with its schedule and payments.
	DeleteLoan(ctx context.Context, loanID string) error

	// SaveLoanPayment records a payment in one transaction: the loan row is
	// locked, the principal aggregate is read, compute derives the ledger
	// entry from that state, the paying account's balance is decremented by
	// the payment amount, and the entry is appended. When compute reports
	// payoff the loan status flips to PAID_OFF in the same transaction. An
	// error from compute aborts without writing.
	SaveLoanPayment(ctx context.Context, loanID string, compute LoanPaymentFunc) (*domain.LoanPayment, error)
}

// LoanRepository combines all loan-related repository interfaces.
type LoanRepository interface {
	LoanReader
	LoanWriter
}
