package services

import (
	"context"

	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

// LoanService defines the business operations for loans, their amortization
// schedules and the payment ledger.
type LoanService interface {
	// CreateLoan creates a loan, computes its monthly payment and persists
	// the generated amortization schedule alongside it.
	CreateLoan(ctx context.Context, userID string, req dto.CreateLoanRequest) (*dto.LoanResponse, error)

	// GetLoanByID retrieves one of the user's loans.
	GetLoanByID(ctx context.Context, userID, loanID string) (*dto.LoanResponse, error)

	// ListLoans retrieves all of the user's loans.
	ListLoans(ctx context.Context, userID string) ([]dto.LoanResponse, error)

	// GetSchedule retrieves the loan's amortization schedule.
	GetSchedule(ctx context.Context, userID, loanID string) ([]dto.AmortizationEntryResponse, error)

	// UpdateLoan applies the provided mutable fields. Financial terms are
	// immutable after creation.
	UpdateLoan(ctx context.Context, userID, loanID string, req dto.UpdateLoanRequest) (*dto.LoanResponse, error)

	// DeleteLoan removes a loan, its schedule and its payment ledger.
	DeleteLoan(ctx context.Context, userID, loanID string) error

	// MakePayment records a payment against an active loan: the amount is
	// split into interest and principal from the current remaining balance,
	// the paying account is debited, and the loan flips to PAID_OFF when the
	// remaining principal reaches zero.
	MakePayment(ctx context.Context, userID, loanID string, req dto.MakeLoanPaymentRequest) (*dto.LoanPaymentResponse, error)

	// ListPayments retrieves the loan's payment ledger.
	ListPayments(ctx context.Context, userID, loanID string) ([]dto.LoanPaymentResponse, error)
}
