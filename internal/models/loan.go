package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus tracks the lifecycle of a loan.
type LoanStatus string

const (
	LoanActive    LoanStatus = "ACTIVE"
	LoanPaidOff   LoanStatus = "PAID_OFF"
	LoanDefaulted LoanStatus = "DEFAULTED"
)

// Loan represents a row in the loans table.
type Loan struct {
	LoanID         string          `db:"loan_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	Principal      decimal.Decimal `db:"principal"`
	InterestRate   decimal.Decimal `db:"interest_rate"`
	TermMonths     int             `db:"term_months"`
	StartDate      time.Time       `db:"start_date"`
	MonthlyPayment decimal.Decimal `db:"monthly_payment"`
	Status         LoanStatus      `db:"status"`
	AuditFields
}

// AmortizationEntry represents a row in the amortization_schedule table.
// Rows are append-only; the schedule is regenerated only by loan re-creation.
type AmortizationEntry struct {
	EntryID     string          `db:"entry_id"`
	LoanID      string          `db:"loan_id"`
	Month       int             `db:"month"`
	PaymentDate time.Time       `db:"payment_date"`
	Payment     decimal.Decimal `db:"payment"`
	Principal   decimal.Decimal `db:"principal"`
	Interest    decimal.Decimal `db:"interest"`
	Balance     decimal.Decimal `db:"balance"`
}

// LoanPayment represents a row in the loan_payments table. Append-only.
type LoanPayment struct {
	PaymentID string          `db:"payment_id"`
	LoanID    string          `db:"loan_id"`
	AccountID string          `db:"account_id"`
	Amount    decimal.Decimal `db:"amount"`
	Principal decimal.Decimal `db:"principal"`
	Interest  decimal.Decimal `db:"interest"`
	PaidAt    time.Time       `db:"paid_at"`
}
