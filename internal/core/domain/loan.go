package domain

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

// ValidLoanStatus reports whether s is one of the known loan statuses.
func ValidLoanStatus(s LoanStatus) bool {
	switch s {
	case LoanActive, LoanPaidOff, LoanDefaulted:
		return true
	}
	return false
}

// Loan is a fixed-rate, fixed-term, equal-installment loan. MonthlyPayment is
// derived once at creation and immutable thereafter.
type Loan struct {
	LoanID         string          `json:"loanID"`
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	Principal      decimal.Decimal `json:"principal"`
	InterestRate   decimal.Decimal `json:"interestRate"` // annual, percent
	TermMonths     int             `json:"termMonths"`
	StartDate      time.Time       `json:"startDate"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	Status         LoanStatus      `json:"status"`
	AuditFields
}

// AmortizationEntry is one month of the projected repayment plan. The
// schedule is immutable once generated; actual payments are tracked in the
// LoanPayment ledger and may diverge from it.
type AmortizationEntry struct {
	EntryID     string          `json:"entryID"`
	LoanID      string          `json:"loanID"`
	Month       int             `json:"month"` // 1..TermMonths
	PaymentDate time.Time       `json:"paymentDate"`
	Payment     decimal.Decimal `json:"payment"`
	Principal   decimal.Decimal `json:"principal"`
	Interest    decimal.Decimal `json:"interest"`
	Balance     decimal.Decimal `json:"balance"` // remaining, floored at zero
}

// LoanPayment is an append-only ledger entry recording an actual payment
// against a loan. Principal may be negative when the payment does not cover
// the accrued interest (negative amortization).
type LoanPayment struct {
	PaymentID string          `json:"paymentID"`
	LoanID    string          `json:"loanID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	PaidAt    time.Time       `json:"paidAt"`
}
