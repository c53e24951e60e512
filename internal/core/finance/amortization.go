// Package finance holds the pure loan arithmetic: the annuity payment
// formula and amortization schedule generation. Everything here is
// deterministic and side-effect free; persistence and status handling live
// in the services.
package finance

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/apperrors"
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	"github.com/fintrackr/fintrackr_backend/internal/utils/dateutil"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// MonthlyRate converts an annual percentage rate to a monthly decimal rate
// (R / 100 / 12).
func MonthlyRate(annualRatePct decimal.Decimal) decimal.Decimal {
	return annualRatePct.Div(hundred).Div(twelve)
}

// MonthlyPayment computes the level payment that retires principal over
// termMonths at the given annual percentage rate.
//
// With monthly rate r and term n:
//
//	r == 0: payment = principal / n
//	r  > 0: payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// The power term is evaluated in float64; monetary arithmetic stays decimal.
func MonthlyPayment(principal, annualRatePct decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if err := validateLoanTerms(principal, annualRatePct, termMonths); err != nil {
		return decimal.Zero, err
	}

	monthlyRate := MonthlyRate(annualRatePct)
	if monthlyRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(termMonths))), nil
	}

	r := monthlyRate.InexactFloat64()
	factor := math.Pow(1+r, float64(termMonths))
	if factor == 1 {
		// Unreachable for r > 0 and term >= 1; guards the division below.
		return decimal.Zero, fmt.Errorf("%w: degenerate annuity factor", apperrors.ErrComputation)
	}
	factorDec := decimal.NewFromFloat(factor)

	// P * r * f / (f - 1)
	return principal.Mul(monthlyRate).Mul(factorDec).Div(factorDec.Sub(decimal.NewFromInt(1))), nil
}

// GenerateSchedule produces the full amortization schedule for a loan:
// one entry per month, 1..termMonths. Each month accrues interest on the
// running balance, the rest of the level payment retires principal, and the
// recorded balance is floored at zero so float drift on the final
// installment never leaves a negative residue. Payment dates advance by
// calendar months from startDate with month-end clamping.
//
// The schedule is a projection of the plan; the LoanPayment ledger is
// authoritative for what was actually paid.
func GenerateSchedule(loanID string, principal, annualRatePct decimal.Decimal, termMonths int, startDate time.Time) ([]domain.AmortizationEntry, error) {
	payment, err := MonthlyPayment(principal, annualRatePct, termMonths)
	if err != nil {
		return nil, err
	}

	monthlyRate := MonthlyRate(annualRatePct)
	balance := principal
	entries := make([]domain.AmortizationEntry, 0, termMonths)

	for month := 1; month <= termMonths; month++ {
		interest := balance.Mul(monthlyRate)
		principalPart := payment.Sub(interest)
		balance = balance.Sub(principalPart)

		recorded := balance
		if recorded.IsNegative() {
			recorded = decimal.Zero
		}

		entries = append(entries, domain.AmortizationEntry{
			LoanID:      loanID,
			Month:       month,
			PaymentDate: dateutil.AddMonths(startDate, month),
			Payment:     payment,
			Principal:   principalPart,
			Interest:    interest,
			Balance:     recorded,
		})
	}

	return entries, nil
}

func validateLoanTerms(principal, annualRatePct decimal.Decimal, termMonths int) error {
	if principal.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: principal must be positive", apperrors.ErrValidation)
	}
	if annualRatePct.IsNegative() {
		return fmt.Errorf("%w: interest rate must not be negative", apperrors.ErrValidation)
	}
	if termMonths < 1 {
		return fmt.Errorf("%w: term must be at least one month", apperrors.ErrValidation)
	}
	return nil
}
