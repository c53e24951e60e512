package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrackr/fintrackr_backend/internal/apperrors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMonthlyRate(t *testing.T) {
	assert.True(t, MonthlyRate(d("12")).Equal(d("0.01")))
	assert.True(t, MonthlyRate(d("0")).IsZero())
	assert.True(t, MonthlyRate(d("6")).Equal(d("0.005")))
}

func TestMonthlyPayment(t *testing.T) {
	// 12000 at 12% APR over 12 months: the classic annuity example
	payment, err := MonthlyPayment(d("12000"), d("12"), 12)
	require.NoError(t, err)
	assert.InDelta(t, 1066.19, payment.InexactFloat64(), 0.01)

	// Zero rate degenerates to straight division
	payment, err = MonthlyPayment(d("1200"), d("0"), 12)
	require.NoError(t, err)
	assert.True(t, payment.Equal(d("100")))

	// Single installment at zero rate repays the whole principal
	payment, err = MonthlyPayment(d("500"), d("0"), 1)
	require.NoError(t, err)
	assert.True(t, payment.Equal(d("500")))
}

func TestMonthlyPaymentValidation(t *testing.T) {
	_, err := MonthlyPayment(d("0"), d("5"), 12)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = MonthlyPayment(d("-100"), d("5"), 12)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = MonthlyPayment(d("1000"), d("-1"), 12)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = MonthlyPayment(d("1000"), d("5"), 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGenerateSchedule(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	entries, err := GenerateSchedule("loan-1", d("12000"), d("12"), 12, start)
	require.NoError(t, err)
	require.Len(t, entries, 12)

	// First month: interest on the full principal at 1% monthly
	first := entries[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), first.PaymentDate)
	assert.InDelta(t, 120.00, first.Interest.InexactFloat64(), 0.01)
	assert.InDelta(t, 946.19, first.Principal.InexactFloat64(), 0.01)
	assert.InDelta(t, 11053.81, first.Balance.InexactFloat64(), 0.01)

	// Interest declines month over month as the balance falls
	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i].Interest.LessThan(entries[i-1].Interest),
			"interest should decline in month %d", entries[i].Month)
	}

	// Final balance is floored at zero and principal parts sum to the principal
	last := entries[len(entries)-1]
	assert.Equal(t, 12, last.Month)
	assert.True(t, last.Balance.IsZero() || last.Balance.LessThan(d("0.01")))

	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Principal)
	}
	assert.InDelta(t, 12000, sum.InexactFloat64(), 0.01)
}

func TestGenerateScheduleZeroRate(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	entries, err := GenerateSchedule("loan-2", d("1200"), d("0"), 6, start)
	require.NoError(t, err)
	require.Len(t, entries, 6)

	for _, e := range entries {
		assert.True(t, e.Interest.IsZero())
		assert.True(t, e.Payment.Equal(d("200")))
		assert.True(t, e.Principal.Equal(d("200")))
	}
	assert.True(t, entries[5].Balance.IsZero())
}

func TestGenerateScheduleMonthEndClamping(t *testing.T) {
	// Payments anchored on Jan 31 clamp to short months instead of drifting
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	entries, err := GenerateSchedule("loan-3", d("3000"), d("6"), 3, start)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), entries[0].PaymentDate)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), entries[1].PaymentDate)
	assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), entries[2].PaymentDate)
}

func TestGenerateScheduleInvalidTerms(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := GenerateSchedule("loan-4", d("-1"), d("5"), 12, start)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
