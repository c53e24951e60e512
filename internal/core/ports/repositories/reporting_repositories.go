package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
)

// ReportingRepository defines read-only aggregation queries for reports.
// Nothing here is stored; reports are projections over the core entities.
type ReportingRepository interface {
	// ExpenseTotals returns the sum and count of a user's expenses matching
	// the filter.
	ExpenseTotals(ctx context.Context, userID string, filter ExpenseFilter) (decimal.Decimal, int, error)

	// ExpenseTotalsByCategory groups matching expenses by category.
	ExpenseTotalsByCategory(ctx context.Context, userID string, filter ExpenseFilter) ([]domain.CategoryTotal, error)

	// ExpenseTotalsByAccount groups matching expenses by account.
	ExpenseTotalsByAccount(ctx context.Context, userID string, filter ExpenseFilter) ([]domain.AccountTotal, error)

	// ListExpensesInRange retrieves matching expenses ordered by date
	// ascending, unpaginated, for the calendar projection.
	ListExpensesInRange(ctx context.Context, userID string, filter ExpenseFilter) ([]domain.Expense, error)
}
