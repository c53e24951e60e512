package repositories

import (
	"context"
	"time"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
)

// ExpenseFilter narrows expense queries. Nil fields are ignored.
type ExpenseFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *string
	AccountID  *string
}

// ExpenseReader defines read operations for expense data.
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a filtered, token-paginated list of a user's
	// expenses ordered by date descending. It returns the expenses and a
	// token for the next page, nil when exhausted.
	ListExpenses(ctx context.Context, userID string, filter ExpenseFilter, limit int, nextToken *string) ([]domain.Expense, *string, error)
}

// ExpenseWriter defines write operations for expense data. Every method
// applies the expense row change and the account balance effect within a
// single database transaction, locking the account row(s) for update.
type ExpenseWriter interface {
	// CreateExpense inserts the expense and decrements its account's balance
	// by the expense amount.
	CreateExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense applies the update and reconciles balances: for an
	// unchanged account the balance moves by (new - old) amount; for a
	// changed account the old account is credited the full old amount and
	// the new account debited the full new amount.
	UpdateExpense(ctx context.Context, updated domain.Expense, old domain.Expense) error

	// DeleteExpense removes the expense and credits the full amount back to
	// its account.
	DeleteExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseRepository combines all expense-related repository interfaces.
type ExpenseRepository interface {
	ExpenseReader
	ExpenseWriter
}
