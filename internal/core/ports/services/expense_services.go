package services

import (
	"context"

	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

// ExpenseService defines the business operations for expenses. Every write
// keeps the owning account's balance consistent with the expense rows.
type ExpenseService interface {
	// CreateExpense records an expense and debits its account.
	CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)

	// GetExpenseByID retrieves one of the user's expenses.
	GetExpenseByID(ctx context.Context, userID, expenseID string) (*dto.ExpenseResponse, error)

	// ListExpenses retrieves a filtered, paginated page of expenses.
	ListExpenses(ctx context.Context, userID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)

	// UpdateExpense applies the provided fields and reconciles the affected
	// account balance(s).
	UpdateExpense(ctx context.Context, userID, expenseID string, req dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error)

	// DeleteExpense removes an expense and credits its amount back.
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}
