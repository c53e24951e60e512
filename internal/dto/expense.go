package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to create a new expense.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Date        *time.Time      `json:"date"` // defaults to now
	AccountID   string          `json:"accountID" binding:"required"`
	CategoryID  string          `json:"categoryID" binding:"required"`
}

// UpdateExpenseRequest defines the data allowed for updating an expense.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Date        *time.Time       `json:"date"`
	AccountID   *string          `json:"accountID"`
	CategoryID  *string          `json:"categoryID"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	StartDate  *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"endDate" time_format:"2006-01-02"`
	CategoryID *string    `form:"categoryID"`
	AccountID  *string    `form:"accountID"`
	Limit      int        `form:"limit,default=50"`
	NextToken  *string    `form:"nextToken"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID     string          `json:"expenseID"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	AccountID     string          `json:"accountID"`
	CategoryID    string          `json:"categoryID"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ListExpensesResponse wraps a page of expenses with its pagination token.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToExpenseResponse converts a domain.Expense to an ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		Amount:        e.Amount,
		Description:   e.Description,
		Date:          e.Date,
		AccountID:     e.AccountID,
		CategoryID:    e.CategoryID,
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

// ToListExpenseResponse converts a slice of domain.Expense to response DTOs.
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}
