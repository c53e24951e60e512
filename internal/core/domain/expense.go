package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spend against one account, labeled with one category.
// Creating an expense decrements the account balance by Amount; deleting it
// reverses the decrement.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	UserID      string          `json:"userID"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	AccountID   string          `json:"accountID"`
	CategoryID  string          `json:"categoryID"`
	AuditFields
}
