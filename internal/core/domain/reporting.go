package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal aggregates expenses for one category within a range.
type CategoryTotal struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
}

// AccountTotal aggregates expenses for one account within a range.
type AccountTotal struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
}

// CalendarDay groups a day's expenses with their total.
type CalendarDay struct {
	Date     time.Time       `json:"date"`
	Expenses []Expense       `json:"expenses"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}
