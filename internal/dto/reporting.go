package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
)

// ReportParams defines the optional range and filters for reports.
type ReportParams struct {
	StartDate  *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"endDate" time_format:"2006-01-02"`
	CategoryID *string    `form:"categoryID"`
	AccountID  *string    `form:"accountID"`
}

// AccountBalanceSummary is one account's contribution to the summary.
type AccountBalanceSummary struct {
	AccountID string             `json:"accountID"`
	Name      string             `json:"name"`
	Type      domain.AccountType `json:"type"`
	Balance   decimal.Decimal    `json:"balance"`
}

// ActiveLoanSummary is one active loan's contribution to the summary.
type ActiveLoanSummary struct {
	LoanID         string          `json:"loanID"`
	Name           string          `json:"name"`
	Principal      decimal.Decimal `json:"principal"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
}

// UpcomingSubscriptionSummary is a subscription charging within a week.
type UpcomingSubscriptionSummary struct {
	SubscriptionID  string           `json:"subscriptionID"`
	Name            string           `json:"name"`
	Amount          decimal.Decimal  `json:"amount"`
	Frequency       domain.Frequency `json:"frequency"`
	NextPaymentDate time.Time        `json:"nextPaymentDate"`
}

// SummaryResponse is the aggregate overview of a user's finances. All
// figures are computed on read; nothing here is stored.
type SummaryResponse struct {
	TotalExpenses         decimal.Decimal               `json:"totalExpenses"`
	ExpenseCount          int                           `json:"expenseCount"`
	ExpensesByCategory    []domain.CategoryTotal        `json:"expensesByCategory"`
	ExpensesByAccount     []domain.AccountTotal         `json:"expensesByAccount"`
	Accounts              []AccountBalanceSummary       `json:"accounts"`
	TotalBalance          decimal.Decimal               `json:"totalBalance"`
	ActiveLoans           []ActiveLoanSummary           `json:"activeLoans"`
	TotalMonthlyLoanCost  decimal.Decimal               `json:"totalMonthlyLoanCost"`
	UpcomingSubscriptions []UpcomingSubscriptionSummary `json:"upcomingSubscriptions"`
}

// CalendarDayResponse is one day of the calendar report.
type CalendarDayResponse struct {
	Date     string            `json:"date"` // YYYY-MM-DD
	Expenses []ExpenseResponse `json:"expenses"`
	Total    decimal.Decimal   `json:"total"`
	Count    int               `json:"count"`
}
