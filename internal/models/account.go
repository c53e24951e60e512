package models

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies where the money lives.
type AccountType string

const (
	Bank          AccountType = "BANK"
	MobileFinance AccountType = "MOBILE_FINANCE"
	CreditCard    AccountType = "CREDIT_CARD"
)

// Account represents a row in the accounts table. Balance is the cached
// running total maintained transactionally with expense and loan-payment
// writes.
type Account struct {
	AccountID     string          `db:"account_id"`
	UserID        string          `db:"user_id"`
	Name          string          `db:"name"`
	AccountType   AccountType     `db:"account_type"`
	Balance       decimal.Decimal `db:"balance"`
	CurrencyCode  string          `db:"currency_code"`
	BankName      string          `db:"bank_name"`       // nullable
	AccountNumber string          `db:"account_number"`  // nullable
	AuditFields
}
