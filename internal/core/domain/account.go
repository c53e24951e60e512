package domain

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

// ValidAccountType reports whether t is one of the known account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Bank, MobileFinance, CreditCard:
		return true
	}
	return false
}

// Account represents a user's money account. Balance is a cached running
// total: the initial balance minus the net effect of every committed expense
// and loan payment referencing the account. It is only ever mutated inside
// the same transaction as the triggering ledger write.
type Account struct {
	AccountID     string          `json:"accountID"`
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	CurrencyCode  string          `json:"currencyCode"`
	BankName      string          `json:"bankName,omitempty"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	AuditFields
}
