package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name          string             `json:"name" binding:"required"`
	AccountType   domain.AccountType `json:"accountType" binding:"required,oneof=BANK MOBILE_FINANCE CREDIT_CARD"`
	Balance       decimal.Decimal    `json:"balance"`      // initial balance, defaults to zero
	CurrencyCode  string             `json:"currencyCode" binding:"omitempty,currencycode"` // defaults to USD
	BankName      string             `json:"bankName"`
	AccountNumber string             `json:"accountNumber"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name          *string             `json:"name"`
	AccountType   *domain.AccountType `json:"accountType"`
	Balance       *decimal.Decimal    `json:"balance"`
	CurrencyCode  *string             `json:"currencyCode" binding:"omitempty,currencycode"`
	BankName      *string             `json:"bankName"`
	AccountNumber *string             `json:"accountNumber"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	Balance       decimal.Decimal    `json:"balance"`
	CurrencyCode  string             `json:"currencyCode"`
	BankName      string             `json:"bankName,omitempty"`
	AccountNumber string             `json:"accountNumber,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance,
		CurrencyCode:  acc.CurrencyCode,
		BankName:      acc.BankName,
		AccountNumber: acc.AccountNumber,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
