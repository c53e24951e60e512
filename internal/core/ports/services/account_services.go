package services

import (
	"context"

	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

// AccountService defines the business operations for accounts.
type AccountService interface {
	// CreateAccount creates a new account for the user.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*dto.AccountResponse, error)

	// GetAccountByID retrieves one of the user's accounts.
	GetAccountByID(ctx context.Context, userID, accountID string) (*dto.AccountResponse, error)

	// ListAccounts retrieves all of the user's accounts.
	ListAccounts(ctx context.Context, userID string) ([]dto.AccountResponse, error)

	// UpdateAccount applies the provided fields to an account.
	UpdateAccount(ctx context.Context, userID, accountID string, req dto.UpdateAccountRequest) (*dto.AccountResponse, error)

	// DeleteAccount removes an account. Refused with apperrors.ErrConflict
	// while expenses or loan payments reference it.
	DeleteAccount(ctx context.Context, userID, accountID string) error
}
