package repositories

import (
	"context"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts owned by a user, newest first.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)

	// CountAccountDependents returns the number of expenses and loan payments
	// referencing the account. Deletion is refused while this is non-zero.
	CountAccountDependents(ctx context.Context, accountID string) (int64, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account with no dependent records.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepository combines all account-related repository interfaces.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
