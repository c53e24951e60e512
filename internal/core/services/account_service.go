package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackr/fintrackr_backend/internal/apperrors"
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

const defaultCurrencyCode = "USD"

type accountService struct {
	BaseService
	repo portsrepo.AccountRepository
	now  func() time.Time
}

// NewAccountService creates the account service backed by the given repository.
func NewAccountService(repo portsrepo.AccountRepository) portssvc.AccountService {
	return &accountService{repo: repo, now: time.Now}
}

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if !domain.ValidAccountType(req.AccountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = defaultCurrencyCode
	}

	now := s.now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		UserID:        userID,
		Name:          strings.TrimSpace(req.Name),
		AccountType:   req.AccountType,
		Balance:       req.Balance,
		CurrencyCode:  currency,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.repo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "failed to save account", "account_id", account.AccountID)
		return nil, err
	}

	s.LogInfo(ctx, "account created", "account_id", account.AccountID, "type", string(account.AccountType))
	resp := dto.ToAccountResponse(&account)
	return &resp, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID, accountID string) (*dto.AccountResponse, error) {
	account, err := s.findOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToAccountResponse(account)
	return &resp, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]dto.AccountResponse, error) {
	accounts, err := s.repo.ListAccounts(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to list accounts")
		return nil, err
	}
	return dto.ToListAccountResponse(accounts), nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID, accountID string, req dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	account, err := s.findOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.AccountType != nil {
		if !domain.ValidAccountType(*req.AccountType) {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		account.AccountType = *req.AccountType
	}
	if req.Balance != nil {
		account.Balance = *req.Balance
	}
	if req.CurrencyCode != nil && *req.CurrencyCode != "" {
		account.CurrencyCode = *req.CurrencyCode
	}
	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	account.LastUpdatedAt = s.now()

	if err := s.repo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "failed to update account", "account_id", accountID)
		return nil, err
	}

	resp := dto.ToAccountResponse(account)
	return &resp, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID, accountID string) error {
	if _, err := s.findOwnedAccount(ctx, userID, accountID); err != nil {
		return err
	}

	dependents, err := s.repo.CountAccountDependents(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "failed to count account dependents", "account_id", accountID)
		return err
	}
	if dependents > 0 {
		return fmt.Errorf("%w: account has %d dependent records", apperrors.ErrConflict, dependents)
	}

	if err := s.repo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "failed to delete account", "account_id", accountID)
		return err
	}

	s.LogInfo(ctx, "account deleted", "account_id", accountID)
	return nil
}

// findOwnedAccount loads the account and hides other users' accounts behind
// ErrNotFound.
func (s *accountService) findOwnedAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return account, nil
}
