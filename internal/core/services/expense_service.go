package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/apperrors"
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

const (
	defaultExpensePageSize = 50
	maxExpensePageSize     = 200
)

type expenseService struct {
	BaseService
	repo         portsrepo.ExpenseRepository
	accountRepo  portsrepo.AccountReader
	categoryRepo portsrepo.CategoryReader
	now          func() time.Time
}

// NewExpenseService creates the expense service. Account and category
// readers are used to validate references before any write.
func NewExpenseService(repo portsrepo.ExpenseRepository, accountRepo portsrepo.AccountReader, categoryRepo portsrepo.CategoryReader) portssvc.ExpenseService {
	return &expenseService{
		repo:         repo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

func (s *expenseService) CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if err := s.checkReferences(ctx, userID, req.AccountID, req.CategoryID); err != nil {
		return nil, err
	}

	now := s.now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		UserID:      userID,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "failed to create expense", "account_id", req.AccountID)
		return nil, err
	}

	s.LogInfo(ctx, "expense created", "expense_id", expense.ExpenseID, "amount", expense.Amount.String())
	resp := dto.ToExpenseResponse(&expense)
	return &resp, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, userID, expenseID string) (*dto.ExpenseResponse, error) {
	expense, err := s.findOwnedExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToExpenseResponse(expense)
	return &resp, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, userID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultExpensePageSize
	}
	if limit > maxExpensePageSize {
		limit = maxExpensePageSize
	}

	filter := portsrepo.ExpenseFilter{
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		CategoryID: params.CategoryID,
		AccountID:  params.AccountID,
	}

	expenses, nextToken, err := s.repo.ListExpenses(ctx, userID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to list expenses")
		return nil, err
	}

	return &dto.ListExpensesResponse{
		Expenses:  dto.ToListExpenseResponse(expenses),
		NextToken: nextToken,
	}, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, userID, expenseID string, req dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := s.findOwnedExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	old := *expense

	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", apperrors.ErrValidation)
		}
		expense.Description = strings.TrimSpace(*req.Description)
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.AccountID != nil {
		expense.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		expense.CategoryID = *req.CategoryID
	}
	if err := s.checkReferences(ctx, userID, expense.AccountID, expense.CategoryID); err != nil {
		return nil, err
	}
	expense.LastUpdatedAt = s.now()

	if err := s.repo.UpdateExpense(ctx, *expense, old); err != nil {
		s.LogError(ctx, err, "failed to update expense", "expense_id", expenseID)
		return nil, err
	}

	resp := dto.ToExpenseResponse(expense)
	return &resp, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	expense, err := s.findOwnedExpense(ctx, userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "failed to delete expense", "expense_id", expenseID)
		return err
	}

	s.LogInfo(ctx, "expense deleted", "expense_id", expenseID, "amount", expense.Amount.String())
	return nil
}

func (s *expenseService) findOwnedExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	expense, err := s.repo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.UserID != userID {
		return nil, fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
	}
	return expense, nil
}

// checkReferences verifies the account and category exist and belong to the
// user. Missing and foreign references both surface as ErrNotFound.
func (s *expenseService) checkReferences(ctx context.Context, userID, accountID, categoryID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.UserID != userID {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.UserID != userID {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
	}
	return nil
}
