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
	"github.com/fintrackr/fintrackr_backend/internal/core/finance"
	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

type loanService struct {
	BaseService
	repo        portsrepo.LoanRepository
	accountRepo portsrepo.AccountReader
	now         func() time.Time
}

// NewLoanService creates the loan service. The account reader validates the
// paying account on payments.
func NewLoanService(repo portsrepo.LoanRepository, accountRepo portsrepo.AccountReader) portssvc.LoanService {
	return &loanService{repo: repo, accountRepo: accountRepo, now: time.Now}
}

func (s *loanService) CreateLoan(ctx context.Context, userID string, req dto.CreateLoanRequest) (*dto.LoanResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: loan name is required", apperrors.ErrValidation)
	}

	now := s.now()
	startDate := now
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	payment, err := finance.MonthlyPayment(req.Principal, req.InterestRate, req.TermMonths)
	if err != nil {
		return nil, err
	}

	loan := domain.Loan{
		LoanID:         uuid.NewString(),
		UserID:         userID,
		Name:           strings.TrimSpace(req.Name),
		Principal:      req.Principal,
		InterestRate:   req.InterestRate,
		TermMonths:     req.TermMonths,
		StartDate:      startDate,
		MonthlyPayment: payment,
		Status:         domain.LoanActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	schedule, err := finance.GenerateSchedule(loan.LoanID, req.Principal, req.InterestRate, req.TermMonths, startDate)
	if err != nil {
		return nil, err
	}
	for i := range schedule {
		schedule[i].EntryID = uuid.NewString()
	}

	if err := s.repo.SaveLoanWithSchedule(ctx, loan, schedule); err != nil {
		s.LogError(ctx, err, "failed to save loan", "loan_id", loan.LoanID)
		return nil, err
	}

	s.LogInfo(ctx, "loan created", "loan_id", loan.LoanID, "term_months", loan.TermMonths, "monthly_payment", payment.String())
	resp := dto.ToLoanResponse(&loan)
	return &resp, nil
}

func (s *loanService) GetLoanByID(ctx context.Context, userID, loanID string) (*dto.LoanResponse, error) {
	loan, err := s.findOwnedLoan(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToLoanResponse(loan)
	return &resp, nil
}

func (s *loanService) ListLoans(ctx context.Context, userID string) ([]dto.LoanResponse, error) {
	loans, err := s.repo.ListLoans(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to list loans")
		return nil, err
	}
	return dto.ToListLoanResponse(loans), nil
}

func (s *loanService) GetSchedule(ctx context.Context, userID, loanID string) ([]dto.AmortizationEntryResponse, error) {
	if _, err := s.findOwnedLoan(ctx, userID, loanID); err != nil {
		return nil, err
	}

	schedule, err := s.repo.FindScheduleByLoanID(ctx, loanID)
	if err != nil {
		s.LogError(ctx, err, "failed to load amortization schedule", "loan_id", loanID)
		return nil, err
	}
	return dto.ToAmortizationEntryResponses(schedule), nil
}

func (s *loanService) UpdateLoan(ctx context.Context, userID, loanID string, req dto.UpdateLoanRequest) (*dto.LoanResponse, error) {
	loan, err := s.findOwnedLoan(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: loan name cannot be empty", apperrors.ErrValidation)
		}
		loan.Name = strings.TrimSpace(*req.Name)
	}
	if req.Status != nil {
		if !domain.ValidLoanStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown loan status %q", apperrors.ErrValidation, *req.Status)
		}
		loan.Status = *req.Status
	}
	loan.LastUpdatedAt = s.now()

	if err := s.repo.UpdateLoan(ctx, *loan); err != nil {
		s.LogError(ctx, err, "failed to update loan", "loan_id", loanID)
		return nil, err
	}

	resp := dto.ToLoanResponse(loan)
	return &resp, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, userID, loanID string) error {
	if _, err := s.findOwnedLoan(ctx, userID, loanID); err != nil {
		return err
	}

	if err := s.repo.DeleteLoan(ctx, loanID); err != nil {
		s.LogError(ctx, err, "failed to delete loan", "loan_id", loanID)
		return err
	}

	s.LogInfo(ctx, "loan deleted", "loan_id", loanID)
	return nil
}

// MakePayment splits the amount into interest and principal against the
// current remaining balance and appends it to the ledger. The split is
// derived from loan state read under the loan row lock, in the same
// transaction that writes the payment, so concurrent payments serialize and
// never compute against a stale aggregate.
func (s *loanService) MakePayment(ctx context.Context, userID, loanID string, req dto.MakeLoanPaymentRequest) (*dto.LoanPaymentResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.AccountID)
	}

	var paidOff bool
	payment, err := s.repo.SaveLoanPayment(ctx, loanID, func(loan domain.Loan, principalPaid decimal.Decimal) (domain.LoanPayment, bool, error) {
		if loan.UserID != userID {
			return domain.LoanPayment{}, false, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
		}
		if loan.Status != domain.LoanActive {
			return domain.LoanPayment{}, false, fmt.Errorf("%w: loan is %s, payments require an active loan", apperrors.ErrValidation, loan.Status)
		}

		remaining := loan.Principal.Sub(principalPaid)
		interest := remaining.Mul(finance.MonthlyRate(loan.InterestRate))
		principalPart := req.Amount.Sub(interest)
		paidOff = remaining.Sub(principalPart).LessThanOrEqual(decimal.Zero)

		return domain.LoanPayment{
			PaymentID: uuid.NewString(),
			LoanID:    loanID,
			AccountID: req.AccountID,
			Amount:    req.Amount,
			Principal: principalPart,
			Interest:  interest,
			PaidAt:    s.now(),
		}, paidOff, nil
	})
	if err != nil {
		s.LogError(ctx, err, "failed to record loan payment", "loan_id", loanID)
		return nil, err
	}

	if paidOff {
		s.LogInfo(ctx, "loan paid off", "loan_id", loanID)
	}
	s.LogInfo(ctx, "loan payment recorded",
		"loan_id", loanID,
		"amount", payment.Amount.String(),
		"principal", payment.Principal.String(),
		"interest", payment.Interest.String(),
	)

	resp := dto.ToLoanPaymentResponse(payment)
	return &resp, nil
}

func (s *loanService) ListPayments(ctx context.Context, userID, loanID string) ([]dto.LoanPaymentResponse, error) {
	if _, err := s.findOwnedLoan(ctx, userID, loanID); err != nil {
		return nil, err
	}

	payments, err := s.repo.ListPaymentsByLoanID(ctx, loanID)
	if err != nil {
		s.LogError(ctx, err, "failed to list loan payments", "loan_id", loanID)
		return nil, err
	}
	return dto.ToListLoanPaymentResponse(payments), nil
}

func (s *loanService) findOwnedLoan(ctx context.Context, userID, loanID string) (*domain.Loan, error) {
	loan, err := s.repo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != userID {
		return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
	}
	return loan, nil
}
