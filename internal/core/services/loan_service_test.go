package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrackr/fintrackr_backend/internal/apperrors"
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr_backend/internal/core/services"
	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

// MockLoanRepository is a mock type for the LoanRepository interface. The
// payment fields capture what SaveLoanPayment's compute callback produced.
type MockLoanRepository struct {
	mock.Mock

	savedPayment  domain.LoanPayment
	markedPaidOff bool
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context, userID string) ([]domain.Loan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindScheduleByLoanID(ctx context.Context, loanID string) ([]domain.AmortizationEntry, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AmortizationEntry), args.Error(1)
}

func (m *MockLoanRepository) ListPaymentsByLoanID(ctx context.Context, loanID string) ([]domain.LoanPayment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanPayment), args.Error(1)
}

func (m *MockLoanRepository) SaveLoanWithSchedule(ctx context.Context, loan domain.Loan, schedule []domain.AmortizationEntry) error {
	args := m.Called(ctx, loan, schedule)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

// SaveLoanPayment is configured with the loan state and principal aggregate
// the transaction would read under lock; it feeds them to compute the way
// the real repository does.
func (m *MockLoanRepository) SaveLoanPayment(ctx context.Context, loanID string, compute portsrepo.LoanPaymentFunc) (*domain.LoanPayment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(2)
	}

	payment, markPaidOff, err := compute(args.Get(0).(domain.Loan), args.Get(1).(decimal.Decimal))
	if err != nil {
		return nil, err
	}
	m.savedPayment = payment
	m.markedPaidOff = markPaidOff
	return &payment, nil
}

type LoanServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockLoanRepository
	mockAccounts *MockAccountRepository
	service      portssvc.LoanService
	userID       string
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLoanRepository)
	suite.mockAccounts = new(MockAccountRepository)
	suite.service = services.NewLoanService(suite.mockRepo, suite.mockAccounts)
	suite.userID = uuid.NewString()
}

func (suite *LoanServiceTestSuite) activeLoan(principal, rate string) *domain.Loan {
	return &domain.Loan{
		LoanID:       uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Car Loan",
		Principal:    decimal.RequireFromString(principal),
		InterestRate: decimal.RequireFromString(rate),
		TermMonths:   12,
		StartDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:       domain.LoanActive,
	}
}

func (suite *LoanServiceTestSuite) ownedAccount(accountID string) *domain.Account {
	return &domain.Account{AccountID: accountID, UserID: suite.userID}
}

func (suite *LoanServiceTestSuite) TestCreateLoan_Success() {
	ctx := context.Background()
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	req := dto.CreateLoanRequest{
		Name:         "Car Loan",
		Principal:    decimal.RequireFromString("12000"),
		InterestRate: decimal.RequireFromString("12"),
		TermMonths:   12,
		StartDate:    &start,
	}

	var savedSchedule []domain.AmortizationEntry
	suite.mockRepo.On("SaveLoanWithSchedule", ctx, mock.AnythingOfType("domain.Loan"), mock.AnythingOfType("[]domain.AmortizationEntry")).
		Run(func(args mock.Arguments) {
			savedSchedule = args.Get(2).([]domain.AmortizationEntry)
		}).
		Return(nil).Once()

	created, err := suite.service.CreateLoan(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(created.LoanID)
	suite.Equal(domain.LoanActive, created.Status)
	suite.InDelta(1066.19, created.MonthlyPayment.InexactFloat64(), 0.01)

	suite.Require().Len(savedSchedule, 12)
	for _, entry := range savedSchedule {
		suite.NotEmpty(entry.EntryID)
		suite.Equal(created.LoanID, entry.LoanID)
	}
	suite.Equal(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), savedSchedule[0].PaymentDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCreateLoan_InvalidPrincipal() {
	ctx := context.Background()
	req := dto.CreateLoanRequest{
		Name:       "Bad Loan",
		Principal:  decimal.Zero,
		TermMonths: 12,
	}

	created, err := suite.service.CreateLoan(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLoanWithSchedule")
}

func (suite *LoanServiceTestSuite) TestMakePayment_SplitsInterestAndPrincipal() {
	ctx := context.Background()
	loan := suite.activeLoan("12000", "12")
	accountID := uuid.NewString()
	req := dto.MakeLoanPaymentRequest{
		AccountID: accountID,
		Amount:    decimal.RequireFromString("1066.19"),
	}

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).Return(suite.ownedAccount(accountID), nil).Once()
	suite.mockRepo.On("SaveLoanPayment", ctx, loan.LoanID).Return(*loan, decimal.Zero, nil).Once()

	resp, err := suite.service.MakePayment(ctx, suite.userID, loan.LoanID, req)

	suite.Require().NoError(err)
	// Interest accrues on the full outstanding principal at 1% monthly
	suite.InDelta(120.00, resp.Interest.InexactFloat64(), 0.001)
	suite.InDelta(946.19, resp.Principal.InexactFloat64(), 0.001)
	suite.True(suite.mockRepo.savedPayment.Amount.Equal(req.Amount))
	suite.Equal(accountID, suite.mockRepo.savedPayment.AccountID)
	suite.False(suite.mockRepo.markedPaidOff)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestMakePayment_NegativeAmortization() {
	ctx := context.Background()
	loan := suite.activeLoan("12000", "12")
	accountID := uuid.NewString()
	req := dto.MakeLoanPaymentRequest{
		AccountID: accountID,
		Amount:    decimal.RequireFromString("50"),
	}

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).Return(suite.ownedAccount(accountID), nil).Once()
	suite.mockRepo.On("SaveLoanPayment", ctx, loan.LoanID).Return(*loan, decimal.Zero, nil).Once()

	resp, err := suite.service.MakePayment(ctx, suite.userID, loan.LoanID, req)

	// A payment below accrued interest grows the balance: principal goes negative
	suite.Require().NoError(err)
	suite.InDelta(120.00, resp.Interest.InexactFloat64(), 0.001)
	suite.InDelta(-70.00, resp.Principal.InexactFloat64(), 0.001)
	suite.False(suite.mockRepo.markedPaidOff)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestMakePayment_MarksPaidOff() {
	ctx := context.Background()
	loan := suite.activeLoan("12000", "0")
	accountID := uuid.NewString()
	req := dto.MakeLoanPaymentRequest{
		AccountID: accountID,
		Amount:    decimal.RequireFromString("100"),
	}

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).Return(suite.ownedAccount(accountID), nil).Once()
	// All but the last 100 already repaid, per the in-transaction aggregate
	suite.mockRepo.On("SaveLoanPayment", ctx, loan.LoanID).Return(*loan, decimal.RequireFromString("11900"), nil).Once()

	resp, err := suite.service.MakePayment(ctx, suite.userID, loan.LoanID, req)

	suite.Require().NoError(err)
	suite.True(resp.Interest.IsZero())
	suite.True(resp.Principal.Equal(decimal.RequireFromString("100")))
	suite.True(suite.mockRepo.markedPaidOff)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestMakePayment_RejectsInactiveLoan() {
	ctx := context.Background()
	loan := suite.activeLoan("12000", "12")
	loan.Status = domain.LoanPaidOff
	accountID := uuid.NewString()

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).Return(suite.ownedAccount(accountID), nil).Once()
	suite.mockRepo.On("SaveLoanPayment", ctx, loan.LoanID).Return(*loan, decimal.Zero, nil).Once()

	resp, err := suite.service.MakePayment(ctx, suite.userID, loan.LoanID, dto.MakeLoanPaymentRequest{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(100),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
}

func (suite *LoanServiceTestSuite) TestMakePayment_ForeignLoanNotFound() {
	ctx := context.Background()
	loan := suite.activeLoan("12000", "12")
	loan.UserID = uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).Return(suite.ownedAccount(accountID), nil).Once()
	suite.mockRepo.On("SaveLoanPayment", ctx, loan.LoanID).Return(*loan, decimal.Zero, nil).Once()

	resp, err := suite.service.MakePayment(ctx, suite.userID, loan.LoanID, dto.MakeLoanPaymentRequest{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(100),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(resp)
}

func (suite *LoanServiceTestSuite) TestMakePayment_ForeignAccountNotFound() {
	ctx := context.Background()
	loan := suite.activeLoan("12000", "12")
	accountID := uuid.NewString()
	foreignAccount := &domain.Account{AccountID: accountID, UserID: uuid.NewString()}

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).Return(foreignAccount, nil).Once()

	resp, err := suite.service.MakePayment(ctx, suite.userID, loan.LoanID, dto.MakeLoanPaymentRequest{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(100),
	})

	// A foreign account reads the same as a missing one
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.NotErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLoanPayment")
}

func (suite *LoanServiceTestSuite) TestMakePayment_MissingAccountNotFound() {
	ctx := context.Background()
	loan := suite.activeLoan("12000", "12")
	accountID := uuid.NewString()

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).
		Return(nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)).Once()

	resp, err := suite.service.MakePayment(ctx, suite.userID, loan.LoanID, dto.MakeLoanPaymentRequest{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(100),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.NotErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLoanPayment")
}

func (suite *LoanServiceTestSuite) TestMakePayment_RejectsNonPositiveAmount() {
	ctx := context.Background()
	loan := suite.activeLoan("12000", "12")

	resp, err := suite.service.MakePayment(ctx, suite.userID, loan.LoanID, dto.MakeLoanPaymentRequest{
		AccountID: uuid.NewString(),
		Amount:    decimal.Zero,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLoanPayment")
}

func (suite *LoanServiceTestSuite) TestGetSchedule_NotOwned() {
	ctx := context.Background()
	loanID := uuid.NewString()
	foreign := &domain.Loan{LoanID: loanID, UserID: uuid.NewString()}

	suite.mockRepo.On("FindLoanByID", ctx, loanID).Return(foreign, nil).Once()

	schedule, err := suite.service.GetSchedule(ctx, suite.userID, loanID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(schedule)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindScheduleByLoanID")
}

func (suite *LoanServiceTestSuite) TestUpdateLoan_InvalidStatus() {
	ctx := context.Background()
	loan := suite.activeLoan("12000", "12")
	badStatus := domain.LoanStatus("FORGIVEN")

	suite.mockRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	resp, err := suite.service.UpdateLoan(ctx, suite.userID, loan.LoanID, dto.UpdateLoanRequest{Status: &badStatus})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateLoan")
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
