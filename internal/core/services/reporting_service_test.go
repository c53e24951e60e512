package services_test

import (
	"context"
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

// MockReportingRepository is a mock type for the ReportingRepository interface.
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) ExpenseTotals(ctx context.Context, userID string, filter portsrepo.ExpenseFilter) (decimal.Decimal, int, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(decimal.Decimal), args.Int(1), args.Error(2)
}

func (m *MockReportingRepository) ExpenseTotalsByCategory(ctx context.Context, userID string, filter portsrepo.ExpenseFilter) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockReportingRepository) ExpenseTotalsByAccount(ctx context.Context, userID string, filter portsrepo.ExpenseFilter) ([]domain.AccountTotal, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTotal), args.Error(1)
}

func (m *MockReportingRepository) ListExpensesInRange(ctx context.Context, userID string, filter portsrepo.ExpenseFilter) ([]domain.Expense, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockReportingRepository
	mockAccts *MockAccountRepository
	mockLoans *MockLoanRepository
	mockSubs  *MockSubscriptionRepository
	service   portssvc.ReportingService
	userID    string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockAccts = new(MockAccountRepository)
	suite.mockLoans = new(MockLoanRepository)
	suite.mockSubs = new(MockSubscriptionRepository)
	suite.service = services.NewReportingService(suite.mockRepo, suite.mockAccts, suite.mockLoans, suite.mockSubs)
	suite.userID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) TestGetSummary_ComposesSections() {
	ctx := context.Background()

	suite.mockRepo.On("ExpenseTotals", ctx, suite.userID, portsrepo.ExpenseFilter{}).
		Return(decimal.RequireFromString("350.25"), 7, nil).Once()
	suite.mockRepo.On("ExpenseTotalsByCategory", ctx, suite.userID, portsrepo.ExpenseFilter{}).
		Return([]domain.CategoryTotal{{Name: "Groceries", Total: decimal.RequireFromString("200"), Count: 4}}, nil).Once()
	suite.mockRepo.On("ExpenseTotalsByAccount", ctx, suite.userID, portsrepo.ExpenseFilter{}).
		Return([]domain.AccountTotal{{Name: "Checking", Total: decimal.RequireFromString("350.25"), Count: 7}}, nil).Once()

	suite.mockAccts.On("ListAccounts", ctx, suite.userID).Return([]domain.Account{
		{AccountID: "a1", Name: "Checking", AccountType: domain.Bank, Balance: decimal.RequireFromString("1000")},
		{AccountID: "a2", Name: "Card", AccountType: domain.CreditCard, Balance: decimal.RequireFromString("-250")},
	}, nil).Once()

	suite.mockLoans.On("ListLoans", ctx, suite.userID).Return([]domain.Loan{
		{LoanID: "l1", Name: "Car", Status: domain.LoanActive, Principal: decimal.NewFromInt(12000), MonthlyPayment: decimal.RequireFromString("1066.19")},
		{LoanID: "l2", Name: "Old Loan", Status: domain.LoanPaidOff, MonthlyPayment: decimal.NewFromInt(500)},
	}, nil).Once()

	nextCharge := time.Now().Add(48 * time.Hour)
	farCharge := time.Now().Add(30 * 24 * time.Hour)
	suite.mockSubs.On("ListSubscriptions", ctx, suite.userID).Return([]domain.Subscription{
		{SubscriptionID: "s1", Name: "Streaming", IsActive: true, NextPaymentDate: nextCharge, Amount: decimal.RequireFromString("15.99")},
		{SubscriptionID: "s2", Name: "Annual", IsActive: true, NextPaymentDate: farCharge},
		{SubscriptionID: "s3", Name: "Cancelled", IsActive: false, NextPaymentDate: nextCharge},
	}, nil).Once()

	summary, err := suite.service.GetSummary(ctx, suite.userID, dto.ReportParams{})

	suite.Require().NoError(err)
	suite.True(summary.TotalExpenses.Equal(decimal.RequireFromString("350.25")))
	suite.Equal(7, summary.ExpenseCount)
	suite.Len(summary.ExpensesByCategory, 1)

	// Balances sum across all accounts, negatives included
	suite.True(summary.TotalBalance.Equal(decimal.RequireFromString("750")))
	suite.Len(summary.Accounts, 2)

	// Only active loans contribute to the monthly cost
	suite.Require().Len(summary.ActiveLoans, 1)
	suite.Equal("l1", summary.ActiveLoans[0].LoanID)
	suite.True(summary.TotalMonthlyLoanCost.Equal(decimal.RequireFromString("1066.19")))

	// Only active subscriptions charging within seven days are upcoming
	suite.Require().Len(summary.UpcomingSubscriptions, 1)
	suite.Equal("s1", summary.UpcomingSubscriptions[0].SubscriptionID)
}

func (suite *ReportingServiceTestSuite) TestGetCalendar_GroupsByDay() {
	ctx := context.Background()
	day1 := time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)
	day1Later := time.Date(2024, 5, 3, 18, 30, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	suite.mockRepo.On("ListExpensesInRange", ctx, suite.userID, mock.MatchedBy(func(f portsrepo.ExpenseFilter) bool {
		return f.StartDate != nil && f.StartDate.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) &&
			f.EndDate != nil && f.EndDate.Month() == time.May
	})).Return([]domain.Expense{
		{ExpenseID: "e1", Date: day1, Amount: decimal.RequireFromString("10")},
		{ExpenseID: "e2", Date: day1Later, Amount: decimal.RequireFromString("5.50")},
		{ExpenseID: "e3", Date: day2, Amount: decimal.RequireFromString("99")},
	}, nil).Once()

	days, err := suite.service.GetCalendar(ctx, suite.userID, 2024, 5)

	suite.Require().NoError(err)
	suite.Require().Len(days, 2)

	suite.Equal("2024-05-03", days[0].Date)
	suite.Equal(2, days[0].Count)
	suite.True(days[0].Total.Equal(decimal.RequireFromString("15.50")))

	suite.Equal("2024-05-10", days[1].Date)
	suite.Equal(1, days[1].Count)
	suite.True(days[1].Total.Equal(decimal.RequireFromString("99")))
}

func (suite *ReportingServiceTestSuite) TestGetCalendar_InvalidMonth() {
	ctx := context.Background()

	days, err := suite.service.GetCalendar(ctx, suite.userID, 2024, 13)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(days)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListExpensesInRange")
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
