package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/apperrors"
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

// upcomingWindow is how far ahead the summary looks for subscription charges.
const upcomingWindow = 7 * 24 * time.Hour

type reportingService struct {
	BaseService
	repo             portsrepo.ReportingRepository
	accountRepo      portsrepo.AccountReader
	loanRepo         portsrepo.LoanReader
	subscriptionRepo portsrepo.SubscriptionReader
	now              func() time.Time
}

// NewReportingService creates the reporting service. Reports are pure
// projections; this service never writes.
func NewReportingService(
	repo portsrepo.ReportingRepository,
	accountRepo portsrepo.AccountReader,
	loanRepo portsrepo.LoanReader,
	subscriptionRepo portsrepo.SubscriptionReader,
) portssvc.ReportingService {
	return &reportingService{
		repo:             repo,
		accountRepo:      accountRepo,
		loanRepo:         loanRepo,
		subscriptionRepo: subscriptionRepo,
		now:              time.Now,
	}
}

func (s *reportingService) GetSummary(ctx context.Context, userID string, params dto.ReportParams) (*dto.SummaryResponse, error) {
	filter := portsrepo.ExpenseFilter{
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		CategoryID: params.CategoryID,
		AccountID:  params.AccountID,
	}

	total, count, err := s.repo.ExpenseTotals(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate expense totals")
		return nil, err
	}

	byCategory, err := s.repo.ExpenseTotalsByCategory(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate expenses by category")
		return nil, err
	}

	byAccount, err := s.repo.ExpenseTotalsByAccount(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate expenses by account")
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to list accounts for summary")
		return nil, err
	}

	loans, err := s.loanRepo.ListLoans(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to list loans for summary")
		return nil, err
	}

	subs, err := s.subscriptionRepo.ListSubscriptions(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to list subscriptions for summary")
		return nil, err
	}

	summary := &dto.SummaryResponse{
		TotalExpenses:         total,
		ExpenseCount:          count,
		ExpensesByCategory:    byCategory,
		ExpensesByAccount:     byAccount,
		Accounts:              make([]dto.AccountBalanceSummary, 0, len(accounts)),
		TotalBalance:          decimal.Zero,
		ActiveLoans:           []dto.ActiveLoanSummary{},
		TotalMonthlyLoanCost:  decimal.Zero,
		UpcomingSubscriptions: []dto.UpcomingSubscriptionSummary{},
	}

	for _, acc := range accounts {
		summary.Accounts = append(summary.Accounts, dto.AccountBalanceSummary{
			AccountID: acc.AccountID,
			Name:      acc.Name,
			Type:      acc.AccountType,
			Balance:   acc.Balance,
		})
		summary.TotalBalance = summary.TotalBalance.Add(acc.Balance)
	}

	for _, loan := range loans {
		if loan.Status != domain.LoanActive {
			continue
		}
		summary.ActiveLoans = append(summary.ActiveLoans, dto.ActiveLoanSummary{
			LoanID:         loan.LoanID,
			Name:           loan.Name,
			Principal:      loan.Principal,
			MonthlyPayment: loan.MonthlyPayment,
		})
		summary.TotalMonthlyLoanCost = summary.TotalMonthlyLoanCost.Add(loan.MonthlyPayment)
	}

	now := s.now()
	horizon := now.Add(upcomingWindow)
	for _, sub := range subs {
		if !sub.IsActive {
			continue
		}
		if sub.NextPaymentDate.Before(now) || sub.NextPaymentDate.After(horizon) {
			continue
		}
		summary.UpcomingSubscriptions = append(summary.UpcomingSubscriptions, dto.UpcomingSubscriptionSummary{
			SubscriptionID:  sub.SubscriptionID,
			Name:            sub.Name,
			Amount:          sub.Amount,
			Frequency:       sub.Frequency,
			NextPaymentDate: sub.NextPaymentDate,
		})
	}

	return summary, nil
}

func (s *reportingService) GetCalendar(ctx context.Context, userID string, year int, month int) ([]dto.CalendarDayResponse, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	}
	if year < 1970 || year > 9999 {
		return nil, fmt.Errorf("%w: year out of range", apperrors.ErrValidation)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	filter := portsrepo.ExpenseFilter{StartDate: &start, EndDate: &end}

	expenses, err := s.repo.ListExpensesInRange(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "failed to list expenses for calendar")
		return nil, err
	}

	// Group by day preserving chronological order.
	byDay := make(map[string]*dto.CalendarDayResponse)
	order := make([]string, 0)
	for i := range expenses {
		key := expenses[i].Date.Format(time.DateOnly)
		day, ok := byDay[key]
		if !ok {
			day = &dto.CalendarDayResponse{Date: key, Total: decimal.Zero}
			byDay[key] = day
			order = append(order, key)
		}
		day.Expenses = append(day.Expenses, dto.ToExpenseResponse(&expenses[i]))
		day.Total = day.Total.Add(expenses[i].Amount)
		day.Count++
	}

	days := make([]dto.CalendarDayResponse, 0, len(order))
	for _, key := range order {
		days = append(days, *byDay[key])
	}
	return days, nil
}
