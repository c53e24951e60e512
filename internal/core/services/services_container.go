package services

import (
	"time"

	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, sender portssvc.NotificationSender, jwtSecret string, jwtExpiry time.Duration) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		AccountSvc:      NewAccountService(repos.AccountRepo),
		CategorySvc:     NewCategoryService(repos.CategoryRepo),
		ExpenseSvc:      NewExpenseService(repos.ExpenseRepo, repos.AccountRepo, repos.CategoryRepo),
		LoanSvc:         NewLoanService(repos.LoanRepo, repos.AccountRepo),
		SubscriptionSvc: NewSubscriptionService(repos.SubscriptionRepo),
		ReminderSvc:     NewReminderService(repos.ReminderRepo, sender),
		ReportingSvc:    NewReportingService(repos.ReportingRepo, repos.AccountRepo, repos.LoanRepo, repos.SubscriptionRepo),
		UserSvc:         NewUserService(repos.UserRepo, jwtSecret, jwtExpiry),
	}
}
