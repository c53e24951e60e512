package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository against the pool. The
// subscription repository also serves as the reminder repository; both views
// read the same tables.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	subscriptionRepo := newPgxSubscriptionRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		CategoryRepo:     newPgxCategoryRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		LoanRepo:         newPgxLoanRepository(dbPool),
		SubscriptionRepo: subscriptionRepo,
		ReminderRepo:     subscriptionRepo,
		ReportingRepo:    newPgxReportingRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
	}
}
