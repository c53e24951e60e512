package repositories

// RepositoryProvider bundles every repository implementation so wiring code
// can pass them around as one value.
type RepositoryProvider struct {
	AccountRepo      AccountRepository
	CategoryRepo     CategoryRepository
	ExpenseRepo      ExpenseRepository
	LoanRepo         LoanRepository
	SubscriptionRepo SubscriptionRepository
	ReminderRepo     ReminderRepository
	ReportingRepo    ReportingRepository
	UserRepo         UserRepository
}
