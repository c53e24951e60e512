package services

// ServiceContainer bundles every service implementation so wiring code can
// pass them around as one value.
type ServiceContainer struct {
	AccountSvc      AccountService
	CategorySvc     CategoryService
	ExpenseSvc      ExpenseService
	LoanSvc         LoanService
	SubscriptionSvc SubscriptionService
	ReminderSvc     ReminderService
	ReportingSvc    ReportingService
	UserSvc         UserService
}
