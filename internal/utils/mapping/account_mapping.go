package mapping

import (
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	"github.com/fintrackr/fintrackr_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		UserID:        d.UserID,
		Name:          d.Name,
		AccountType:   models.AccountType(d.AccountType),
		Balance:       d.Balance,
		CurrencyCode:  d.CurrencyCode,
		BankName:      d.BankName,
		AccountNumber: d.AccountNumber,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		UserID:        m.UserID,
		Name:          m.Name,
		AccountType:   domain.AccountType(m.AccountType),
		Balance:       m.Balance,
		CurrencyCode:  m.CurrencyCode,
		BankName:      m.BankName,
		AccountNumber: m.AccountNumber,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
