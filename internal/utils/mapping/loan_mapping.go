package mapping

import (
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	"github.com/fintrackr/fintrackr_backend/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan.
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:         d.LoanID,
		UserID:         d.UserID,
		Name:           d.Name,
		Principal:      d.Principal,
		InterestRate:   d.InterestRate,
		TermMonths:     d.TermMonths,
		StartDate:      d.StartDate,
		MonthlyPayment: d.MonthlyPayment,
		Status:         models.LoanStatus(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan.
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:         m.LoanID,
		UserID:         m.UserID,
		Name:           m.Name,
		Principal:      m.Principal,
		InterestRate:   m.InterestRate,
		TermMonths:     m.TermMonths,
		StartDate:      m.StartDate,
		MonthlyPayment: m.MonthlyPayment,
		Status:         domain.LoanStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLoanSlice converts a slice of model Loans to domain Loans.
func ToDomainLoanSlice(ms []models.Loan) []domain.Loan {
	ds := make([]domain.Loan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoan(m)
	}
	return ds
}

// ToModelAmortizationEntry converts a domain AmortizationEntry to its model.
func ToModelAmortizationEntry(d domain.AmortizationEntry) models.AmortizationEntry {
	return models.AmortizationEntry{
		EntryID:     d.EntryID,
		LoanID:      d.LoanID,
		Month:       d.Month,
		PaymentDate: d.PaymentDate,
		Payment:     d.Payment,
		Principal:   d.Principal,
		Interest:    d.Interest,
		Balance:     d.Balance,
	}
}

// ToDomainAmortizationEntry converts a model AmortizationEntry to its domain.
func ToDomainAmortizationEntry(m models.AmortizationEntry) domain.AmortizationEntry {
	return domain.AmortizationEntry{
		EntryID:     m.EntryID,
		LoanID:      m.LoanID,
		Month:       m.Month,
		PaymentDate: m.PaymentDate,
		Payment:     m.Payment,
		Principal:   m.Principal,
		Interest:    m.Interest,
		Balance:     m.Balance,
	}
}

// ToModelLoanPayment converts a domain LoanPayment to its model.
func ToModelLoanPayment(d domain.LoanPayment) models.LoanPayment {
	return models.LoanPayment{
		PaymentID: d.PaymentID,
		LoanID:    d.LoanID,
		AccountID: d.AccountID,
		Amount:    d.Amount,
		Principal: d.Principal,
		Interest:  d.Interest,
		PaidAt:    d.PaidAt,
	}
}

// ToDomainLoanPayment converts a model LoanPayment to its domain.
func ToDomainLoanPayment(m models.LoanPayment) domain.LoanPayment {
	return domain.LoanPayment{
		PaymentID: m.PaymentID,
		LoanID:    m.LoanID,
		AccountID: m.AccountID,
		Amount:    m.Amount,
		Principal: m.Principal,
		Interest:  m.Interest,
		PaidAt:    m.PaidAt,
	}
}
