package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
)

// CreateLoanRequest defines the data needed to create a new loan. The
// amortization schedule is generated from these fields at creation time.
type CreateLoanRequest struct {
	Name         string          `json:"name" binding:"required"`
	Principal    decimal.Decimal `json:"principal" binding:"required"`
	InterestRate decimal.Decimal `json:"interestRate"` // annual, percent; zero allowed
	TermMonths   int             `json:"termMonths" binding:"required,min=1"`
	StartDate    *time.Time      `json:"startDate"` // defaults to now
}

// UpdateLoanRequest defines the data allowed for updating a loan. Principal,
// rate, term and the derived monthly payment are immutable after creation.
type UpdateLoanRequest struct {
	Name   *string            `json:"name"`
	Status *domain.LoanStatus `json:"status"`
}

// MakeLoanPaymentRequest defines the data needed to record a loan payment.
type MakeLoanPaymentRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanID         string            `json:"loanID"`
	Name           string            `json:"name"`
	Principal      decimal.Decimal   `json:"principal"`
	InterestRate   decimal.Decimal   `json:"interestRate"`
	TermMonths     int               `json:"termMonths"`
	StartDate      time.Time         `json:"startDate"`
	MonthlyPayment decimal.Decimal   `json:"monthlyPayment"`
	Status         domain.LoanStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	LastUpdatedAt  time.Time         `json:"lastUpdatedAt"`
}

// AmortizationEntryResponse is one month of the repayment plan.
type AmortizationEntryResponse struct {
	Month       int             `json:"month"`
	PaymentDate time.Time       `json:"paymentDate"`
	Payment     decimal.Decimal `json:"payment"`
	Principal   decimal.Decimal `json:"principal"`
	Interest    decimal.Decimal `json:"interest"`
	Balance     decimal.Decimal `json:"balance"`
}

// LoanPaymentResponse defines the data returned for a recorded payment.
type LoanPaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	LoanID    string          `json:"loanID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	PaidAt    time.Time       `json:"paidAt"`
}

// ToLoanResponse converts a domain.Loan to a LoanResponse DTO.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:         l.LoanID,
		Name:           l.Name,
		Principal:      l.Principal,
		InterestRate:   l.InterestRate,
		TermMonths:     l.TermMonths,
		StartDate:      l.StartDate,
		MonthlyPayment: l.MonthlyPayment,
		Status:         l.Status,
		CreatedAt:      l.CreatedAt,
		LastUpdatedAt:  l.LastUpdatedAt,
	}
}

// ToListLoanResponse converts a slice of domain.Loan to response DTOs.
func ToListLoanResponse(loans []domain.Loan) []LoanResponse {
	res := make([]LoanResponse, len(loans))
	for i := range loans {
		res[i] = ToLoanResponse(&loans[i])
	}
	return res
}

// ToAmortizationEntryResponses converts schedule entries to response DTOs.
func ToAmortizationEntryResponses(entries []domain.AmortizationEntry) []AmortizationEntryResponse {
	res := make([]AmortizationEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = AmortizationEntryResponse{
			Month:       e.Month,
			PaymentDate: e.PaymentDate,
			Payment:     e.Payment,
			Principal:   e.Principal,
			Interest:    e.Interest,
			Balance:     e.Balance,
		}
	}
	return res
}

// ToLoanPaymentResponse converts a domain.LoanPayment to a response DTO.
func ToLoanPaymentResponse(p *domain.LoanPayment) LoanPaymentResponse {
	return LoanPaymentResponse{
		PaymentID: p.PaymentID,
		LoanID:    p.LoanID,
		AccountID: p.AccountID,
		Amount:    p.Amount,
		Principal: p.Principal,
		Interest:  p.Interest,
		PaidAt:    p.PaidAt,
	}
}

// ToListLoanPaymentResponse converts ledger entries to response DTOs.
func ToListLoanPaymentResponse(payments []domain.LoanPayment) []LoanPaymentResponse {
	res := make([]LoanPaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToLoanPaymentResponse(&payments[i])
	}
	return res
}
