package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr_backend/internal/dto"
	"github.com/fintrackr/fintrackr_backend/internal/middleware"
)

type loanHandler struct {
	loanService portssvc.LoanService
}

// registerLoanRoutes registers routes related to loans.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanService) {
	h := &loanHandler{loanService: loanService}

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:id", h.getLoan)
		loans.GET("/:id/schedule", h.getSchedule)
		loans.PUT("/:id", h.updateLoan)
		loans.DELETE("/:id", h.deleteLoan)
		loans.POST("/:id/payments", h.makePayment)
		loans.GET("/:id/payments", h.listPayments)
	}
}

// createLoan godoc
// @Summary Create a new loan
// @Description Creates a loan and generates its full amortization schedule
// @Tags loans
// @Accept json
// @Produce json
// @Param loan body dto.CreateLoanRequest true "Loan terms"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} map[string]string "Invalid loan terms"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create loan")
		return
	}

	c.JSON(http.StatusCreated, loan)
}

// listLoans godoc
// @Summary List the user's loans
// @Tags loans
// @Produce json
// @Success 200 {array} dto.LoanResponse
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	loans, err := h.loanService.ListLoans(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list loans")
		return
	}

	c.JSON(http.StatusOK, loans)
}

// getLoan godoc
// @Summary Get a loan by ID
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /loans/{id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve loan")
		return
	}

	c.JSON(http.StatusOK, loan)
}

// getSchedule godoc
// @Summary Get a loan's amortization schedule
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {array} dto.AmortizationEntryResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /loans/{id}/schedule [get]
func (h *loanHandler) getSchedule(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	schedule, err := h.loanService.GetSchedule(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve schedule")
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// updateLoan godoc
// @Summary Update a loan's name or status
// @Description Financial terms are immutable after creation
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Param loan body dto.UpdateLoanRequest true "Fields to update"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /loans/{id} [put]
func (h *loanHandler) updateLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	loan, err := h.loanService.UpdateLoan(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update loan")
		return
	}

	c.JSON(http.StatusOK, loan)
}

// deleteLoan godoc
// @Summary Delete a loan
// @Description Deletes a loan with its schedule and payment ledger
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /loans/{id} [delete]
func (h *loanHandler) deleteLoan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.loanService.DeleteLoan(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete loan")
		return
	}

	c.Status(http.StatusNoContent)
}

// makePayment godoc
// @Summary Record a loan payment
// @Description Splits the amount into interest and principal, debits the paying account and appends to the ledger
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Param payment body dto.MakeLoanPaymentRequest true "Payment details"
// @Success 201 {object} dto.LoanPaymentResponse
// @Failure 400 {object} map[string]string "Invalid payment or inactive loan"
// @Failure 404 {object} map[string]string "Loan or account not found"
// @Security BearerAuth
// @Router /loans/{id}/payments [post]
func (h *loanHandler) makePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.MakeLoanPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for makePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.loanService.MakePayment(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// listPayments godoc
// @Summary List a loan's payment ledger
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {array} dto.LoanPaymentResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /loans/{id}/payments [get]
func (h *loanHandler) listPayments(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	payments, err := h.loanService.ListPayments(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}
