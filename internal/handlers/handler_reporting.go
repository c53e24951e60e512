package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr_backend/internal/dto"
	"github.com/fintrackr/fintrackr_backend/internal/middleware"
)

type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// registerReportingRoutes registers the report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/calendar/:year/:month", h.getCalendar)
	}
}

// getSummary godoc
// @Summary Get the financial summary
// @Description Aggregates expenses, account balances, active loans and upcoming subscription charges
// @Tags reports
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param categoryID query string false "Category filter"
// @Param accountID query string false "Account filter"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.reportingService.GetSummary(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to build summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getCalendar godoc
// @Summary Get a month's expenses grouped by day
// @Tags reports
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {array} dto.CalendarDayResponse
// @Failure 400 {object} map[string]string "Invalid year or month"
// @Security BearerAuth
// @Router /reports/calendar/{year}/{month} [get]
func (h *reportingHandler) getCalendar(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	days, err := h.reportingService.GetCalendar(c.Request.Context(), userID, year, month)
	if err != nil {
		respondServiceError(c, err, "Failed to build calendar")
		return
	}

	c.JSON(http.StatusOK, days)
}
