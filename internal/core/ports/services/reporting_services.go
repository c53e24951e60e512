package services

import (
	"context"

	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

// ReportingService computes read-only projections over a user's data.
type ReportingService interface {
	// GetSummary aggregates expenses, balances, active loans and upcoming
	// subscription charges for the dashboard.
	GetSummary(ctx context.Context, userID string, params dto.ReportParams) (*dto.SummaryResponse, error)

	// GetCalendar groups a month's expenses by day.
	GetCalendar(ctx context.Context, userID string, year int, month int) ([]dto.CalendarDayResponse, error)
}
