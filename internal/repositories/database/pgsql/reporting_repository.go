package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
	"github.com/fintrackr/fintrackr_backend/internal/models"
	"github.com/fintrackr/fintrackr_backend/internal/utils/mapping"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates the read-only aggregation repository.
func newPgxReportingRepository(pool *pgxpool.Pool) *PgxReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// filterClause renders the optional expense filter into SQL, appending its
// parameters to args. The expenses table must be aliased e.
func filterClause(filter portsrepo.ExpenseFilter, args *[]any) string {
	clause := ""
	add := func(cond string, v any) {
		*args = append(*args, v)
		clause += fmt.Sprintf(cond, len(*args))
	}

	if filter.StartDate != nil {
		add(" AND e.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add(" AND e.date <= $%d", *filter.EndDate)
	}
	if filter.CategoryID != nil {
		add(" AND e.category_id = $%d", *filter.CategoryID)
	}
	if filter.AccountID != nil {
		add(" AND e.account_id = $%d", *filter.AccountID)
	}
	return clause
}

// ExpenseTotals returns the sum and count of matching expenses.
func (r *PgxReportingRepository) ExpenseTotals(ctx context.Context, userID string, filter portsrepo.ExpenseFilter) (decimal.Decimal, int, error) {
	args := []any{userID}
	query := `SELECT COALESCE(SUM(e.amount), 0), COUNT(*) FROM expenses e WHERE e.user_id = $1` + filterClause(filter, &args) + `;`

	var total decimal.Decimal
	var count int
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to aggregate expense totals: %w", err)
	}
	return total, count, nil
}

// ExpenseTotalsByCategory groups matching expenses by category, largest
// total first.
func (r *PgxReportingRepository) ExpenseTotalsByCategory(ctx context.Context, userID string, filter portsrepo.ExpenseFilter) ([]domain.CategoryTotal, error) {
	args := []any{userID}
	query := `
		SELECT c.category_id, c.name, c.color, COALESCE(SUM(e.amount), 0), COUNT(e.expense_id)
		FROM expenses e
		JOIN categories c ON c.category_id = e.category_id
		WHERE e.user_id = $1` + filterClause(filter, &args) + `
		GROUP BY c.category_id, c.name, c.color
		ORDER BY SUM(e.amount) DESC;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by category: %w", err)
	}
	defer rows.Close()

	totals := []domain.CategoryTotal{}
	for rows.Next() {
		var t domain.CategoryTotal
		if err := rows.Scan(&t.CategoryID, &t.Name, &t.Color, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category total row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", err)
	}
	return totals, nil
}

// ExpenseTotalsByAccount groups matching expenses by account, largest total
// first.
func (r *PgxReportingRepository) ExpenseTotalsByAccount(ctx context.Context, userID string, filter portsrepo.ExpenseFilter) ([]domain.AccountTotal, error) {
	args := []any{userID}
	query := `
		SELECT a.account_id, a.name, COALESCE(SUM(e.amount), 0), COUNT(e.expense_id)
		FROM expenses e
		JOIN accounts a ON a.account_id = e.account_id
		WHERE e.user_id = $1` + filterClause(filter, &args) + `
		GROUP BY a.account_id, a.name
		ORDER BY SUM(e.amount) DESC;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by account: %w", err)
	}
	defer rows.Close()

	totals := []domain.AccountTotal{}
	for rows.Next() {
		var t domain.AccountTotal
		if err := rows.Scan(&t.AccountID, &t.Name, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan account total row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account total rows: %w", err)
	}
	return totals, nil
}

// ListExpensesInRange retrieves matching expenses ordered by date ascending.
func (r *PgxReportingRepository) ListExpensesInRange(ctx context.Context, userID string, filter portsrepo.ExpenseFilter) ([]domain.Expense, error) {
	args := []any{userID}
	query := `SELECT ` + expenseColumnsAliased + ` FROM expenses e WHERE e.user_id = $1` + filterClause(filter, &args) + ` ORDER BY e.date, e.expense_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses in range: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return mapping.ToDomainExpenseSlice(expenses), nil
}

const expenseColumnsAliased = `e.expense_id, e.user_id, e.amount, e.description, e.date, e.account_id, e.category_id, e.created_at, e.last_updated_at`
