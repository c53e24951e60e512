package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/apperrors"
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
	"github.com/fintrackr/fintrackr_backend/internal/models"
	"github.com/fintrackr/fintrackr_backend/internal/utils/mapping"
	"github.com/fintrackr/fintrackr_backend/internal/utils/pagination"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, user_id, amount, description, date, account_id, category_id, created_at, last_updated_at`

func scanExpense(row interface{ Scan(dest ...any) error }) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.UserID,
		&m.Amount,
		&m.Description,
		&m.Date,
		&m.AccountID,
		&m.CategoryID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`

	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		return nil, mapNotFound(err, "expense "+expenseID)
	}
	d := mapping.ToDomainExpense(m)
	return &d, nil
}

// ListExpenses retrieves a filtered page of expenses ordered by
// (date DESC, expense_id DESC), seeking past the cursor when one is given.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, userID string, filter portsrepo.ExpenseFilter, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1`
	args := []any{userID}

	appendArg := func(clause string, v any) {
		args = append(args, v)
		query += fmt.Sprintf(clause, len(args))
	}

	if filter.StartDate != nil {
		appendArg(" AND date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		appendArg(" AND date <= $%d", *filter.EndDate)
	}
	if filter.CategoryID != nil {
		appendArg(" AND category_id = $%d", *filter.CategoryID)
	}
	if filter.AccountID != nil {
		appendArg(" AND account_id = $%d", *filter.AccountID)
	}

	if nextToken != nil {
		cursorDate, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, cursorDate, cursorID)
		query += fmt.Sprintf(" AND (date, expense_id) < ($%d, $%d)", len(args)-1, len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY date DESC, expense_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expenses for user %s: %w", userID, err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	var token *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[limit-1]
		t := pagination.EncodeToken(last.Date, last.ExpenseID)
		token = &t
	}
	return mapping.ToDomainExpenseSlice(expenses), token, nil
}

// CreateExpense inserts the expense and debits its account atomically.
func (r *PgxExpenseRepository) CreateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := adjustBalance(ctx, tx, m.AccountID, m.Amount.Neg()); err != nil {
			return err
		}

		query := `
			INSERT INTO expenses (` + expenseColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		_, err := tx.Exec(ctx, query,
			m.ExpenseID,
			m.UserID,
			m.Amount,
			m.Description,
			m.Date,
			m.AccountID,
			m.CategoryID,
			m.CreatedAt,
			m.LastUpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: expense with ID %s already exists", apperrors.ErrConflict, m.ExpenseID)
			}
			return fmt.Errorf("failed to insert expense %s: %w", m.ExpenseID, err)
		}
		return nil
	})
}

// UpdateExpense applies the row change and reconciles balances. When the
// account is unchanged only the amount delta moves; when it changed, the old
// account gets the full old amount back and the new account is debited the
// full new amount. Accounts are locked in ID order to keep lock acquisition
// deterministic.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, updated domain.Expense, old domain.Expense) error {
	mu := mapping.ToModelExpense(updated)
	mo := mapping.ToModelExpense(old)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if mu.AccountID == mo.AccountID {
			delta := mo.Amount.Sub(mu.Amount) // credit when the new amount is smaller
			if err := adjustBalance(ctx, tx, mu.AccountID, delta); err != nil {
				return err
			}
		} else {
			first, second := mo.AccountID, mu.AccountID
			firstDelta, secondDelta := mo.Amount, mu.Amount.Neg()
			if second < first {
				first, second = second, first
				firstDelta, secondDelta = secondDelta, firstDelta
			}
			if err := adjustBalance(ctx, tx, first, firstDelta); err != nil {
				return err
			}
			if err := adjustBalance(ctx, tx, second, secondDelta); err != nil {
				return err
			}
		}

		query := `
			UPDATE expenses
			SET amount = $2, description = $3, date = $4, account_id = $5, category_id = $6, last_updated_at = $7
			WHERE expense_id = $1;
		`
		tag, err := tx.Exec(ctx, query,
			mu.ExpenseID,
			mu.Amount,
			mu.Description,
			mu.Date,
			mu.AccountID,
			mu.CategoryID,
			mu.LastUpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update expense %s: %w", mu.ExpenseID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, mu.ExpenseID)
		}
		return nil
	})
}

// DeleteExpense removes the expense and credits the amount back atomically.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := adjustBalance(ctx, tx, m.AccountID, m.Amount); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, m.ExpenseID)
		if err != nil {
			return fmt.Errorf("failed to delete expense %s: %w", m.ExpenseID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, m.ExpenseID)
		}
		return nil
	})
}

// inTx runs fn inside a transaction, committing on success.
func (r *BaseRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// adjustBalance locks the account row and moves its balance by delta.
func adjustBalance(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal) error {
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE account_id = $1 FOR UPDATE;`, accountID).Scan(&balance)
	if err != nil {
		return mapNotFound(err, "account "+accountID)
	}

	_, err = tx.Exec(ctx, `UPDATE accounts SET balance = $2, last_updated_at = NOW() WHERE account_id = $1;`, accountID, balance.Add(delta))
	if err != nil {
		return fmt.Errorf("failed to adjust balance of account %s: %w", accountID, err)
	}
	return nil
}
