package postgres

import (
	"context"
	"database/sql"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/repository"
)

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `id, dealership_id, expense_type, amount_cents, expense_date,
	       month, COALESCE(note, ''), created_by, created_at, updated_at`

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	logger.EnterMethod("expenseRepository.Create", "dealershipID", expense.DealershipID, "type", expense.ExpenseType)

	query := `
		INSERT INTO expenses (
			dealership_id, expense_type, amount_cents, expense_date, month, note, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		expense.DealershipID, expense.ExpenseType, expense.AmountCents, expense.ExpenseDate,
		expense.Month, expense.Note, expense.CreatedBy, time.Now(),
	).Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		logger.ExitMethodWithError("expenseRepository.Create", err, "dealershipID", expense.DealershipID)
		return err
	}

	logger.ExitMethod("expenseRepository.Create", "expenseID", expense.ID)
	return nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id int32) (*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE id = $1
	`
	e := &domain.Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.DealershipID, &e.ExpenseType, &e.AmountCents, &e.ExpenseDate,
		&e.Month, &e.Note, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `
		UPDATE expenses
		SET expense_type = $1, amount_cents = $2, expense_date = $3, month = $4, note = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		expense.ExpenseType, expense.AmountCents, expense.ExpenseDate, expense.Month,
		expense.Note, time.Now(), expense.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *expenseRepository) ListByMonth(ctx context.Context, dealershipID int32, month string) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE dealership_id = $1 AND month = $2
		ORDER BY expense_date DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, dealershipID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		var e domain.Expense
		err := rows.Scan(
			&e.ID, &e.DealershipID, &e.ExpenseType, &e.AmountCents, &e.ExpenseDate,
			&e.Month, &e.Note, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func (r *expenseRepository) SummaryByMonth(ctx context.Context, dealershipID int32, month string) (*domain.ExpenseSummary, error) {
	query := `
		SELECT expense_type, SUM(amount_cents)
		FROM expenses
		WHERE dealership_id = $1 AND month = $2
		GROUP BY expense_type
	`
	rows, err := r.db.QueryContext(ctx, query, dealershipID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &domain.ExpenseSummary{
		Month:       month,
		ByTypeCents: map[string]int64{},
	}
	for rows.Next() {
		var expenseType string
		var total int64
		if err := rows.Scan(&expenseType, &total); err != nil {
			return nil, err
		}
		summary.ByTypeCents[expenseType] = total
		summary.TotalCents += total
	}
	return summary, nil
}
