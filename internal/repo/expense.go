package repo

import (
	"context"
	"database/sql"
	"fmt"

	"youthcouncil/internal/model"
)

func (r *repository) CreateExpense(ctx context.Context, e *model.Expense) (int64, error) {
	query := `
		INSERT INTO expenses (program_id, description, amount, date, category, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	row := r.db.Master.QueryRowContext(ctx, query,
		e.ProgramID, e.Description, e.Amount, e.Date, e.Category, e.Notes,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert expense: %w", err)
	}
	return id, nil
}

func (r *repository) GetExpense(ctx context.Context, id int64) (*model.Expense, error) {
	query := `
		SELECT id, program_id, description, amount, date, category, COALESCE(notes, ''), created_at
		FROM expenses
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var e model.Expense
	if err := row.Scan(
		&e.ID, &e.ProgramID, &e.Description, &e.Amount,
		&e.Date, &e.Category, &e.Notes, &e.CreatedAt,
	); err != nil {
		return nil, ErrExpenseNotFound
	}
	return &e, nil
}

func (r *repository) GetAllExpenses(ctx context.Context) ([]model.Expense, error) {
	query := `
		SELECT id, program_id, description, amount, date, category, COALESCE(notes, ''), created_at
		FROM expenses
		ORDER BY date DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(
			&e.ID, &e.ProgramID, &e.Description, &e.Amount,
			&e.Date, &e.Category, &e.Notes, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (r *repository) UpdateExpense(ctx context.Context, e *model.Expense) error {
	query := `
		UPDATE expenses
		SET program_id = $1, description = $2, amount = $3, date = $4, category = $5, notes = $6
		WHERE id = $7
		RETURNING id
	`

	var id int64
	err := r.db.Master.QueryRowContext(ctx, query,
		e.ProgramID, e.Description, e.Amount, e.Date, e.Category, e.Notes, e.ID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrExpenseNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

func (r *repository) DeleteExpense(ctx context.Context, id int64) error {
	var got int64
	err := r.db.Master.QueryRowContext(ctx, `DELETE FROM expenses WHERE id = $1 RETURNING id`, id).Scan(&got)
	if err == sql.ErrNoRows {
		return ErrExpenseNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
