package repo

import (
	"context"
	"database/sql"
	"fmt"

	"youthcouncil/internal/model"
	"youthcouncil/internal/registration"
)

func (r *repository) CreateProgram(ctx context.Context, p *model.Program) (int64, error) {
	query := `
		INSERT INTO programs (name, description, date, time_window, location, budget, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	row := r.db.Master.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Date, p.TimeWindow, p.Location, p.Budget, p.Status,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert program: %w", err)
	}
	return id, nil
}

func (r *repository) GetProgram(ctx context.Context, id int64) (*model.Program, error) {
	query := `
		SELECT id, name, description, date, time_window, location,
		       budget, status, COALESCE(attachment_url, ''), created_at, updated_at
		FROM programs WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var p model.Program
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Date, &p.TimeWindow, &p.Location,
		&p.Budget, &p.Status, &p.AttachmentURL, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, registration.ErrProgramNotFound
	}
	return &p, nil
}

func (r *repository) GetAllPrograms(ctx context.Context) ([]model.Program, error) {
	query := `
		SELECT id, name, description, date, time_window, location,
		       budget, status, COALESCE(attachment_url, ''), created_at, updated_at
		FROM programs
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get programs: %w", err)
	}
	defer rows.Close()

	var programs []model.Program
	for rows.Next() {
		var p model.Program
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Date, &p.TimeWindow, &p.Location,
			&p.Budget, &p.Status, &p.AttachmentURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, p)
	}

	return programs, rows.Err()
}

func (r *repository) UpdateProgram(ctx context.Context, p *model.Program) error {
	query := `
		UPDATE programs
		SET name = $1, description = $2, date = $3, time_window = $4,
		    location = $5, budget = $6, status = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING id
	`

	var id int64
	err := r.db.Master.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Date, p.TimeWindow, p.Location, p.Budget, p.Status, p.ID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return registration.ErrProgramNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}
	return nil
}

func (r *repository) SetProgramAttachment(ctx context.Context, id int64, url string) error {
	query := `
		UPDATE programs
		SET attachment_url = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var got int64
	err := r.db.Master.QueryRowContext(ctx, query, url, id).Scan(&got)
	if err == sql.ErrNoRows {
		return registration.ErrProgramNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to set program attachment: %w", err)
	}
	return nil
}

// DeleteProgramCascade removes dependent expenses and registrations before
// the program itself, all in one transaction, so a partial failure leaves
// the parent intact rather than orphaning children.
func (r *repository) DeleteProgramCascade(ctx context.Context, id int64) error {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE program_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete program expenses: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE program_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete program registrations: %w", err)
	}

	var got int64
	err = tx.QueryRowContext(ctx, `DELETE FROM programs WHERE id = $1 RETURNING id`, id).Scan(&got)
	if err == sql.ErrNoRows {
		_ = tx.Rollback()
		return registration.ErrProgramNotFound
	}
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete program: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
